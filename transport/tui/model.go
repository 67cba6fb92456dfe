// Package tui is the terminal client: a bubbletea program that renders the match controller state
// and turns key presses into controller operations.
package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/rocketscienceinc/tictactoe-match/internal/usecase"
)

const (
	noEditing = -1

	nameCharLimit = 24
)

type matchController interface {
	Start(ctx context.Context) error
	Rematch(ctx context.Context) error
	SelectSquare(row, col int) (entity.Move, error)
	RenamePlayer(id int, name string) error
	Snapshot() usecase.Snapshot
}

// matchLoadedMsg is sent when Start or Rematch returns.
type matchLoadedMsg struct {
	err error
}

// Model is the bubbletea model of the client. Everything it shows comes from the controller snapshot;
// the model itself only keeps the cursor, the name editor and the last status line.
type Model struct {
	ctx        context.Context
	logger     *slog.Logger
	controller matchController

	cursor  entity.Cell
	editing int
	input   textinput.Model
	status  string
}

func New(ctx context.Context, logger *slog.Logger, controller matchController) Model {
	input := textinput.New()
	input.CharLimit = nameCharLimit
	input.Placeholder = "player name"
	input.Prompt = "name: "

	return Model{
		ctx:        ctx,
		logger:     logger.With("component", "tui"),
		controller: controller,
		editing:    noEditing,
		input:      input,
	}
}

func (that Model) Init() tea.Cmd {
	return that.start
}

func (that Model) start() tea.Msg {
	return matchLoadedMsg{err: that.controller.Start(that.ctx)}
}

func (that Model) rematch() tea.Msg {
	return matchLoadedMsg{err: that.controller.Rematch(that.ctx)}
}

func (that Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case matchLoadedMsg:
		if msg.err != nil {
			// the controller keeps its previous state; a first load failure leaves the client loading
			that.logger.Warn("match not loaded", "error", msg.err)
			return that, nil
		}

		that.cursor = entity.Cell{}
		that.status = ""

		return that, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return that, tea.Quit
		}

		if that.editing != noEditing {
			return that.updateEditing(msg)
		}

		return that.updatePlaying(msg)
	}

	return that, nil
}

func (that Model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "q" {
		return that, tea.Quit
	}

	snapshot := that.controller.Snapshot()
	if !snapshot.Loaded {
		return that, nil
	}

	switch msg.String() {
	case "up", "k":
		that.cursor.Row = max(that.cursor.Row-1, 0)
	case "down", "j":
		that.cursor.Row = min(that.cursor.Row+1, entity.BoardSize-1)
	case "left", "h":
		that.cursor.Col = max(that.cursor.Col-1, 0)
	case "right", "l":
		that.cursor.Col = min(that.cursor.Col+1, entity.BoardSize-1)

	case "enter", " ":
		if _, err := that.controller.SelectSquare(that.cursor.Row, that.cursor.Col); err != nil {
			that.status = statusFor(err)
			return that, nil
		}
		that.status = ""

	case "1", "2":
		index := int(msg.Runes[0] - '1')
		that.editing = index
		that.status = ""
		that.input.SetValue(snapshot.Players[index].Name)
		that.input.CursorEnd()

		return that, that.input.Focus()

	case "r":
		if snapshot.State.Finished() {
			that.status = ""
			return that, that.rematch
		}
	}

	return that, nil
}

func (that Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		players := that.controller.Snapshot().Players
		if err := that.controller.RenamePlayer(players[that.editing].ID, that.input.Value()); err != nil {
			that.status = statusFor(err)
			return that, nil
		}

		that.stopEditing()

		return that, nil

	case tea.KeyEsc:
		that.stopEditing()

		return that, nil
	}

	var cmd tea.Cmd
	that.input, cmd = that.input.Update(msg)

	return that, cmd
}

func (that *Model) stopEditing() {
	that.editing = noEditing
	that.status = ""
	that.input.Blur()
	that.input.Reset()
}

func (that Model) View() string {
	return render(that.controller.Snapshot(), view{
		cursor:  that.cursor,
		editing: that.editing,
		input:   that.input.View(),
		status:  that.status,
	})
}

func statusFor(err error) string {
	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		return "That square is already taken."
	case errors.Is(err, apperror.ErrGameFinished):
		return "The game is over."
	case errors.Is(err, apperror.ErrInvalidPlayerName):
		return "A name cannot be empty."
	case errors.Is(err, apperror.ErrMatchLoading):
		return nextMatchText
	default:
		return err.Error()
	}
}
