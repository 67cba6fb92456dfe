package tui

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/rocketscienceinc/tictactoe-match/internal/usecase"
)

const (
	loadingText   = "Loading..."
	nextMatchText = "The next match is loading..."

	helpText     = "arrows/hjkl move • enter select • 1/2 rename • q quit"
	editHelpText = "enter save • esc cancel"
)

// view is the part of the screen owned by the model rather than the controller.
type view struct {
	cursor  entity.Cell
	editing int
	input   string
	status  string
}

// render draws one frame. It reads the snapshot and never changes it.
func render(snapshot usecase.Snapshot, ui view) string {
	if !snapshot.Loaded {
		return loadingText + "\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Tic-Tac-Toe"))
	b.WriteString("\n\n")

	if snapshot.Loading {
		b.WriteString(helpStyle.Render(nextMatchText))
		b.WriteString("\n\n")
	}

	renderPlayers(&b, snapshot, ui)
	b.WriteString("\n")
	renderBoard(&b, snapshot.State.Board, ui.cursor, !snapshot.State.Finished())
	b.WriteString("\n")

	if snapshot.State.Finished() {
		b.WriteString(gameOverStyle.Render(gameOverText(snapshot.State.MatchResult)))
		b.WriteString("\n\n")
	}

	renderLog(&b, snapshot.Turns)

	if ui.status != "" {
		b.WriteString(statusStyle.Render(ui.status))
		b.WriteString("\n")
	}

	if ui.editing != noEditing {
		b.WriteString(helpStyle.Render(editHelpText))
	} else {
		b.WriteString(helpStyle.Render(helpText))
	}
	b.WriteString("\n")

	return b.String()
}

func renderPlayers(b *strings.Builder, snapshot usecase.Snapshot, ui view) {
	finished := snapshot.State.Finished()

	for i, player := range snapshot.Players {
		if ui.editing == i {
			fmt.Fprintf(b, "  %s (%s)\n", ui.input, player.Symbol)
			continue
		}

		line := fmt.Sprintf("%s (%s)", player.Name, player.Symbol)
		if !finished && player.ID == snapshot.State.ActivePlayer.ID {
			b.WriteString(activePlayerStyle.Render("> " + line))
		} else {
			b.WriteString(playerStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
}

func renderBoard(b *strings.Builder, board entity.Board, cursor entity.Cell, showCursor bool) {
	for row := 0; row < entity.BoardSize; row++ {
		if row > 0 {
			b.WriteString("---+---+---\n")
		}

		for col := 0; col < entity.BoardSize; col++ {
			if col > 0 {
				b.WriteString("|")
			}

			cell := entity.Cell{Row: row, Col: col}
			symbol := board.At(cell)
			if symbol == entity.EmptyCell {
				symbol = " "
			}

			if showCursor && cell == cursor {
				b.WriteString(cursorStyle.Render("[" + symbol + "]"))
				continue
			}

			b.WriteString(" " + symbol + " ")
		}
		b.WriteString("\n")
	}
}

// renderLog lists the moves newest first.
func renderLog(b *strings.Builder, turns []entity.Move) {
	for _, move := range turns {
		fmt.Fprintf(b, "%s selected row %d, column %d\n", move.Player.Name, move.Cell.Row+1, move.Cell.Col+1)
	}

	if len(turns) > 0 {
		b.WriteString("\n")
	}
}

func gameOverText(result entity.MatchResult) string {
	outcome := "It's a draw!"
	if result.Winner != nil {
		outcome = fmt.Sprintf("The winner is %s!", result.Winner.Name)
	}

	return "Game Over!\n" + outcome + "\nPress r for a rematch"
}
