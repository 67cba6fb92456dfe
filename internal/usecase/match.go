package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/rocketscienceinc/tictactoe-match/internal/tictactoe"
)

type matchProvider interface {
	NewMatch(ctx context.Context) (*entity.Match, error)
}

// Snapshot is a copy of the controller state; changing it has no effect on the controller.
type Snapshot struct {
	Loaded bool
	// Loading is set while a rematch fetch is in flight.
	Loading bool
	MatchID string
	Players entity.Players
	// Turns is newest-first.
	Turns []entity.Move
	State tictactoe.State
}

// MatchController owns the state of one match on the client.
// Board, active player and result are never cached: they are derived from the log on every read.
type MatchController struct {
	logger   *slog.Logger
	provider matchProvider

	mu      sync.RWMutex
	loaded  bool
	loading bool
	matchID string
	players entity.Players
	base    entity.Board
	turns   []entity.Move
}

func NewMatchController(logger *slog.Logger, provider matchProvider) *MatchController {
	return &MatchController{
		logger:   logger.With("component", "match_controller"),
		provider: provider,
	}
}

// Start loads the first match.
func (that *MatchController) Start(ctx context.Context) error {
	return that.load(ctx, "Start")
}

// Rematch clears the move log and loads a new match. If loading fails the log stays cleared
// and the previous players and board are kept. Moves and renames are refused until it returns.
func (that *MatchController) Rematch(ctx context.Context) error {
	that.mu.Lock()
	if that.loading {
		that.mu.Unlock()
		return apperror.ErrMatchLoading
	}
	that.turns = nil
	that.loading = true
	that.mu.Unlock()

	return that.load(ctx, "Rematch")
}

func (that *MatchController) load(ctx context.Context, method string) error {
	log := that.logger.With("method", method)

	match, err := that.provider.NewMatch(ctx)
	if err != nil {
		that.mu.Lock()
		that.loading = false
		that.mu.Unlock()

		log.Error("failed to load match", "error", err)
		return fmt.Errorf("failed to load match: %w", err)
	}

	base := entity.NewGameBoard().Board
	if match.GameBoard != nil {
		base = match.GameBoard.Board
	}

	that.mu.Lock()
	that.loaded = true
	that.loading = false
	that.matchID = match.ID
	that.players = match.Players
	that.base = base
	that.turns = nil
	that.mu.Unlock()

	log.Info("match loaded", "matchID", match.ID)

	return nil
}

// SelectSquare accepts a move for the active player or explains why it cannot.
func (that *MatchController) SelectSquare(row, col int) (entity.Move, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.loaded {
		return entity.Move{}, apperror.ErrMatchNotLoaded
	}

	if that.loading {
		return entity.Move{}, apperror.ErrMatchLoading
	}

	cell := entity.Cell{Row: row, Col: col}
	state := tictactoe.Derive(that.base, that.turns, that.players)
	if err := tictactoe.CanSelect(state, cell); err != nil {
		return entity.Move{}, fmt.Errorf("failed to select square: %w", err)
	}

	move := entity.Move{
		Cell:   cell,
		Player: tictactoe.ActivePlayer(that.turns, that.players),
	}

	turns := make([]entity.Move, 0, len(that.turns)+1)
	turns = append(turns, move)
	that.turns = append(turns, that.turns...)

	that.logger.Debug("square selected", "matchID", that.matchID, "player", move.Player.ID, "row", row, "col", col)

	return move, nil
}

// RenamePlayer changes a player's name. Moves already logged keep the old name.
func (that *MatchController) RenamePlayer(id int, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperror.ErrInvalidPlayerName
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.loaded {
		return apperror.ErrMatchNotLoaded
	}

	if that.loading {
		return apperror.ErrMatchLoading
	}

	index := that.players.IndexByID(id)
	if index < 0 {
		return fmt.Errorf("%w: id %d", apperror.ErrPlayerNotFound, id)
	}

	that.players[index].Name = name

	return nil
}

func (that *MatchController) Snapshot() Snapshot {
	that.mu.RLock()
	defer that.mu.RUnlock()

	turns := make([]entity.Move, len(that.turns))
	copy(turns, that.turns)

	snapshot := Snapshot{
		Loaded:  that.loaded,
		Loading: that.loading,
		MatchID: that.matchID,
		Players: that.players,
		Turns:   turns,
	}

	if that.loaded {
		snapshot.State = tictactoe.Derive(that.base, turns, that.players)
	}

	return snapshot
}
