package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errBackendDown = errors.New("backend down")

type mockProvider struct {
	mock.Mock
}

func (that *mockProvider) NewMatch(ctx context.Context) (*entity.Match, error) {
	args := that.Called(ctx)
	match, _ := args.Get(0).(*entity.Match)
	return match, args.Error(1)
}

func newTestMatch(id, nameA, nameB string) *entity.Match {
	return &entity.Match{
		ID: id,
		Players: entity.Players{
			{ID: 1, Name: nameA, Symbol: entity.PlayerX},
			{ID: 2, Name: nameB, Symbol: entity.PlayerO},
		},
		GameBoard: entity.NewGameBoard(),
	}
}

func newController(t *testing.T, matches ...*entity.Match) (*MatchController, *mockProvider) {
	t.Helper()

	provider := &mockProvider{}
	for _, match := range matches {
		provider.On("NewMatch", mock.Anything).Return(match, nil).Once()
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	controller := NewMatchController(logger, provider)

	return controller, provider
}

func play(t *testing.T, controller *MatchController, cells ...entity.Cell) {
	t.Helper()

	for _, cell := range cells {
		_, err := controller.SelectSquare(cell.Row, cell.Col)
		require.NoError(t, err, "cell %v", cell)
	}
}

func TestMatchController_Start(t *testing.T) {
	t.Run("Loads the match", func(t *testing.T) {
		ctx := context.Background()
		controller, provider := newController(t, newTestMatch("m1", "Eric", "Jenny"))

		// When: the controller starts
		err := controller.Start(ctx)
		require.NoError(t, err)

		// Then: the match is loaded, the log is empty and A is active
		snapshot := controller.Snapshot()
		assert.True(t, snapshot.Loaded)
		assert.Equal(t, "m1", snapshot.MatchID)
		assert.Empty(t, snapshot.Turns)
		assert.Equal(t, "Eric", snapshot.State.ActivePlayer.Name)
		assert.Nil(t, snapshot.State.Winner)
		assert.False(t, snapshot.State.Draw)
		provider.AssertExpectations(t)
	})

	t.Run("Failure leaves the controller loading", func(t *testing.T) {
		ctx := context.Background()
		controller, provider := newController(t)
		provider.On("NewMatch", mock.Anything).Return(nil, errBackendDown).Once()

		// When: the provider fails
		err := controller.Start(ctx)

		// Then: the error is returned and nothing is loaded
		require.ErrorIs(t, err, errBackendDown)
		assert.False(t, controller.Snapshot().Loaded)

		_, err = controller.SelectSquare(0, 0)
		require.ErrorIs(t, err, apperror.ErrMatchNotLoaded)
	})
}

func TestMatchController_SelectSquare(t *testing.T) {
	t.Run("Moves alternate and the log is newest-first", func(t *testing.T) {
		controller, _ := newController(t, newTestMatch("m1", "Eric", "Jenny"))
		require.NoError(t, controller.Start(context.Background()))

		// When: two squares are selected
		first, err := controller.SelectSquare(0, 0)
		require.NoError(t, err)
		second, err := controller.SelectSquare(1, 1)
		require.NoError(t, err)

		// Then: A moved first, B second, and the newest move leads the log
		assert.Equal(t, "Eric", first.Player.Name)
		assert.Equal(t, "Jenny", second.Player.Name)

		snapshot := controller.Snapshot()
		require.Len(t, snapshot.Turns, 2)
		assert.Equal(t, second, snapshot.Turns[0])
		assert.Equal(t, first, snapshot.Turns[1])
		assert.Equal(t, entity.PlayerX, snapshot.State.Board.At(entity.Cell{Row: 0, Col: 0}))
		assert.Equal(t, entity.PlayerO, snapshot.State.Board.At(entity.Cell{Row: 1, Col: 1}))
		assert.Equal(t, "Eric", snapshot.State.ActivePlayer.Name)
	})

	t.Run("Occupied square is rejected", func(t *testing.T) {
		controller, _ := newController(t, newTestMatch("m1", "Eric", "Jenny"))
		require.NoError(t, controller.Start(context.Background()))
		play(t, controller, entity.Cell{Row: 0, Col: 0})

		// When: B selects the same square
		_, err := controller.SelectSquare(0, 0)

		// Then: ErrCellOccupied is returned and the log is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Len(t, controller.Snapshot().Turns, 1)
	})

	t.Run("Out of range square is rejected", func(t *testing.T) {
		controller, _ := newController(t, newTestMatch("m1", "Eric", "Jenny"))
		require.NoError(t, controller.Start(context.Background()))

		_, err := controller.SelectSquare(3, 0)

		require.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("No moves after a win", func(t *testing.T) {
		controller, _ := newController(t, newTestMatch("m1", "Eric", "Jenny"))
		require.NoError(t, controller.Start(context.Background()))

		// Given: A completes the top row
		play(t, controller,
			entity.Cell{Row: 0, Col: 0}, entity.Cell{Row: 1, Col: 1},
			entity.Cell{Row: 0, Col: 1}, entity.Cell{Row: 1, Col: 0},
			entity.Cell{Row: 0, Col: 2},
		)

		snapshot := controller.Snapshot()
		require.NotNil(t, snapshot.State.Winner)
		assert.Equal(t, "Eric", snapshot.State.Winner.Name)
		assert.False(t, snapshot.State.Draw)

		// When: B tries to move
		_, err := controller.SelectSquare(2, 2)

		// Then: ErrGameFinished is returned
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("No moves after a draw", func(t *testing.T) {
		controller, _ := newController(t, newTestMatch("m1", "Eric", "Jenny"))
		require.NoError(t, controller.Start(context.Background()))

		// Given: X O X / X O O / O X X
		play(t, controller,
			entity.Cell{Row: 0, Col: 0}, entity.Cell{Row: 0, Col: 1}, entity.Cell{Row: 0, Col: 2},
			entity.Cell{Row: 1, Col: 1}, entity.Cell{Row: 1, Col: 0}, entity.Cell{Row: 1, Col: 2},
			entity.Cell{Row: 2, Col: 1}, entity.Cell{Row: 2, Col: 0}, entity.Cell{Row: 2, Col: 2},
		)

		snapshot := controller.Snapshot()
		assert.Nil(t, snapshot.State.Winner)
		assert.True(t, snapshot.State.Draw)

		_, err := controller.SelectSquare(0, 0)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestMatchController_RenamePlayer(t *testing.T) {
	t.Run("Renames the player but not the logged moves", func(t *testing.T) {
		controller, _ := newController(t, newTestMatch("m1", "Eric", "Jenny"))
		require.NoError(t, controller.Start(context.Background()))
		play(t, controller, entity.Cell{Row: 0, Col: 0})

		// When: player 1 is renamed
		err := controller.RenamePlayer(1, "  Alice ")
		require.NoError(t, err)

		// Then: the player has the trimmed name and the old move keeps the old one
		snapshot := controller.Snapshot()
		assert.Equal(t, "Alice", snapshot.Players[0].Name)
		assert.Equal(t, entity.PlayerX, snapshot.Players[0].Symbol)
		assert.Equal(t, "Eric", snapshot.Turns[0].Player.Name)

		// Then: the next move of player 1 carries the new name
		play(t, controller, entity.Cell{Row: 1, Col: 1})
		move, err := controller.SelectSquare(2, 2)
		require.NoError(t, err)
		assert.Equal(t, "Alice", move.Player.Name)
	})

	t.Run("Empty name", func(t *testing.T) {
		controller, _ := newController(t, newTestMatch("m1", "Eric", "Jenny"))
		require.NoError(t, controller.Start(context.Background()))

		err := controller.RenamePlayer(1, "   ")

		require.ErrorIs(t, err, apperror.ErrInvalidPlayerName)
		assert.Equal(t, "Eric", controller.Snapshot().Players[0].Name)
	})

	t.Run("Unknown player", func(t *testing.T) {
		controller, _ := newController(t, newTestMatch("m1", "Eric", "Jenny"))
		require.NoError(t, controller.Start(context.Background()))

		err := controller.RenamePlayer(42, "Bob")

		require.ErrorIs(t, err, apperror.ErrPlayerNotFound)
	})

	t.Run("Before the match is loaded", func(t *testing.T) {
		controller, _ := newController(t)

		err := controller.RenamePlayer(1, "Bob")

		require.ErrorIs(t, err, apperror.ErrMatchNotLoaded)
	})
}

func TestMatchController_Rematch(t *testing.T) {
	t.Run("Replaces the whole match", func(t *testing.T) {
		ctx := context.Background()
		controller, provider := newController(t,
			newTestMatch("m1", "Eric", "Jenny"),
			newTestMatch("m2", "Ann", "Ben"),
		)
		require.NoError(t, controller.Start(ctx))

		// Given: a won match
		play(t, controller,
			entity.Cell{Row: 0, Col: 0}, entity.Cell{Row: 1, Col: 1},
			entity.Cell{Row: 0, Col: 1}, entity.Cell{Row: 1, Col: 0},
			entity.Cell{Row: 0, Col: 2},
		)
		require.NotNil(t, controller.Snapshot().State.Winner)

		// When: a rematch is requested
		err := controller.Rematch(ctx)
		require.NoError(t, err)

		// Then: log, result and players are reset from the new match
		snapshot := controller.Snapshot()
		assert.Equal(t, "m2", snapshot.MatchID)
		assert.Empty(t, snapshot.Turns)
		assert.Nil(t, snapshot.State.Winner)
		assert.False(t, snapshot.State.Draw)
		assert.Equal(t, 0, snapshot.State.Board.Filled())
		assert.Equal(t, "Ann", snapshot.State.ActivePlayer.Name)
		provider.AssertExpectations(t)
	})

	t.Run("Failure still clears the log", func(t *testing.T) {
		ctx := context.Background()
		controller, provider := newController(t, newTestMatch("m1", "Eric", "Jenny"))
		provider.On("NewMatch", mock.Anything).Return(nil, errBackendDown).Once()
		require.NoError(t, controller.Start(ctx))
		play(t, controller, entity.Cell{Row: 0, Col: 0}, entity.Cell{Row: 1, Col: 1})

		// When: the rematch fetch fails
		err := controller.Rematch(ctx)

		// Then: the error is returned, the log is empty and the old players stay
		require.ErrorIs(t, err, errBackendDown)
		snapshot := controller.Snapshot()
		assert.True(t, snapshot.Loaded)
		assert.Equal(t, "m1", snapshot.MatchID)
		assert.Empty(t, snapshot.Turns)
		assert.Nil(t, snapshot.State.Winner)
		assert.False(t, snapshot.State.Draw)
		assert.Equal(t, "Eric", snapshot.Players[0].Name)

		// Then: the old match can be played again
		assert.False(t, snapshot.Loading)
		play(t, controller, entity.Cell{Row: 2, Col: 2})
	})

	t.Run("Moves wait for the next match", func(t *testing.T) {
		ctx := context.Background()
		controller, provider := newController(t, newTestMatch("m1", "Eric", "Jenny"))
		release := make(chan struct{})
		provider.On("NewMatch", mock.Anything).
			Run(func(mock.Arguments) { <-release }).
			Return(newTestMatch("m2", "Ann", "Ben"), nil).
			Once()
		require.NoError(t, controller.Start(ctx))
		play(t, controller, entity.Cell{Row: 1, Col: 1})

		// Given: a rematch whose fetch has not returned yet
		done := make(chan error, 1)
		go func() {
			done <- controller.Rematch(ctx)
		}()
		require.Eventually(t, func() bool {
			return controller.Snapshot().Loading
		}, time.Second, time.Millisecond)

		// When: the players keep playing, renaming and asking for rematches
		_, err := controller.SelectSquare(0, 0)
		require.ErrorIs(t, err, apperror.ErrMatchLoading)
		require.ErrorIs(t, controller.RenamePlayer(1, "Zed"), apperror.ErrMatchLoading)
		require.ErrorIs(t, controller.Rematch(ctx), apperror.ErrMatchLoading)

		// Then: once the fetch returns the new match starts from an empty log
		close(release)
		require.NoError(t, <-done)

		snapshot := controller.Snapshot()
		assert.False(t, snapshot.Loading)
		assert.Equal(t, "m2", snapshot.MatchID)
		assert.Empty(t, snapshot.Turns)
		assert.Equal(t, "Ann", snapshot.Players[0].Name)
		play(t, controller, entity.Cell{Row: 0, Col: 0})
		provider.AssertExpectations(t)
	})
}

func TestMatchController_Snapshot(t *testing.T) {
	t.Run("Snapshot is a copy", func(t *testing.T) {
		controller, _ := newController(t, newTestMatch("m1", "Eric", "Jenny"))
		require.NoError(t, controller.Start(context.Background()))
		play(t, controller, entity.Cell{Row: 0, Col: 0})

		// When: the snapshot is modified
		snapshot := controller.Snapshot()
		snapshot.Turns[0].Cell = entity.Cell{Row: 2, Col: 2}
		snapshot.Players[0].Name = "Mallory"

		// Then: the controller is unaffected
		fresh := controller.Snapshot()
		assert.Equal(t, entity.Cell{Row: 0, Col: 0}, fresh.Turns[0].Cell)
		assert.Equal(t, "Eric", fresh.Players[0].Name)
	})

	t.Run("Non-empty base board from the provider is respected", func(t *testing.T) {
		// Given: a provider that starts from a board with a centre X
		match := newTestMatch("m1", "Eric", "Jenny")
		match.GameBoard.Board[1][1] = entity.PlayerX
		controller, _ := newController(t, match)
		require.NoError(t, controller.Start(context.Background()))

		// Then: the centre is taken and the base survives the derivation
		_, err := controller.SelectSquare(1, 1)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		play(t, controller, entity.Cell{Row: 0, Col: 0})
		assert.Equal(t, 2, controller.Snapshot().State.Board.Filled())
	})
}
