// Package tictactoe derives the state of a match from its move log.
//
// The move log is kept newest-first: accepted moves are inserted at the front.
// Nothing here is stored; every query replays the log onto a copy of the base board.
package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

// WinningCombinations lists the rows, then the columns, then both diagonals.
var WinningCombinations = [8][3]entity.Cell{
	{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
	{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}},
}

// State is everything the rest of the system reads about a match.
type State struct {
	Board        entity.Board
	ActivePlayer entity.Player
	entity.MatchResult
}

// Derive recomputes the whole state. The winner is derived before the draw,
// so a ninth move that completes a line is a win.
func Derive(base entity.Board, turns []entity.Move, players entity.Players) State {
	board := DeriveBoard(base, turns)
	winner := DeriveWinner(board, players)

	return State{
		Board:        board,
		ActivePlayer: ActivePlayer(turns, players),
		MatchResult: entity.MatchResult{
			Winner: winner,
			Draw:   HasDraw(turns, winner),
		},
	}
}

// ActivePlayer - the first player moves on an even log length, the second on an odd one.
func ActivePlayer(turns []entity.Move, players entity.Players) entity.Player {
	if len(turns)%2 == 0 {
		return players[0]
	}

	return players[1]
}

// DeriveBoard replays turns, oldest first, onto a copy of base.
func DeriveBoard(base entity.Board, turns []entity.Move) entity.Board {
	board := base

	for i := len(turns) - 1; i >= 0; i-- {
		turn := turns[i]
		if !turn.Cell.Valid() {
			continue
		}

		board[turn.Cell.Row][turn.Cell.Col] = turn.Player.Symbol
	}

	return board
}

// DeriveWinner returns the owner of the first complete line, or nil.
func DeriveWinner(board entity.Board, players entity.Players) *entity.Player {
	for _, combo := range WinningCombinations {
		a, b, c := board.At(combo[0]), board.At(combo[1]), board.At(combo[2])
		if a == entity.EmptyCell || a != b || b != c {
			continue
		}

		winner, ok := players.FindBySymbol(a)
		if !ok {
			return nil
		}

		return &winner
	}

	return nil
}

// HasDraw - a full log without a winner.
func HasDraw(turns []entity.Move, winner *entity.Player) bool {
	return len(turns) == entity.MaxMoves && winner == nil
}

// CanSelect - checks if a move to cell is acceptable in the given state.
func CanSelect(state State, cell entity.Cell) error {
	if state.Finished() {
		return apperror.ErrGameFinished
	}

	if !cell.Valid() {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrInvalidCell, cell.Row, cell.Col)
	}

	if !state.Board.IsEmpty(cell) {
		return apperror.ErrCellOccupied
	}

	return nil
}
