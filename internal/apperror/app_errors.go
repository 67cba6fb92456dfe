package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell")
	ErrMatchNotLoaded    = errors.New("match is not loaded")
	ErrMatchLoading      = errors.New("next match is loading")
	ErrMatchNotFound     = errors.New("match not found")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrInvalidPlayerName = errors.New("invalid player name")
	ErrInvalidPlayers    = errors.New("invalid match players")
	ErrInvalidBoard      = errors.New("new match board must be empty")
	ErrUnexpectedStatus  = errors.New("unexpected response status")
	ErrUnknownSource     = errors.New("unknown match source")
)
