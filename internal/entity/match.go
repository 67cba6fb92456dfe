package entity

// Move is one entry of the append-only move log.
type Move struct {
	Cell   Cell   `json:"cell"`
	Player Player `json:"player"`
}

// Match is what the backend hands out when a match starts or restarts.
type Match struct {
	ID        string     `json:"id"`
	Players   Players    `json:"players"`
	GameBoard *GameBoard `json:"game_board"`
}

// MatchResult is derived from the move log, never stored.
type MatchResult struct {
	Winner *Player `json:"winner,omitempty"`
	Draw   bool    `json:"draw"`
}

func (that MatchResult) Finished() bool {
	return that.Winner != nil || that.Draw
}
