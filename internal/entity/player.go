package entity

// Player is one side of a match. Only Name changes after the match is created.
type Player struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Players is the fixed pair of a match; the first one moves first.
type Players [2]Player

// FindBySymbol returns the player owning symbol.
func (that Players) FindBySymbol(symbol string) (Player, bool) {
	for _, player := range that {
		if player.Symbol == symbol {
			return player, true
		}
	}

	return Player{}, false
}

// IndexByID returns the position of the player with the given id or -1.
func (that Players) IndexByID(id int) int {
	for i, player := range that {
		if player.ID == id {
			return i
		}
	}

	return -1
}
