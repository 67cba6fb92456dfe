package entity

const (
	BoardSize = 3
	MaxMoves  = BoardSize * BoardSize

	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
)

type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Cell) Valid() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

// Board is a value type: assigning it copies every cell.
type Board [BoardSize][BoardSize]string

func (that Board) At(cell Cell) string {
	return that[cell.Row][cell.Col]
}

func (that Board) IsEmpty(cell Cell) bool {
	return that.At(cell) == EmptyCell
}

// Filled returns the number of non-empty cells.
func (that Board) Filled() int {
	filled := 0
	for _, row := range that {
		for _, value := range row {
			if value != EmptyCell {
				filled++
			}
		}
	}

	return filled
}

// GameBoard is the wire shape of a board: {"board": [[...],[...],[...]]}.
type GameBoard struct {
	Board Board `json:"board"`
}

func NewGameBoard() *GameBoard {
	return &GameBoard{
		Board: Board{
			{EmptyCell, EmptyCell, EmptyCell},
			{EmptyCell, EmptyCell, EmptyCell},
			{EmptyCell, EmptyCell, EmptyCell},
		},
	}
}
