package provider

import (
	"context"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

// Local starts every match from constants, without any network.
type Local struct{}

func NewLocal() *Local {
	return &Local{}
}

func (that *Local) NewMatch(_ context.Context) (*entity.Match, error) {
	return &entity.Match{
		ID: uuid.NewString(),
		Players: entity.Players{
			{ID: 1, Name: "Player 1", Symbol: entity.PlayerX},
			{ID: 2, Name: "Player 2", Symbol: entity.PlayerO},
		},
		GameBoard: entity.NewGameBoard(),
	}, nil
}
