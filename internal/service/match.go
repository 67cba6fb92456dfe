package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

type MatchService interface {
	NewMatch(ctx context.Context) (*entity.Match, error)
	GetMatch(ctx context.Context, id string) (*entity.Match, error)
	DeleteMatch(ctx context.Context, id string) error

	InitialPlayers() entity.Players
}

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
}

type matchService struct {
	matchRepo matchRepo
}

func NewMatchService(matchRepo matchRepo) MatchService {
	return &matchService{
		matchRepo: matchRepo,
	}
}

// InitialPlayers - the pair every new match starts with.
func (that *matchService) InitialPlayers() entity.Players {
	return entity.Players{
		{ID: 1, Name: "Eric", Symbol: entity.PlayerX},
		{ID: 2, Name: "Jenny", Symbol: entity.PlayerO},
	}
}

func (that *matchService) NewMatch(ctx context.Context) (*entity.Match, error) {
	match := &entity.Match{
		ID:        uuid.NewString(),
		Players:   that.InitialPlayers(),
		GameBoard: entity.NewGameBoard(),
	}

	if err := that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to save match into storage: %w", err)
	}

	return match, nil
}

func (that *matchService) GetMatch(ctx context.Context, id string) (*entity.Match, error) {
	match, err := that.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve match from storage: %w", err)
	}

	return match, nil
}

// DeleteMatch - drops a finished match before its TTL runs out.
func (that *matchService) DeleteMatch(ctx context.Context, id string) error {
	if err := that.matchRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete match from storage: %w", err)
	}

	return nil
}
