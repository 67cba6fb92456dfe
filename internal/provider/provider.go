// Package provider supplies the players and board a match starts from.
package provider

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/config"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

type MatchProvider interface {
	NewMatch(ctx context.Context) (*entity.Match, error)
}

// New picks the provider named by the client config.
func New(conf config.Client) (MatchProvider, error) {
	switch conf.Source {
	case config.SourceLocal:
		return NewLocal(), nil
	case config.SourceRemote:
		return NewRemote(conf.BaseURL, conf.Timeout), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownSource, conf.Source)
	}
}
