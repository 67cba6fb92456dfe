package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/valyala/fasthttp"
)

const defaultTimeout = 5 * time.Second

// Remote fetches matches from the backend. Requests are never retried.
type Remote struct {
	baseURL string
	client  *fasthttp.Client
	timeout time.Duration
}

func NewRemote(baseURL string, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		timeout: timeout,
	}
}

// matchResponse decodes players as a slice so a wrong count is detected instead of padded or cut.
type matchResponse struct {
	ID        string            `json:"id"`
	Players   []entity.Player   `json:"players"`
	GameBoard *entity.GameBoard `json:"game_board"`
}

// NewMatch - GET /new-match.
func (that *Remote) NewMatch(ctx context.Context) (*entity.Match, error) {
	var response matchResponse
	if err := that.getJSON(ctx, "/new-match", &response); err != nil {
		return nil, err
	}

	players, err := toPlayers(response.Players)
	if err != nil {
		return nil, err
	}

	gameBoard := response.GameBoard
	if gameBoard == nil {
		gameBoard = entity.NewGameBoard()
	}

	// a new match starts from an empty board
	if filled := gameBoard.Board.Filled(); filled > 0 {
		return nil, fmt.Errorf("%w: %d cells taken", apperror.ErrInvalidBoard, filled)
	}

	return &entity.Match{
		ID:        response.ID,
		Players:   players,
		GameBoard: gameBoard,
	}, nil
}

// Players - GET /players.
func (that *Remote) Players(ctx context.Context) (entity.Players, error) {
	var response []entity.Player
	if err := that.getJSON(ctx, "/players", &response); err != nil {
		return entity.Players{}, err
	}

	return toPlayers(response)
}

// GameBoard - GET /gameboard.
func (that *Remote) GameBoard(ctx context.Context) (*entity.GameBoard, error) {
	var response entity.GameBoard
	if err := that.getJSON(ctx, "/gameboard", &response); err != nil {
		return nil, err
	}

	return &response, nil
}

func (that *Remote) getJSON(ctx context.Context, path string, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(that.baseURL + path)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("request %s canceled: %w", path, err)
	}

	if err := that.client.DoDeadline(req, resp, that.deadline(ctx)); err != nil {
		return fmt.Errorf("request %s failed: %w", path, err)
	}

	if status := resp.StatusCode(); status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		return fmt.Errorf("%w: %s returned %d", apperror.ErrUnexpectedStatus, path, status)
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	return nil
}

// deadline - the earlier of the context deadline and the fixed client timeout.
func (that *Remote) deadline(ctx context.Context) time.Time {
	clientDeadline := time.Now().Add(that.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(clientDeadline) {
		return ctxDeadline
	}

	return clientDeadline
}

func toPlayers(players []entity.Player) (entity.Players, error) {
	if len(players) != len(entity.Players{}) {
		return entity.Players{}, fmt.Errorf("%w: got %d", apperror.ErrInvalidPlayers, len(players))
	}

	for _, player := range players {
		if utf8.RuneCountInString(player.Symbol) != 1 {
			return entity.Players{}, fmt.Errorf("%w: player %d has symbol %q", apperror.ErrInvalidPlayers, player.ID, player.Symbol)
		}
	}

	if players[0].Symbol == players[1].Symbol {
		return entity.Players{}, fmt.Errorf("%w: both players use %q", apperror.ErrInvalidPlayers, players[0].Symbol)
	}

	if players[0].ID == players[1].ID {
		return entity.Players{}, fmt.Errorf("%w: both players have id %d", apperror.ErrInvalidPlayers, players[0].ID)
	}

	return entity.Players{players[0], players[1]}, nil
}
