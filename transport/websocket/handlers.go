package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gofive-backend/internal/apperror"
	"github.com/rocketscienceinc/gofive-backend/internal/usecase"
)

var (
	errMalformedMessage = errors.New("malformed message")
	errUnknownAction    = errors.New("unknown action")
	errNoGame           = errors.New("no game in progress")
	errMissingField     = errors.New("missing field")
)

// clientErrors are safe to show to the player as they are.
var clientErrors = []error{
	apperror.ErrInvalidMove,
	apperror.ErrCollaboratorUnavailable,
	usecase.ErrInvalidMode,
	usecase.ErrInvalidBoardSize,
	usecase.ErrInvalidName,
	errMalformedMessage,
	errUnknownAction,
	errNoGame,
	errMissingField,
}

func errorText(err error) string {
	for _, known := range clientErrors {
		if errors.Is(err, known) {
			return err.Error()
		}
	}

	return "internal error"
}

func (that *Server) handleConnect(ctx context.Context, c *client, payload *RequestPayload) error {
	log := that.logger.With("method", "handleConnect")

	player := c.currentPlayer()

	if payload.Player != nil && payload.Player.Name != "" {
		if err := that.games.RegisterName(ctx, player, payload.Player.Name); err != nil {
			c.sendError(actionConnect, err)
			return fmt.Errorf("failed to register name: %w", err)
		}
	}

	response := ResponsePayload{Player: player}
	if game := c.currentGame(); game != nil {
		snapshot := game.Snapshot()
		response.Game = &snapshot
	}

	c.sendMessage(actionConnect, response)

	log.Info("successfully connected player", "player_id", player.ID, "anonymous", player.IsAnonymous())

	return nil
}

func (that *Server) handleNewGame(_ context.Context, c *client, payload *RequestPayload) error {
	log := that.logger.With("method", "handleNewGame")

	request := GameRequest{}
	if payload.Game != nil {
		request = *payload.Game
	}

	player := c.currentPlayer()

	game, err := that.games.NewSession(player.ID, request.Mode, request.Size)
	if err != nil {
		c.sendError(actionNewGame, err)
		return fmt.Errorf("failed to create game: %w", err)
	}

	c.attach(game)

	snapshot := game.Snapshot()
	c.sendMessage(actionGameState, ResponsePayload{Player: player, Game: &snapshot})

	log.Info("game started", "player_id", player.ID, "mode", snapshot.Mode, "size", snapshot.Board.Size())

	return nil
}

func (that *Server) handleGameTurn(_ context.Context, c *client, payload *RequestPayload) error {
	game := c.currentGame()
	if game == nil {
		c.sendError(actionTurn, errNoGame)
		return nil
	}

	if payload.Cell == nil {
		c.sendError(actionTurn, fmt.Errorf("%w: cell", errMissingField))
		return nil
	}

	// the new state is pushed by the game observer
	if _, err := game.ApplyMove(*payload.Cell); err != nil {
		c.sendError(actionTurn, err)
	}

	return nil
}

func (that *Server) handleNavigate(_ context.Context, c *client, payload *RequestPayload) error {
	game := c.currentGame()
	if game == nil {
		c.sendError(actionNavigate, errNoGame)
		return nil
	}

	if payload.Ply == nil {
		c.sendError(actionNavigate, fmt.Errorf("%w: ply", errMissingField))
		return nil
	}

	if _, err := game.NavigateTo(*payload.Ply); err != nil {
		c.sendError(actionNavigate, err)
	}

	return nil
}

func (that *Server) handleReset(_ context.Context, c *client, _ *RequestPayload) error {
	game := c.currentGame()
	if game == nil {
		c.sendError(actionReset, errNoGame)
		return nil
	}

	game.Reset()

	return nil
}
