package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/gofive-backend/internal/apperror"
	"github.com/rocketscienceinc/gofive-backend/internal/entity"
	"github.com/rocketscienceinc/gofive-backend/internal/session"
)

const (
	minBoardSize = 5
	maxBoardSize = 25

	maxNameLength = 32
)

var (
	ErrInvalidMode      = errors.New("invalid game mode")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrInvalidName      = errors.New("invalid player name")
)

type GameSettings struct {
	BoardSize  int
	AIDelayMin time.Duration
	AIDelayMax time.Duration
}

// GameManager owns players and builds sessions wired to the score sink.
type GameManager struct {
	logger     *slog.Logger
	settings   GameSettings
	playerRepo playerRepoDep
	scores     *ScoreUseCase
}

func NewGameManager(logger *slog.Logger, settings GameSettings, playerRepo playerRepoDep, scores *ScoreUseCase) *GameManager {
	if settings.BoardSize == 0 {
		settings.BoardSize = entity.DefaultBoardSize
	}

	return &GameManager{
		logger:     logger,
		settings:   settings,
		playerRepo: playerRepo,
		scores:     scores,
	}
}

// GetOrCreatePlayer - returns the stored player, a new anonymous one when id is empty or unknown.
func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		return that.createPlayer(ctx)
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrNotFound) {
		return that.createPlayer(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id %w", err)
	}

	return player, nil
}

// RegisterName - signs the player in under a display name.
func (that *GameManager) RegisterName(ctx context.Context, player *entity.Player, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLength {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if player.Name == name {
		return nil
	}

	player.Name = name
	if err := that.updatePlayer(ctx, player); err != nil {
		return err
	}

	that.logger.With("method", "RegisterName").Info("player registered", "player_id", player.ID)

	return nil
}

// NewSession - starts a game for the player. size 0 means the configured board size.
func (that *GameManager) NewSession(playerID string, mode session.Mode, size int) (*session.GameSession, error) {
	if mode == "" {
		mode = session.ModeHuman
	}

	if mode != session.ModeHuman && mode != session.ModeAI {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	if size == 0 {
		size = that.settings.BoardSize
	}

	if size < minBoardSize || size > maxBoardSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBoardSize, size)
	}

	gameSession := session.New(that.logger.With("player_id", playerID), session.Settings{
		BoardSize:  size,
		Mode:       mode,
		AIDelayMin: that.settings.AIDelayMin,
		AIDelayMax: that.settings.AIDelayMax,
	}, session.Dependencies{
		Reporter: that.scores,
		Identity: NewPlayerIdentity(that.playerRepo, playerID),
	})

	return gameSession, nil
}

func (that *GameManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: uuid.NewString(),
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
