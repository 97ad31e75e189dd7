package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/gofive-backend/internal/apperror"
	"github.com/rocketscienceinc/gofive-backend/internal/entity"
)

const DefaultLeaderboardLimit = 10

type playerRepoDep interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type scoreRepoDep interface {
	Save(ctx context.Context, score *entity.Score) error
	Top(ctx context.Context, limit int) ([]entity.Score, error)
}

// ScoreUseCase records finished games and reads them back as a leaderboard.
type ScoreUseCase struct {
	logger     *slog.Logger
	scoreRepo  scoreRepoDep
	playerRepo playerRepoDep
	now        func() time.Time
}

func NewScoreUseCase(logger *slog.Logger, scoreRepo scoreRepoDep, playerRepo playerRepoDep) *ScoreUseCase {
	return &ScoreUseCase{
		logger:     logger.With("component", "score"),
		scoreRepo:  scoreRepo,
		playerRepo: playerRepo,
		now:        time.Now,
	}
}

// Report - stores a won game for the player with the given identity.
func (that *ScoreUseCase) Report(ctx context.Context, identity string, steps, timeSeconds int) error {
	if identity == "" {
		return fmt.Errorf("%w: empty identity", apperror.ErrInvalidScore)
	}

	if steps < 0 || timeSeconds < 0 {
		return fmt.Errorf("%w: steps %d, time %d", apperror.ErrInvalidScore, steps, timeSeconds)
	}

	score := &entity.Score{
		PlayerID:  identity,
		Steps:     steps,
		Time:      timeSeconds,
		CreatedAt: that.now().UTC(),
	}

	if err := that.scoreRepo.Save(ctx, score); err != nil {
		return fmt.Errorf("failed to save score: %w", err)
	}

	return nil
}

// Leaderboard - returns the best scores, fewest steps first, then fastest.
func (that *ScoreUseCase) Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	log := that.logger.With("method", "Leaderboard")

	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	scores, err := that.scoreRepo.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top scores: %w", err)
	}

	names := make(map[string]string, len(scores))
	entries := make([]entity.LeaderboardEntry, 0, len(scores))

	for _, score := range scores {
		name, ok := names[score.PlayerID]
		if !ok {
			name, err = that.playerName(ctx, score.PlayerID)
			if err != nil {
				return nil, err
			}

			names[score.PlayerID] = name
		}

		if name == "" {
			log.Warn("score without a named player", "player_id", score.PlayerID)
			continue
		}

		entries = append(entries, entity.LeaderboardEntry{
			Name:  name,
			Steps: score.Steps,
			Time:  score.Time,
		})
	}

	return entries, nil
}

func (that *ScoreUseCase) playerName(ctx context.Context, playerID string) (string, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if errors.Is(err, apperror.ErrNotFound) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("failed to get player by id: %w", err)
	}

	return player.Name, nil
}
