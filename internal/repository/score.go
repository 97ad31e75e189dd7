package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/gofive-backend/internal/entity"
)

const (
	scoreboardKey = "scoreboard"

	// rank packs (steps, time) into one sorted-set score; time stays below this bound.
	rankTimeBound = 1_000_000
)

type ScoreRepository interface {
	Save(ctx context.Context, score *entity.Score) error
	Top(ctx context.Context, limit int) ([]entity.Score, error)
}

type dbScore struct {
	client *redis.Client
}

func NewScoreRepository(client *redis.Client) ScoreRepository {
	return &dbScore{
		client: client,
	}
}

func scoreKey(id string) string {
	return "score:" + id
}

func rank(score *entity.Score) float64 {
	seconds := min(score.Time, rankTimeBound-1)

	return float64(score.Steps)*rankTimeBound + float64(seconds)
}

// Save - stores the score record and indexes it on the scoreboard.
func (that *dbScore) Save(ctx context.Context, score *entity.Score) error {
	scoreJSON, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("failed to marshal score: %w", err)
	}

	id := uuid.NewString()

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, scoreKey(id), scoreJSON, 0)
		pipe.ZAdd(ctx, scoreboardKey, redis.Z{Score: rank(score), Member: id})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save score: %w", err)
	}

	return nil
}

// Top - returns up to limit scores ordered by steps, then time, ascending.
func (that *dbScore) Top(ctx context.Context, limit int) ([]entity.Score, error) {
	if limit <= 0 {
		return []entity.Score{}, nil
	}

	ids, err := that.client.ZRange(ctx, scoreboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read scoreboard: %w", err)
	}

	if len(ids) == 0 {
		return []entity.Score{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, scoreKey(id))
	}

	values, err := that.client.MGet(ctx, keys...).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get scores: %w", err)
	}

	scores := make([]entity.Score, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var score entity.Score
		if err = json.Unmarshal([]byte(raw), &score); err != nil {
			return nil, fmt.Errorf("failed to unmarshal score: %w", err)
		}

		scores = append(scores, score)
	}

	return scores, nil
}
