package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/gofive-backend/internal/entity"
)

const maxScoreboardLimit = 100

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	ScoreboardHandler(w http.ResponseWriter, r *http.Request)
}

type leaderboard interface {
	Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type handlers struct {
	logger       *slog.Logger
	leaderboard  leaderboard
	defaultLimit int
}

func NewHandlers(logger *slog.Logger, leaderboard leaderboard, defaultLimit int) Handlers {
	return &handlers{
		logger:       logger,
		leaderboard:  leaderboard,
		defaultLimit: defaultLimit,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// ScoreboardHandler - GET /scoreboard?limit=N, best games first.
func (that *handlers) ScoreboardHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ScoreboardHandler")

	limit := that.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxScoreboardLimit {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}

		limit = parsed
	}

	entries, err := that.leaderboard.Leaderboard(r.Context(), limit)
	if err != nil {
		log.Error("failed to get leaderboard", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(entries); err != nil {
		log.Error("failed to encode leaderboard", "error", err)
	}
}
