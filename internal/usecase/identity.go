package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/gofive-backend/internal/apperror"
)

// PlayerIdentity resolves who is signed in on one connection.
// The player is re-read on every call so a name registered mid-game counts.
type PlayerIdentity struct {
	playerRepo playerRepoDep
	playerID   string
}

func NewPlayerIdentity(playerRepo playerRepoDep, playerID string) *PlayerIdentity {
	return &PlayerIdentity{
		playerRepo: playerRepo,
		playerID:   playerID,
	}
}

// CurrentIdentity - returns the player ID, or "" for an unknown or anonymous player.
func (that *PlayerIdentity) CurrentIdentity(ctx context.Context) (string, error) {
	if that.playerID == "" {
		return "", nil
	}

	player, err := that.playerRepo.GetByID(ctx, that.playerID)
	if errors.Is(err, apperror.ErrNotFound) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.IsAnonymous() {
		return "", nil
	}

	return player.ID, nil
}
