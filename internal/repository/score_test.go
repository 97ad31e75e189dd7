package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gofive-backend/internal/entity"
	"github.com/rocketscienceinc/gofive-backend/testing/suite"
)

func TestScoreRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	scoreRepo := NewScoreRepository(st.Storage)

	// Given: a score record
	score := &entity.Score{
		PlayerID:  "p1",
		Steps:     9,
		Time:      42,
		CreatedAt: time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC),
	}

	// When: Save is called
	err := scoreRepo.Save(ctx, score)

	// Then: the score is stored and ranked
	require.NoError(t, err)

	top, err := scoreRepo.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, *score, top[0])
}

func TestScoreRepository_Top(t *testing.T) {
	t.Run("Orders by steps then time", func(t *testing.T) {
		ctx, st := suite.New(t)

		scoreRepo := NewScoreRepository(st.Storage)

		// Given: scores stored out of order
		scores := []entity.Score{
			{PlayerID: "slow", Steps: 9, Time: 120},
			{PlayerID: "long", Steps: 15, Time: 10},
			{PlayerID: "fast", Steps: 9, Time: 30},
			{PlayerID: "best", Steps: 7, Time: 300},
		}
		for i := range scores {
			require.NoError(t, scoreRepo.Save(ctx, &scores[i]))
		}

		// When: the top three are read
		top, err := scoreRepo.Top(ctx, 3)

		// Then: fewer steps win and time breaks ties
		require.NoError(t, err)
		require.Len(t, top, 3)
		assert.Equal(t, "best", top[0].PlayerID)
		assert.Equal(t, "fast", top[1].PlayerID)
		assert.Equal(t, "slow", top[2].PlayerID)
	})

	t.Run("Empty scoreboard", func(t *testing.T) {
		ctx, st := suite.New(t)

		scoreRepo := NewScoreRepository(st.Storage)

		top, err := scoreRepo.Top(ctx, 10)

		require.NoError(t, err)
		assert.Empty(t, top)
	})
}
