package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	resultRepo := NewResultRepository(st.Storage, 10)

	// Given: a finished game won by x
	result := &entity.Result{
		ID:         "123",
		Winner:     entity.MarkX.String(),
		Moves:      7,
		PlayerX:    entity.KindComputer,
		PlayerO:    entity.KindHuman,
		FinishedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	// When: Save is called
	err := resultRepo.Save(ctx, result)

	// Then: no error should be returned, and the result is stored
	require.NoError(t, err)

	recent, err := resultRepo.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, result, recent[0])
}

func TestResultRepository_Recent(t *testing.T) {
	t.Run("Recent_NewestFirst", func(t *testing.T) {
		ctx, st := suite.New(t)

		resultRepo := NewResultRepository(st.Storage, 10)

		// Given: three saved results
		saveResults(ctx, t, resultRepo, "1", "2", "3")

		// When: Recent is called with a limit of two
		recent, err := resultRepo.Recent(ctx, 2)

		// Then: the two newest results are returned, newest first
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "3", recent[0].ID)
		assert.Equal(t, "2", recent[1].ID)
	})

	t.Run("Recent_TrimmedToHistory", func(t *testing.T) {
		ctx, st := suite.New(t)

		resultRepo := NewResultRepository(st.Storage, 2)

		// Given: more results than the history keeps
		saveResults(ctx, t, resultRepo, "1", "2", "3")

		// When: Recent is called with a large limit
		recent, err := resultRepo.Recent(ctx, 100)

		// Then: only the newest two remain
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "3", recent[0].ID)
		assert.Equal(t, "2", recent[1].ID)
	})

	t.Run("Recent_Empty", func(t *testing.T) {
		ctx, st := suite.New(t)

		resultRepo := NewResultRepository(st.Storage, 10)

		recent, err := resultRepo.Recent(ctx, 10)

		require.NoError(t, err)
		assert.Empty(t, recent)
	})

	t.Run("Recent_InvalidLimit", func(t *testing.T) {
		ctx, st := suite.New(t)

		resultRepo := NewResultRepository(st.Storage, 10)

		_, err := resultRepo.Recent(ctx, 0)

		require.ErrorIs(t, err, ErrInvalidLimit)
	})
}

func TestResultRepository_Stats(t *testing.T) {
	ctx, st := suite.New(t)

	resultRepo := NewResultRepository(st.Storage, 1)

	// Given: two wins for x, one for o and a draw
	outcomes := []string{entity.MarkX.String(), entity.MarkO.String(), entity.MarkX.String(), entity.OutcomeDraw}
	for _, outcome := range outcomes {
		require.NoError(t, resultRepo.Save(ctx, &entity.Result{Winner: outcome}))
	}

	// When: Stats is called
	stats, err := resultRepo.Stats(ctx)

	// Then: every outcome is counted, regardless of the history size
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"x": 2, "o": 1, "draw": 1}, stats)
}

func saveResults(ctx context.Context, t *testing.T, repo ResultRepository, ids ...string) {
	t.Helper()

	for _, id := range ids {
		require.NoError(t, repo.Save(ctx, &entity.Result{ID: id, Winner: entity.OutcomeDraw}))
	}
}
