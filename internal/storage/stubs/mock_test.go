package stubs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackerbot/internal/models"
)

func TestMockDB_WarningCounts(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	count, err := db.GetWarningCount(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, db.SetWarningCount(ctx, 42, 2))

	count, err = db.GetWarningCount(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMockDB_FailWrites(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	db.FailWrites = true
	assert.Error(t, db.SetWarningCount(ctx, 42, 1))
	assert.Error(t, db.SaveQuizResult(ctx, models.QuizResult{UserID: 42}))

	// Reads still succeed and failed writes left no trace
	count, err := db.GetWarningCount(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	db.FailWrites = false
	assert.NoError(t, db.SetWarningCount(ctx, 42, 1))
}

func TestMockDB_TopQuizResults(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.SaveQuizResult(ctx, models.QuizResult{ChatID: 1, UserID: 100, Score: 2, Total: 5, FinishedAt: base}))
	require.NoError(t, db.SaveQuizResult(ctx, models.QuizResult{ChatID: 1, UserID: 100, Score: 4, Total: 5, FinishedAt: base.Add(time.Hour)}))
	require.NoError(t, db.SaveQuizResult(ctx, models.QuizResult{ChatID: 1, UserID: 200, Score: 5, Total: 5, FinishedAt: base}))
	require.NoError(t, db.SaveQuizResult(ctx, models.QuizResult{ChatID: 2, UserID: 300, Score: 5, Total: 5, FinishedAt: base}))

	top, err := db.TopQuizResults(ctx, 1, 10)
	require.NoError(t, err)

	require.Len(t, top, 2, "other chats must not leak into the leaderboard")
	assert.Equal(t, int64(200), top[0].UserID)
	assert.Equal(t, 5, top[0].Score)
	assert.Equal(t, int64(100), top[1].UserID)
	assert.Equal(t, 4, top[1].Score, "only a user's best score counts")

	top, err = db.TopQuizResults(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}
