package moderation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hackerbot/internal/storage/stubs"
)

func newTestEngine(db *stubs.MockDB) *Engine {
	return NewEngine(NewFilter([]string{"spam"}), NewWarningStore(db), zap.NewNop())
}

func TestWarningStore_MonotonicCounter(t *testing.T) {
	db := stubs.NewMockDB()
	store := NewWarningStore(db)
	ctx := context.Background()

	count, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "unknown user starts at zero")

	for i := 1; i <= 5; i++ {
		count, err = store.Increment(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	count, err = store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	// Other users are unaffected
	count, err = store.Get(ctx, 43)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestWarningStore_ConcurrentIncrements(t *testing.T) {
	db := stubs.NewMockDB()
	store := NewWarningStore(db)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Increment(ctx, 7)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := store.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, n, count, "no increment may be lost")
}

func TestWarningStore_FailedPersistIsSurfaced(t *testing.T) {
	db := stubs.NewMockDB()
	db.FailWrites = true
	store := NewWarningStore(db)
	ctx := context.Background()

	_, err := store.Increment(ctx, 42)
	require.Error(t, err)

	// The failed increment left no trace; the next successful one is 1,
	// not 2 (exactly-once, no double counting from retries)
	db.FailWrites = false
	count, err := store.Increment(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEngine_Escalation(t *testing.T) {
	db := stubs.NewMockDB()
	engine := newTestEngine(db)
	ctx := context.Background()

	// The same offending message three times: warn, mute, ban
	steps := []struct {
		kind   ActionKind
		count  int
		mute   time.Duration
		notice string
	}{
		{kind: ActionWarn, count: 1, notice: warnNotice},
		{kind: ActionMute, count: 2, mute: time.Hour, notice: muteNotice},
		{kind: ActionBan, count: 3, notice: banNotice},
	}

	for _, step := range steps {
		action, err := engine.Evaluate(ctx, 42, "this is spam")
		require.NoError(t, err)
		assert.Equal(t, step.kind, action.Kind)
		assert.Equal(t, step.count, action.Count)
		assert.Equal(t, step.mute, action.MuteDuration)
		assert.Equal(t, step.notice, action.Notice)
		assert.Equal(t, "spam", action.Word)

		// Count persisted after each violation
		persisted, err := db.GetWarningCount(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, step.count, persisted)
	}

	// Count 4 and beyond stays a ban
	action, err := engine.Evaluate(ctx, 42, "spam again")
	require.NoError(t, err)
	assert.Equal(t, ActionBan, action.Kind)
	assert.Equal(t, 4, action.Count)
}

func TestEngine_CleanMessage(t *testing.T) {
	db := stubs.NewMockDB()
	engine := newTestEngine(db)
	ctx := context.Background()

	action, err := engine.Evaluate(ctx, 42, "perfectly fine message")
	require.NoError(t, err)
	assert.Equal(t, ActionNone, action.Kind)

	count, err := db.GetWarningCount(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "clean messages never touch the counter")
}

func TestEngine_StorageFailureAbortsAction(t *testing.T) {
	db := stubs.NewMockDB()
	db.FailWrites = true
	engine := newTestEngine(db)

	action, err := engine.Evaluate(context.Background(), 42, "this is spam")
	require.Error(t, err)
	assert.Equal(t, ActionNone, action.Kind)
}

func TestEngine_UsersEscalateIndependently(t *testing.T) {
	db := stubs.NewMockDB()
	engine := newTestEngine(db)
	ctx := context.Background()

	a1, err := engine.Evaluate(ctx, 1, "spam")
	require.NoError(t, err)
	a2, err := engine.Evaluate(ctx, 2, "spam")
	require.NoError(t, err)

	assert.Equal(t, ActionWarn, a1.Kind)
	assert.Equal(t, ActionWarn, a2.Kind, "second user starts at their own count")
}
