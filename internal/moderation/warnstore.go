package moderation

import (
	"context"
	"sync"

	"hackerbot/internal/storage"
)

// WarningStore is a durable, monotonically non-decreasing violation
// counter per user. Every increment is persisted synchronously; a failed
// persist is retried exactly once with the same computed count, so a
// retry can never double-count.
type WarningStore struct {
	db storage.Storage

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewWarningStore creates a warning store backed by db
func NewWarningStore(db storage.Storage) *WarningStore {
	return &WarningStore{
		db:    db,
		locks: make(map[int64]*sync.Mutex),
	}
}

// userLock returns the mutex serializing mutations for one user.
// Unrelated users proceed concurrently.
func (s *WarningStore) userLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// Get returns the current violation count for a user, 0 if unknown
func (s *WarningStore) Get(ctx context.Context, userID int64) (int, error) {
	return s.db.GetWarningCount(ctx, userID)
}

// Increment adds one violation for a user and persists the new count
// before returning it
func (s *WarningStore) Increment(ctx context.Context, userID int64) (int, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	count, err := s.db.GetWarningCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	count++

	if err := s.db.SetWarningCount(ctx, userID, count); err != nil {
		// One retry of the idempotent absolute write
		if err = s.db.SetWarningCount(ctx, userID, count); err != nil {
			return 0, err
		}
	}
	return count, nil
}
