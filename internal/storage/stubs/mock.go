package stubs

import (
	"context"
	"errors"
	"sort"
	"sync"

	"hackerbot/internal/models"
)

// MockDB is an in-memory implementation of the Storage interface for testing
type MockDB struct {
	mu       sync.RWMutex
	warnings map[int64]int
	results  []models.QuizResult

	// FailWrites makes every write operation return an error when set,
	// to exercise storage-failure paths in callers
	FailWrites bool
}

var errWriteFailed = errors.New("mock storage: write failed")

// NewMockDB creates a new mock database
func NewMockDB() *MockDB {
	return &MockDB{
		warnings: make(map[int64]int),
		results:  make([]models.QuizResult, 0),
	}
}

// Initialize does nothing for the mock
func (m *MockDB) Initialize(ctx context.Context) error {
	return nil
}

// GetWarningCount returns the violation count for a user, 0 if unknown
func (m *MockDB) GetWarningCount(ctx context.Context, userID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.warnings[userID], nil
}

// SetWarningCount writes the absolute violation count for a user
func (m *MockDB) SetWarningCount(ctx context.Context, userID int64, count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return errWriteFailed
	}
	m.warnings[userID] = count
	return nil
}

// SaveQuizResult records one participant's result of a finished quiz
func (m *MockDB) SaveQuizResult(ctx context.Context, result models.QuizResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return errWriteFailed
	}
	m.results = append(m.results, result)
	return nil
}

// TopQuizResults returns up to limit best results for a chat, best score first
func (m *MockDB) TopQuizResults(ctx context.Context, chatID int64, limit int) ([]models.QuizResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	best := make(map[int64]models.QuizResult)
	for _, r := range m.results {
		if r.ChatID != chatID {
			continue
		}
		cur, ok := best[r.UserID]
		if !ok || r.Score > cur.Score {
			best[r.UserID] = r
		}
	}

	results := make([]models.QuizResult, 0, len(best))
	for _, r := range best {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].FinishedAt.Before(results[j].FinishedAt)
	})

	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results, nil
}

// Close does nothing for mock DB
func (m *MockDB) Close() error {
	return nil
}
