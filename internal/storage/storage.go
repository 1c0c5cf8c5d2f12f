package storage

import (
	"context"

	"hackerbot/internal/models"
)

// Storage defines the interface for data storage operations
type Storage interface {
	// Warning operations

	// GetWarningCount returns the violation count for a user, 0 if unknown
	GetWarningCount(ctx context.Context, userID int64) (int, error)

	// SetWarningCount writes the absolute violation count for a user.
	// The write is idempotent: repeating it with the same count must not
	// change the observable state, so callers may safely retry it.
	SetWarningCount(ctx context.Context, userID int64, count int) error

	// Quiz operations

	// SaveQuizResult records one participant's result of a finished quiz
	SaveQuizResult(ctx context.Context, result models.QuizResult) error

	// TopQuizResults returns up to limit best results for a chat, best score
	// first. Each user appears at most once with their best result.
	TopQuizResults(ctx context.Context, chatID int64, limit int) ([]models.QuizResult, error)

	// Lifecycle
	Initialize(ctx context.Context) error
	Close() error
}
