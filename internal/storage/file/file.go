package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"

	"hackerbot/internal/models"
)

// FileDB persists warnings and quiz results as JSON files on disk.
// The warnings file is a single JSON object mapping string user-id to
// integer count; the full mapping is rewritten synchronously on every
// change.
type FileDB struct {
	mu           sync.Mutex
	warningsPath string
	resultsPath  string
	warnings     map[string]int
	results      []models.QuizResult
}

// NewFileDB creates a file-backed store rooted at the given warnings file.
// Quiz results are kept in a sibling file next to it.
func NewFileDB(warningsPath, resultsPath string) *FileDB {
	return &FileDB{
		warningsPath: warningsPath,
		resultsPath:  resultsPath,
		warnings:     make(map[string]int),
	}
}

// Initialize loads existing state from disk, creating empty files if absent
func (f *FileDB) Initialize(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.loadWarnings(); err != nil {
		return err
	}
	return f.loadResults()
}

func (f *FileDB) loadWarnings() error {
	data, err := os.ReadFile(f.warningsPath)
	if os.IsNotExist(err) {
		return f.flushWarnings()
	}
	if err != nil {
		return fmt.Errorf("failed to read warnings file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &f.warnings); err != nil {
		return fmt.Errorf("failed to parse warnings file: %w", err)
	}
	return nil
}

func (f *FileDB) loadResults() error {
	data, err := os.ReadFile(f.resultsPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read quiz results file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &f.results); err != nil {
		return fmt.Errorf("failed to parse quiz results file: %w", err)
	}
	return nil
}

func (f *FileDB) flushWarnings() error {
	data, err := json.Marshal(f.warnings)
	if err != nil {
		return fmt.Errorf("failed to serialize warnings: %w", err)
	}
	if err := os.WriteFile(f.warningsPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write warnings file: %w", err)
	}
	return nil
}

func (f *FileDB) flushResults() error {
	data, err := json.Marshal(f.results)
	if err != nil {
		return fmt.Errorf("failed to serialize quiz results: %w", err)
	}
	if err := os.WriteFile(f.resultsPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write quiz results file: %w", err)
	}
	return nil
}

// GetWarningCount returns the violation count for a user, 0 if unknown
func (f *FileDB) GetWarningCount(ctx context.Context, userID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.warnings[strconv.FormatInt(userID, 10)], nil
}

// SetWarningCount writes the absolute violation count for a user and
// persists the full mapping before returning
func (f *FileDB) SetWarningCount(ctx context.Context, userID int64, count int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strconv.FormatInt(userID, 10)
	prev, had := f.warnings[key]
	f.warnings[key] = count
	if err := f.flushWarnings(); err != nil {
		// Roll back the in-memory value so a later retry observes the
		// same state the caller computed against
		if had {
			f.warnings[key] = prev
		} else {
			delete(f.warnings, key)
		}
		return err
	}
	return nil
}

// SaveQuizResult records one participant's result of a finished quiz
func (f *FileDB) SaveQuizResult(ctx context.Context, result models.QuizResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.results = append(f.results, result)
	return f.flushResults()
}

// TopQuizResults returns up to limit best results for a chat, best score first
func (f *FileDB) TopQuizResults(ctx context.Context, chatID int64, limit int) ([]models.QuizResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	best := make(map[int64]models.QuizResult)
	for _, r := range f.results {
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

// Close does nothing for the file store
func (f *FileDB) Close() error {
	return nil
}
