package bot

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type deleteKey struct {
	chatID    int64
	messageID int
}

// deleteScheduler runs deferred best-effort message deletions, one
// cancellable timer per message. Cancelling a key whose timer already
// fired is a no-op; a failed deletion is logged, never surfaced.
type deleteScheduler struct {
	mu       sync.Mutex
	timers   map[deleteKey]*time.Timer
	deleteFn func(chatID int64, messageID int) error
	logger   *zap.Logger
}

func newDeleteScheduler(deleteFn func(chatID int64, messageID int) error, logger *zap.Logger) *deleteScheduler {
	return &deleteScheduler{
		timers:   make(map[deleteKey]*time.Timer),
		deleteFn: deleteFn,
		logger:   logger,
	}
}

// Schedule arms a deletion for a message after the delay. Scheduling the
// same message again resets its timer.
func (s *deleteScheduler) Schedule(chatID int64, messageID int, delay time.Duration) {
	key := deleteKey{chatID: chatID, messageID: messageID}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[key]; ok {
		t.Stop()
	}
	s.timers[key] = time.AfterFunc(delay, func() {
		s.fire(key)
	})
}

func (s *deleteScheduler) fire(key deleteKey) {
	s.mu.Lock()
	delete(s.timers, key)
	s.mu.Unlock()

	if err := s.deleteFn(key.chatID, key.messageID); err != nil {
		// The target may already be gone; either way this stays best effort
		s.logger.Warn("Auto-delete failed",
			zap.Int64("chat_id", key.chatID),
			zap.Int("message_id", key.messageID),
			zap.Error(err),
		)
	}
}

// Cancel disarms a pending deletion; no-op if it already fired
func (s *deleteScheduler) Cancel(chatID int64, messageID int) {
	key := deleteKey{chatID: chatID, messageID: messageID}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[key]; ok {
		t.Stop()
		delete(s.timers, key)
	}
}

// Stop disarms every pending deletion, used on shutdown
func (s *deleteScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
}

// Pending returns the number of armed deletions
func (s *deleteScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
