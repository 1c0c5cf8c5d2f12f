package quiz

import (
	"errors"
	"sort"
	"sync"

	"hackerbot/internal/models"
)

// ErrNoQuestions is returned when a quiz is started with an empty question set
var ErrNoQuestions = errors.New("quiz: no questions to ask")

// Score is one participant's tally in a finished quiz
type Score struct {
	UserID  int64
	Correct int
}

// Advance describes what happened after recording an answer: either the
// next question to emit, or the final leaderboard once the last question
// has been answered.
type Advance struct {
	Finished    bool
	Next        models.Question
	NextIndex   int
	Leaderboard []Score
	Total       int
}

// session is the per-chat quiz state. Scores are scoped strictly to the
// owning chat so concurrent quizzes in different chats cannot corrupt
// each other's leaderboard.
type session struct {
	mu        sync.Mutex
	questions []models.Question
	index     int
	active    bool
	scores    map[int64]int
	order     []int64 // first-answer order, used as the leaderboard tie-break
}

// Engine drives one quiz session per chat
type Engine struct {
	mu       sync.Mutex
	sessions map[int64]*session
	polls    map[string]int64 // poll id -> chat id
}

// NewEngine creates an empty quiz engine
func NewEngine() *Engine {
	return &Engine{
		sessions: make(map[int64]*session),
		polls:    make(map[string]int64),
	}
}

// Start begins a quiz for a chat, replacing any previous session, and
// returns the first question to emit. Fails with ErrNoQuestions when
// the question set is empty.
func (e *Engine) Start(chatID int64, questions []models.Question) (models.Question, error) {
	if len(questions) == 0 {
		return models.Question{}, ErrNoQuestions
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.sessions[chatID] = &session{
		questions: questions,
		index:     0,
		active:    true,
		scores:    make(map[int64]int),
	}
	// Drop poll bindings left over from an earlier quiz in this chat
	for pollID, cid := range e.polls {
		if cid == chatID {
			delete(e.polls, pollID)
		}
	}

	return questions[0], nil
}

// Active reports whether a quiz is currently running in a chat
func (e *Engine) Active(chatID int64) bool {
	s := e.session(chatID)
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// BindPoll associates an emitted poll with its chat so answers, which
// arrive keyed by poll id only, can be routed back
func (e *Engine) BindPoll(chatID int64, pollID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.polls[pollID] = chatID
}

// ChatForPoll resolves the chat a poll belongs to
func (e *Engine) ChatForPoll(pollID string) (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	chatID, ok := e.polls[pollID]
	return chatID, ok
}

func (e *Engine) session(chatID int64) *session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions[chatID]
}

// RecordAnswer scores one answer and advances the session. Answers for
// chats with no session, inactive sessions, or sessions already past the
// last question are ignored (handled == false): duplicate and late
// answers are idempotent no-ops.
//
// The score increments by one iff the chosen option equals the current
// question's correct index; the index advances regardless. When the
// index reaches the question count the session deactivates and the
// leaderboard is returned, sorted by score descending with ties broken
// by who answered first.
func (e *Engine) RecordAnswer(chatID, userID int64, chosenOption int) (Advance, bool) {
	s := e.session(chatID)
	if s == nil {
		return Advance{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active || s.index >= len(s.questions) {
		return Advance{}, false
	}

	if _, seen := s.scores[userID]; !seen {
		s.scores[userID] = 0
		s.order = append(s.order, userID)
	}
	if chosenOption == s.questions[s.index].Correct {
		s.scores[userID]++
	}
	s.index++

	if s.index == len(s.questions) {
		s.active = false
		return Advance{
			Finished:    true,
			Leaderboard: s.leaderboardLocked(),
			Total:       len(s.questions),
		}, true
	}

	return Advance{
		Next:      s.questions[s.index],
		NextIndex: s.index,
		Total:     len(s.questions),
	}, true
}

// leaderboardLocked builds the sorted leaderboard; s.mu must be held
func (s *session) leaderboardLocked() []Score {
	rank := make(map[int64]int, len(s.order))
	for i, userID := range s.order {
		rank[userID] = i
	}

	scores := make([]Score, 0, len(s.scores))
	for userID, correct := range s.scores {
		scores = append(scores, Score{UserID: userID, Correct: correct})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Correct != scores[j].Correct {
			return scores[i].Correct > scores[j].Correct
		}
		return rank[scores[i].UserID] < rank[scores[j].UserID]
	})
	return scores
}
