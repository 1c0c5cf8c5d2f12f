package models

import "time"

// Question is a single multiple-choice quiz question
type Question struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Correct int      `json:"correct"`
}

// Valid reports whether the question satisfies the quiz invariants:
// at least two options and a correct index that points into them.
func (q Question) Valid() bool {
	return len(q.Options) >= 2 && q.Correct >= 0 && q.Correct < len(q.Options)
}

// QuizResult is one participant's outcome of a finished quiz
type QuizResult struct {
	ChatID     int64
	UserID     int64
	Score      int
	Total      int
	FinishedAt time.Time
}
