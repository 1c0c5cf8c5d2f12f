package quiz

import (
	"encoding/json"
	"fmt"
	"os"

	"hackerbot/internal/models"
)

// DefaultQuestions returns the built-in question bank, used when no
// question file is configured or loading it fails
func DefaultQuestions() []models.Question {
	return []models.Question{
		{
			Text:    "What does HTML stand for?",
			Options: []string{"Hyper Text Markup Language", "Home Tool Markup Language", "Hyperlinks and Text Markup Language"},
			Correct: 0,
		},
		{
			Text:    "Which is a Python data type?",
			Options: []string{"int", "number", "decimal"},
			Correct: 0,
		},
		{
			Text:    "What is the output of 2 ** 3 in Python?",
			Options: []string{"6", "8", "9"},
			Correct: 1,
		},
		{
			Text:    "Which is used for comments in JS?",
			Options: []string{"// comment", "# comment", "<!-- comment -->"},
			Correct: 0,
		},
		{
			Text:    "DSA: What is FIFO?",
			Options: []string{"Stack", "Queue", "Tree"},
			Correct: 1,
		},
	}
}

// ParseQuestions decodes a JSON array of questions and validates each
// one against the quiz invariants
func ParseQuestions(data []byte) ([]models.Question, error) {
	var questions []models.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("failed to parse questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions found")
	}
	for i, q := range questions {
		if !q.Valid() {
			return nil, fmt.Errorf("question %d is invalid: need >=2 options and a correct index in range", i+1)
		}
	}
	return questions, nil
}

// LoadQuestions reads the question bank from a JSON file, falling back
// to the built-in bank on any error
func LoadQuestions(path string) []models.Question {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultQuestions()
	}
	questions, err := ParseQuestions(data)
	if err != nil {
		return DefaultQuestions()
	}
	return questions
}
