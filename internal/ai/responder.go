package ai

import (
	"context"
	"fmt"

	"hackerbot/internal/models"
)

// Responder forwards free text to a generative-text service. Reply never
// returns an error: every failure is folded into a human-readable
// fallback string so the dispatcher always has something to send.
type Responder interface {
	Reply(ctx context.Context, text string) string
	GenerateQuestions(ctx context.Context, n int) ([]models.Question, error)
}

// Fallback renders a service failure as the user-visible reply text
func Fallback(err error) string {
	return fmt.Sprintf("[AI error: %v]", err)
}
