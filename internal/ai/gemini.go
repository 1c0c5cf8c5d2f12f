package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"hackerbot/internal/models"
	"hackerbot/internal/quiz"
)

const (
	// DefaultModel is the Gemini model used unless configured otherwise
	DefaultModel = "gemini-1.5-flash"

	// callTimeout bounds a single generation call; the limiter of last
	// resort since the service has no explicit deadline of its own
	callTimeout = 30 * time.Second
)

var errEmptyResponse = errors.New("empty response from model")

const questionPromptTemplate = `Generate exactly %d multiple-choice quiz questions about programming ` +
	`(Python, JavaScript, data structures, web basics). Respond with a JSON array only, no prose. ` +
	`Each element must be an object with keys "question" (string), "options" (array of 3 strings) ` +
	`and "correct" (index of the right option, 0-based).`

// Gemini is a Responder backed by the Gemini API. One attempt per call,
// no retries.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewGemini creates a Gemini responder. The key is required; an empty
// model falls back to DefaultModel.
func NewGemini(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Gemini{
		client:  client,
		model:   model,
		timeout: callTimeout,
		logger:  logger,
	}, nil
}

// Reply forwards text to the model and returns its answer, or the
// fallback string on any failure
func (g *Gemini) Reply(ctx context.Context, text string) string {
	out, err := g.generate(ctx, text)
	if err != nil {
		g.logger.Warn("AI reply failed", zap.Error(err))
		return Fallback(err)
	}
	return out
}

// GenerateQuestions asks the model for n quiz questions encoded as JSON
func (g *Gemini) GenerateQuestions(ctx context.Context, n int) ([]models.Question, error) {
	out, err := g.generate(ctx, fmt.Sprintf(questionPromptTemplate, n))
	if err != nil {
		return nil, err
	}
	return ParseGeneratedQuestions(out)
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if t, ok := part.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", errEmptyResponse
	}
	return sb.String(), nil
}

// Close releases the underlying API client
func (g *Gemini) Close() error {
	return g.client.Close()
}

// ParseGeneratedQuestions decodes model output into validated questions.
// Models routinely wrap JSON in markdown code fences, so those are
// stripped first.
func ParseGeneratedQuestions(raw string) ([]models.Question, error) {
	return quiz.ParseQuestions([]byte(stripCodeFence(raw)))
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop a language tag like "json" on the fence line
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
