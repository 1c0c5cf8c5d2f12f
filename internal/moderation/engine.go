package moderation

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ActionKind classifies the outcome of evaluating a message
type ActionKind int

const (
	// ActionNone means the message is clean and processing continues
	ActionNone ActionKind = iota
	// ActionWarn means the message must be deleted and the user warned
	ActionWarn
	// ActionMute means the message must be deleted and the user muted
	ActionMute
	// ActionBan means the message must be deleted and the user banned
	ActionBan
)

// Action is the moderation verdict for one message. Applying the delete,
// mute and ban side effects is the caller's job and is best effort:
// delivery failures are logged, never propagated.
type Action struct {
	Kind         ActionKind
	Word         string
	Count        int
	MuteDuration time.Duration
	Notice       string
}

const (
	warnNotice = "⚠️ SYSTEM ALERT: You broke the group rules. This is warning 1/3."
	muteNotice = "🔇 USER MUTED: 2/3 violations"
	banNotice  = "⛔ USER BANNED: Rule violation limit exceeded."

	muteDuration = time.Hour
)

// Engine decides warn/mute/ban escalation for banned-word violations
type Engine struct {
	filter   *Filter
	warnings *WarningStore
	logger   *zap.Logger
}

// NewEngine creates a moderation engine
func NewEngine(filter *Filter, warnings *WarningStore, logger *zap.Logger) *Engine {
	return &Engine{
		filter:   filter,
		warnings: warnings,
		logger:   logger,
	}
}

// Evaluate checks one message. A clean message yields ActionNone. A
// banned word increments the user's durable violation count and the
// post-increment count alone determines the verdict: 1 warns, 2 mutes
// for an hour, 3 and above bans. A storage failure aborts the whole
// action; the count is then unchanged.
func (e *Engine) Evaluate(ctx context.Context, userID int64, text string) (Action, error) {
	word, found := e.filter.Match(text)
	if !found {
		return Action{Kind: ActionNone}, nil
	}

	count, err := e.warnings.Increment(ctx, userID)
	if err != nil {
		e.logger.Error("Failed to persist violation count",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return Action{Kind: ActionNone}, err
	}

	e.logger.Info("Banned word detected",
		zap.Int64("user_id", userID),
		zap.String("word", word),
		zap.Int("count", count),
	)

	action := Action{Word: word, Count: count}
	switch {
	case count == 1:
		action.Kind = ActionWarn
		action.Notice = warnNotice
	case count == 2:
		action.Kind = ActionMute
		action.MuteDuration = muteDuration
		action.Notice = muteNotice
	default:
		action.Kind = ActionBan
		action.Notice = banNotice
	}
	return action, nil
}
