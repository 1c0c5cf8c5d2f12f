package bot

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"hackerbot/internal/ai"
	"hackerbot/internal/config"
	"hackerbot/internal/models"
	"hackerbot/internal/moderation"
	"hackerbot/internal/quiz"
	"hackerbot/internal/spam"
	"hackerbot/internal/storage"
)

const (
	// autoDeleteDelay is how long bot replies stay before best-effort cleanup
	autoDeleteDelay = 45 * time.Second

	// pollOpenPeriod is the answer window of an emitted quiz poll, seconds
	pollOpenPeriod = 30

	// quizQuestionCount is how many questions /poll asks the AI for
	quizQuestionCount = 5

	// leaderboardLimit caps the /leaderboard output
	leaderboardLimit = 10

	// limiter entries idle longer than this are evicted by the janitor
	spamIdleCutoff = 5 * time.Minute

	spamWarning     = "⚠️ SYSTEM ALERT: Please do not spam! This is a warning."
	rejectionNotice = "❌ This bot is private and will now leave this group."
	groupsOnly      = "Polls only work in groups."
)

// Bot represents the Telegram bot wrapper
type Bot struct {
	api       *tgbotapi.BotAPI
	db        storage.Storage
	cfg       *config.Config
	moderator *moderation.Engine
	limiter   *spam.Limiter
	quizzes   *quiz.Engine
	responder ai.Responder
	bank      []models.Question
	deleter   *deleteScheduler
	logger    *zap.Logger
	done      chan struct{}
}
