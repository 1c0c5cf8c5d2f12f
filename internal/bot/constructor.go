package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"hackerbot/internal/ai"
	"hackerbot/internal/config"
	"hackerbot/internal/moderation"
	"hackerbot/internal/quiz"
	"hackerbot/internal/spam"
	"hackerbot/internal/storage"
)

// NewBot creates a new Telegram bot
func NewBot(cfg *config.Config, db storage.Storage, responder ai.Responder, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logger.Error("Failed to create bot API", zap.Error(err))
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	filter, err := moderation.LoadFilter(cfg.BannedWordsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load banned words: %w", err)
	}

	bank := quiz.LoadQuestions(cfg.QuizQuestionsFile)

	logger.Info("Bot created",
		zap.String("bot_username", api.Self.UserName),
		zap.Int("banned_words", len(filter.Words())),
		zap.Int("question_bank", len(bank)),
		zap.Int64s("allowed_chats", cfg.AllowedChatIDs),
	)

	b := &Bot{
		api:       api,
		db:        db,
		cfg:       cfg,
		moderator: moderation.NewEngine(filter, moderation.NewWarningStore(db), logger),
		limiter:   spam.NewLimiter(),
		quizzes:   quiz.NewEngine(),
		responder: responder,
		bank:      bank,
		logger:    logger,
		done:      make(chan struct{}),
	}
	b.deleter = newDeleteScheduler(b.deleteMessage, logger)
	return b, nil
}

// GetAPI returns the bot API for testing
func (b *Bot) GetAPI() *tgbotapi.BotAPI {
	return b.api
}
