package bot

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Start starts the bot in polling mode
func (b *Bot) Start() error {
	b.logger.Info("Starting bot in polling mode")

	// Remove webhook (if any was set previously)
	_, err := b.api.Request(tgbotapi.DeleteWebhookConfig{})
	if err != nil {
		b.logger.Warn("Failed to delete webhook", zap.Error(err))
	}

	// Create update configuration. Poll answers are not delivered unless
	// asked for explicitly.
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	u.AllowedUpdates = []string{"message", "poll_answer"}

	// Get updates channel
	updates := b.api.GetUpdatesChan(u)

	go b.janitorLoop()

	b.logger.Info("Bot started successfully. Waiting for updates...")

	// Handle updates (blocks here)
	b.handleUpdates(updates)
	return nil
}

// StartWebhook sets up the bot to receive updates via webhook
func (b *Bot) StartWebhook(webhookURL string) error {
	b.logger.Info("Setting up webhook", zap.String("webhook_url", webhookURL))

	// Configure webhook
	webhookConfig, err := tgbotapi.NewWebhook(webhookURL + "/telegram-webhook")
	if err != nil {
		return err
	}
	webhookConfig.MaxConnections = 40
	webhookConfig.AllowedUpdates = []string{"message", "poll_answer"}

	if _, err := b.api.Request(webhookConfig); err != nil {
		b.logger.Error("Failed to set webhook", zap.Error(err), zap.String("webhook_url", webhookURL))
		return err
	}

	// Get webhook info to verify
	info, err := b.api.GetWebhookInfo()
	if err != nil {
		b.logger.Warn("Failed to get webhook info", zap.Error(err))
	} else {
		b.logger.Info("Webhook set successfully",
			zap.String("url", info.URL),
			zap.Int("pending_updates", info.PendingUpdateCount),
		)
	}

	go b.janitorLoop()

	b.logger.Info("Bot configured for webhook mode")
	return nil
}

// handleUpdates processes incoming updates from polling mode, one
// goroutine per update
func (b *Bot) handleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		go b.HandleUpdate(update)
	}
}

// janitorLoop evicts idle spam-limiter entries until the bot stops
func (b *Bot) janitorLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-b.done:
			return
		case now := <-ticker.C:
			if evicted := b.limiter.PruneIdle(now, spamIdleCutoff); evicted > 0 {
				b.logger.Debug("Evicted idle spam entries", zap.Int("count", evicted))
			}
		}
	}
}

// Stop cancels background work: pending auto-deletions and the janitor
func (b *Bot) Stop() {
	close(b.done)
	b.deleter.Stop()
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
}
