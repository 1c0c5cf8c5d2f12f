package bot

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"hackerbot/internal/moderation"
)

// HandleUpdate routes one inbound update. Updates are independent; the
// lifecycle runs each in its own goroutine and all shared state below
// is mutex-guarded.
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	// Recover from panics to prevent bot crashes
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in HandleUpdate", zap.Any("panic", r))
		}
	}()

	if update.PollAnswer != nil {
		b.handlePollAnswer(update.PollAnswer)
		return
	}

	message := update.Message
	if message == nil || message.Text == "" || message.From == nil {
		return
	}

	// Allow-list check: leave chats the bot is not configured for.
	// Private chats have nowhere to leave from and are always served.
	if !message.Chat.IsPrivate() && !b.cfg.ChatAllowed(message.Chat.ID) {
		b.rejectChat(message.Chat.ID)
		return
	}

	if message.IsCommand() {
		b.handleCommand(message)
		return
	}
	b.handleText(message)
}

// rejectChat announces the rejection and leaves
func (b *Bot) rejectChat(chatID int64) {
	b.logger.Info("Rejecting disallowed chat", zap.Int64("chat_id", chatID))
	b.sendEphemeral(chatID, rejectionNotice)
	b.leaveChat(chatID)
}

// handleCommand dispatches the closed set of commands
func (b *Bot) handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "help":
		b.handleHelp(message)
	case "poll":
		b.handlePollCommand(message)
	case "material":
		b.handleMaterial(message)
	case "leaderboard":
		b.handleLeaderboard(message)
	default:
		b.sendEphemeral(message.Chat.ID, "Unknown command. Use /help to see available commands.")
	}
}

// handleText runs plain group text through moderation, then the spam
// limiter, then the AI responder, in short-circuiting order
func (b *Bot) handleText(message *tgbotapi.Message) {
	ctx := context.Background()

	if message.Chat.IsGroup() || message.Chat.IsSuperGroup() {
		action, err := b.moderator.Evaluate(ctx, message.From.ID, message.Text)
		if err != nil {
			// Storage failed even after the retry; abort the whole
			// moderation action and leave the message alone
			return
		}
		if action.Kind != moderation.ActionNone {
			b.applyModeration(message, action)
			return
		}
	}

	if b.limiter.RegisterAndCheck(message.From.ID, time.Now()) {
		b.sendEphemeralReply(message.Chat.ID, message.MessageID, spamWarning)
		return
	}

	b.sendTyping(message.Chat.ID)
	reply := b.responder.Reply(ctx, message.Text)
	b.sendEphemeralReply(message.Chat.ID, message.MessageID, reply)
}

// applyModeration applies a non-None verdict: delete the offending
// message, then mute or ban as escalation demands, then post the
// notice. Every side effect is best effort.
func (b *Bot) applyModeration(message *tgbotapi.Message, action moderation.Action) {
	chatID := message.Chat.ID
	userID := message.From.ID

	if err := b.deleteMessage(chatID, message.MessageID); err != nil {
		b.logger.Warn("Failed to delete offending message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", message.MessageID),
			zap.Error(err),
		)
	}

	b.logger.Info("Moderation action",
		zap.Int64("chat_id", chatID),
		zap.Int64("user_id", userID),
		zap.String("username", message.From.UserName),
		zap.String("word", action.Word),
		zap.Int("count", action.Count),
	)

	switch action.Kind {
	case moderation.ActionWarn:
		msg := tgbotapi.NewMessage(chatID, action.Notice)
		msg.ReplyToMessageID = message.MessageID
		b.sendMessage(msg)
	case moderation.ActionMute:
		b.muteMember(chatID, userID, time.Now().Add(action.MuteDuration))
		b.sendMessage(tgbotapi.NewMessage(chatID, action.Notice))
	case moderation.ActionBan:
		b.banMember(chatID, userID)
		b.sendMessage(tgbotapi.NewMessage(chatID, action.Notice))
	}
}

// handlePollAnswer routes a quiz answer to the owning chat's session
func (b *Bot) handlePollAnswer(answer *tgbotapi.PollAnswer) {
	chatID, ok := b.quizzes.ChatForPoll(answer.PollID)
	if !ok {
		return
	}
	if len(answer.OptionIDs) == 0 {
		// A retracted vote carries no option; nothing to score
		return
	}

	advance, handled := b.quizzes.RecordAnswer(chatID, answer.User.ID, answer.OptionIDs[0])
	if !handled {
		return
	}

	if advance.Finished {
		b.finishQuiz(chatID, advance)
		return
	}
	b.sendQuizPoll(chatID, advance.Next, advance.NextIndex)
}

// formatHelp is the /help text
func formatHelp() string {
	var sb strings.Builder
	sb.WriteString("🤖 HACKER Bot Features:\n\n")
	sb.WriteString("/start - Bot introduction\n")
	sb.WriteString("/help - Show this help message\n")
	sb.WriteString("/poll - Start a real-time AI coding quiz (5 questions, leaderboard)\n")
	sb.WriteString("/material [topic] - Get coding materials (e.g. /material python)\n")
	sb.WriteString("/leaderboard - Show the best quiz results in this chat\n")
	sb.WriteString("\n")
	sb.WriteString("💬 AI Chat: Just send any message, bot will reply with AI answer.\n")
	sb.WriteString("🛡️ Moderation: Banned words, spam protection, auto warnings/mute/ban\n")
	sb.WriteString("🏆 Quiz Leaderboard: See who answered most questions correctly!\n")
	return sb.String()
}
