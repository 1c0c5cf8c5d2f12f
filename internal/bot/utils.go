package bot

import (
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// All outbound actions here are best effort: delivery failures are
// logged and swallowed, never propagated to the dispatcher.

// sendMessage sends a plain message and returns its id, 0 on failure
func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) int {
	if b.api == nil {
		return 0 // For testing
	}

	sent, err := b.api.Send(msg)
	if err != nil {
		b.logger.Warn("Failed to send message",
			zap.Int64("chat_id", msg.ChatID),
			zap.Error(err),
		)
		return 0
	}
	return sent.MessageID
}

// sendEphemeral sends a message and schedules its auto-deletion
func (b *Bot) sendEphemeral(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if id := b.sendMessage(msg); id != 0 {
		b.deleter.Schedule(chatID, id, autoDeleteDelay)
	}
}

// sendEphemeralReply sends a reply to a message and schedules its auto-deletion
func (b *Bot) sendEphemeralReply(chatID int64, replyTo int, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	if id := b.sendMessage(msg); id != 0 {
		b.deleter.Schedule(chatID, id, autoDeleteDelay)
	}
}

// deleteMessage removes a message, best effort
func (b *Bot) deleteMessage(chatID int64, messageID int) error {
	if b.api == nil {
		return nil
	}
	_, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

// sendTyping shows the typing chat action while the AI call runs
func (b *Bot) sendTyping(chatID int64) {
	if b.api == nil {
		return
	}
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		b.logger.Debug("Failed to send chat action", zap.Error(err))
	}
}

// muteMember restricts a user from sending messages until the deadline
func (b *Bot) muteMember(chatID, userID int64, until time.Time) {
	if b.api == nil {
		return
	}

	canSend := false
	restrict := tgbotapi.RestrictChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{
			ChatID: chatID,
			UserID: userID,
		},
		UntilDate: until.Unix(),
		Permissions: &tgbotapi.ChatPermissions{
			CanSendMessages: canSend,
		},
	}
	if _, err := b.api.Request(restrict); err != nil {
		b.logger.Warn("Failed to mute member",
			zap.Int64("chat_id", chatID),
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}

// banMember permanently bans a user from the chat
func (b *Bot) banMember(chatID, userID int64) {
	if b.api == nil {
		return
	}

	ban := tgbotapi.BanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{
			ChatID: chatID,
			UserID: userID,
		},
	}
	if _, err := b.api.Request(ban); err != nil {
		b.logger.Warn("Failed to ban member",
			zap.Int64("chat_id", chatID),
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}

// leaveChat makes the bot leave a chat it is not allowed in
func (b *Bot) leaveChat(chatID int64) {
	if b.api == nil {
		return
	}
	if _, err := b.api.Request(tgbotapi.LeaveChatConfig{ChatID: chatID}); err != nil {
		b.logger.Warn("Failed to leave chat", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// memberName resolves a display name for a user, falling back to the id
func (b *Bot) memberName(userID int64) string {
	if b.api != nil {
		chat, err := b.api.GetChat(tgbotapi.ChatInfoConfig{
			ChatConfig: tgbotapi.ChatConfig{ChatID: userID},
		})
		if err == nil && chat.FirstName != "" {
			return chat.FirstName
		}
	}
	return strconv.FormatInt(userID, 10)
}
