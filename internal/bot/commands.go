package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"hackerbot/internal/models"
	"hackerbot/internal/quiz"
)

// handleStart shows the introduction message
func (b *Bot) handleStart(message *tgbotapi.Message) {
	if message.Chat.IsPrivate() {
		b.sendEphemeral(message.Chat.ID, "Add me to a group to use my features!")
		return
	}
	b.sendEphemeral(message.Chat.ID, "💻 SYSTEM ONLINE: HACKER bot at your service! Ask me anything...")
}

// handleHelp shows the command overview
func (b *Bot) handleHelp(message *tgbotapi.Message) {
	b.sendEphemeral(message.Chat.ID, formatHelp())
}

// handleMaterial serves the static topic -> resource lookup
func (b *Bot) handleMaterial(message *tgbotapi.Message) {
	args := strings.Fields(message.CommandArguments())
	if len(args) == 0 {
		b.sendEphemeral(message.Chat.ID, "Usage: /material [topic]\nExample: /material python")
		return
	}

	topic := strings.ToLower(args[0])
	material, ok := LookupMaterial(topic)
	if !ok {
		b.sendEphemeral(message.Chat.ID, "❌ No material found for this topic.")
		return
	}
	b.sendEphemeral(message.Chat.ID, fmt.Sprintf("📂 MATERIAL [%s]: %s", capitalize(topic), material))
}

// capitalize upper-cases the first letter of a topic keyword for display
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// handlePollCommand starts a quiz in a group chat. Questions come from
// the AI generator when it cooperates, otherwise from the bank loaded
// at startup.
func (b *Bot) handlePollCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if !message.Chat.IsGroup() && !message.Chat.IsSuperGroup() {
		b.sendEphemeral(chatID, groupsOnly)
		return
	}

	questions := b.quizQuestions(context.Background())
	first, err := b.quizzes.Start(chatID, questions)
	if err != nil {
		b.sendEphemeral(chatID, "⚠️ AI couldn't generate quiz questions. Try again.")
		return
	}

	b.logger.Info("Quiz started",
		zap.Int64("chat_id", chatID),
		zap.Int("questions", len(questions)),
	)
	b.sendQuizPoll(chatID, first, 0)
}

// quizQuestions picks the question set for a new quiz
func (b *Bot) quizQuestions(ctx context.Context) []models.Question {
	if b.responder != nil {
		generated, err := b.responder.GenerateQuestions(ctx, quizQuestionCount)
		if err == nil && len(generated) > 0 {
			return generated
		}
		if err != nil {
			b.logger.Warn("AI question generation failed, using question bank", zap.Error(err))
		}
	}
	return b.bank
}

// sendQuizPoll emits one question as a native quiz poll and binds the
// resulting poll id to the chat so answers can be routed back
func (b *Bot) sendQuizPoll(chatID int64, q models.Question, index int) {
	if b.api == nil {
		return // For testing
	}

	poll := tgbotapi.NewPoll(chatID, fmt.Sprintf("Q%d: %s", index+1, q.Text), q.Options...)
	poll.Type = "quiz"
	poll.CorrectOptionID = int64(q.Correct)
	poll.IsAnonymous = false
	poll.OpenPeriod = pollOpenPeriod

	sent, err := b.api.Send(poll)
	if err != nil {
		b.logger.Warn("Failed to send quiz poll", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	if sent.Poll != nil {
		b.quizzes.BindPoll(chatID, sent.Poll.ID)
	}
}

// finishQuiz posts the leaderboard and persists every participant's result
func (b *Bot) finishQuiz(chatID int64, advance quiz.Advance) {
	if len(advance.Leaderboard) == 0 {
		b.sendMessage(tgbotapi.NewMessage(chatID, "No answers received."))
		return
	}

	ctx := context.Background()
	now := time.Now()

	var sb strings.Builder
	sb.WriteString("🏆 Quiz Leaderboard:\n")
	for i, score := range advance.Leaderboard {
		fmt.Fprintf(&sb, "%d. %s: %d correct\n", i+1, b.memberName(score.UserID), score.Correct)

		result := models.QuizResult{
			ChatID:     chatID,
			UserID:     score.UserID,
			Score:      score.Correct,
			Total:      advance.Total,
			FinishedAt: now,
		}
		if err := b.db.SaveQuizResult(ctx, result); err != nil {
			b.logger.Warn("Failed to save quiz result",
				zap.Int64("chat_id", chatID),
				zap.Int64("user_id", score.UserID),
				zap.Error(err),
			)
		}
	}

	b.logger.Info("Quiz finished",
		zap.Int64("chat_id", chatID),
		zap.Int("participants", len(advance.Leaderboard)),
	)
	b.sendMessage(tgbotapi.NewMessage(chatID, sb.String()))
}

// handleLeaderboard shows the persisted best results for this chat
func (b *Bot) handleLeaderboard(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	results, err := b.db.TopQuizResults(context.Background(), chatID, leaderboardLimit)
	if err != nil {
		b.logger.Warn("Failed to load leaderboard", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendEphemeral(chatID, "⚠️ Leaderboard is unavailable right now.")
		return
	}
	if len(results) == 0 {
		b.sendEphemeral(chatID, "No quiz results yet. Start one with /poll!")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 All-time Quiz Leaderboard:\n")
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. %s: %d/%d\n", i+1, b.memberName(r.UserID), r.Score, r.Total)
	}
	b.sendEphemeral(chatID, sb.String())
}
