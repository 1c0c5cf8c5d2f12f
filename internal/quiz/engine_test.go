package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackerbot/internal/models"
)

func threeQuestions() []models.Question {
	return []models.Question{
		{Text: "Q1", Options: []string{"a", "b"}, Correct: 0},
		{Text: "Q2", Options: []string{"a", "b", "c"}, Correct: 2},
		{Text: "Q3", Options: []string{"a", "b"}, Correct: 1},
	}
}

func TestEngine_StartRequiresQuestions(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Start(1, nil)
	assert.ErrorIs(t, err, ErrNoQuestions)
	assert.False(t, engine.Active(1))
}

func TestEngine_StartReturnsFirstQuestion(t *testing.T) {
	engine := NewEngine()

	first, err := engine.Start(1, threeQuestions())
	require.NoError(t, err)
	assert.Equal(t, "Q1", first.Text)
	assert.True(t, engine.Active(1))
}

func TestEngine_RoundTrip(t *testing.T) {
	engine := NewEngine()
	questions := threeQuestions()

	_, err := engine.Start(1, questions)
	require.NoError(t, err)

	// One user answers every question correctly
	answers := []int{0, 2, 1}
	for i, answer := range answers {
		advance, handled := engine.RecordAnswer(1, 100, answer)
		require.True(t, handled)

		if i < len(questions)-1 {
			assert.False(t, advance.Finished)
			assert.Equal(t, questions[i+1].Text, advance.Next.Text)
			assert.Equal(t, i+1, advance.NextIndex)
		} else {
			assert.True(t, advance.Finished)
			require.Len(t, advance.Leaderboard, 1)
			assert.Equal(t, int64(100), advance.Leaderboard[0].UserID)
			assert.Equal(t, len(questions), advance.Leaderboard[0].Correct,
				"all-correct user scores the question count")
			assert.Equal(t, len(questions), advance.Total)
		}
	}

	assert.False(t, engine.Active(1), "session ends after the last question")
}

func TestEngine_WrongAnswerStillAdvances(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Start(1, threeQuestions())
	require.NoError(t, err)

	advance, handled := engine.RecordAnswer(1, 100, 1) // correct is 0
	require.True(t, handled)
	assert.Equal(t, "Q2", advance.Next.Text, "index advances regardless of correctness")

	advance, _ = engine.RecordAnswer(1, 100, 2) // correct
	advance, _ = engine.RecordAnswer(1, 100, 0) // wrong

	require.True(t, advance.Finished)
	assert.Equal(t, 1, advance.Leaderboard[0].Correct)
}

func TestEngine_LateAndEarlyAnswersAreNoOps(t *testing.T) {
	engine := NewEngine()

	// Before any session exists
	_, handled := engine.RecordAnswer(1, 100, 0)
	assert.False(t, handled)

	_, err := engine.Start(1, []models.Question{{Text: "Q1", Options: []string{"a", "b"}, Correct: 0}})
	require.NoError(t, err)

	advance, handled := engine.RecordAnswer(1, 100, 0)
	require.True(t, handled)
	require.True(t, advance.Finished)

	// After the session ended
	_, handled = engine.RecordAnswer(1, 100, 0)
	assert.False(t, handled, "answers after the session ended are ignored")
	assert.False(t, engine.Active(1))
}

func TestEngine_LeaderboardOrdering(t *testing.T) {
	engine := NewEngine()
	questions := []models.Question{
		{Text: "Q1", Options: []string{"a", "b"}, Correct: 0},
		{Text: "Q2", Options: []string{"a", "b"}, Correct: 0},
		{Text: "Q3", Options: []string{"a", "b"}, Correct: 0},
	}

	_, err := engine.Start(1, questions)
	require.NoError(t, err)

	// user 200 answers first but wrong, user 100 answers correct,
	// user 300 answers correct: 100 and 300 tie on score and the tie
	// breaks by who answered first
	engine.RecordAnswer(1, 200, 1)
	engine.RecordAnswer(1, 100, 0)
	advance, handled := engine.RecordAnswer(1, 300, 0)
	require.True(t, handled)
	require.True(t, advance.Finished)

	require.Len(t, advance.Leaderboard, 3)
	assert.Equal(t, int64(100), advance.Leaderboard[0].UserID)
	assert.Equal(t, int64(300), advance.Leaderboard[1].UserID)
	assert.Equal(t, int64(200), advance.Leaderboard[2].UserID)
}

func TestEngine_ChatsDoNotInterfere(t *testing.T) {
	engine := NewEngine()
	questions := []models.Question{
		{Text: "Q1", Options: []string{"a", "b"}, Correct: 0},
		{Text: "Q2", Options: []string{"a", "b"}, Correct: 0},
	}

	_, err := engine.Start(1, questions)
	require.NoError(t, err)
	_, err = engine.Start(2, questions)
	require.NoError(t, err)

	// The same user plays in both chats; scores stay per chat
	engine.RecordAnswer(1, 100, 0)
	engine.RecordAnswer(2, 100, 1)

	adv1, _ := engine.RecordAnswer(1, 100, 0)
	adv2, _ := engine.RecordAnswer(2, 100, 1)

	require.True(t, adv1.Finished)
	require.True(t, adv2.Finished)
	assert.Equal(t, 2, adv1.Leaderboard[0].Correct)
	assert.Equal(t, 0, adv2.Leaderboard[0].Correct)
}

func TestEngine_RestartResetsScores(t *testing.T) {
	engine := NewEngine()
	questions := []models.Question{{Text: "Q1", Options: []string{"a", "b"}, Correct: 0}}

	_, err := engine.Start(1, questions)
	require.NoError(t, err)
	advance, _ := engine.RecordAnswer(1, 100, 0)
	require.True(t, advance.Finished)
	assert.Equal(t, 1, advance.Leaderboard[0].Correct)

	// A fresh quiz starts from zero
	_, err = engine.Start(1, questions)
	require.NoError(t, err)
	advance, _ = engine.RecordAnswer(1, 100, 1)
	require.True(t, advance.Finished)
	assert.Equal(t, 0, advance.Leaderboard[0].Correct)
}

func TestEngine_PollBinding(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Start(1, threeQuestions())
	require.NoError(t, err)
	engine.BindPoll(1, "poll-1")

	chatID, ok := engine.ChatForPoll("poll-1")
	assert.True(t, ok)
	assert.Equal(t, int64(1), chatID)

	_, ok = engine.ChatForPoll("unknown")
	assert.False(t, ok)

	// Restarting the chat's quiz drops stale bindings
	_, err = engine.Start(1, threeQuestions())
	require.NoError(t, err)
	_, ok = engine.ChatForPoll("poll-1")
	assert.False(t, ok)
}
