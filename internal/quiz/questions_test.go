package quiz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultQuestionsAreValid(t *testing.T) {
	questions := DefaultQuestions()
	require.NotEmpty(t, questions)
	for _, q := range questions {
		assert.True(t, q.Valid(), "default question %q must be valid", q.Text)
	}
}

func TestParseQuestions(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "valid set",
			input: `[{"question":"Q1","options":["a","b"],"correct":1}]`,
		},
		{
			name:    "not json",
			input:   "hello",
			wantErr: true,
		},
		{
			name:    "empty array",
			input:   `[]`,
			wantErr: true,
		},
		{
			name:    "too few options",
			input:   `[{"question":"Q1","options":["a"],"correct":0}]`,
			wantErr: true,
		},
		{
			name:    "correct index out of range",
			input:   `[{"question":"Q1","options":["a","b"],"correct":2}]`,
			wantErr: true,
		},
		{
			name:    "negative correct index",
			input:   `[{"question":"Q1","options":["a","b"],"correct":-1}]`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			questions, err := ParseQuestions([]byte(tc.input))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, questions)
		})
	}
}

func TestLoadQuestions(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		questions := LoadQuestions(filepath.Join(t.TempDir(), "missing.json"))
		assert.Equal(t, DefaultQuestions(), questions)
	})

	t.Run("invalid file falls back to defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))
		assert.Equal(t, DefaultQuestions(), LoadQuestions(path))
	})

	t.Run("valid file is used", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "questions.json")
		content := `[{"question":"Custom?","options":["yes","no"],"correct":0}]`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		questions := LoadQuestions(path)
		require.Len(t, questions, 1)
		assert.Equal(t, "Custom?", questions[0].Text)
	})
}
