package moderation

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// defaultWords seeds the word-list file when it does not exist yet
var defaultWords = []string{"badword", "spam", "abuse"}

// Filter tests message text against a static list of banned words.
// Matching is a case-insensitive substring check; the first word in
// list order wins.
type Filter struct {
	words []string
}

// NewFilter builds a filter from an explicit word list. Words are
// lower-cased; empty entries are dropped.
func NewFilter(words []string) *Filter {
	f := &Filter{}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			f.words = append(f.words, w)
		}
	}
	return f
}

// LoadFilter reads a line-delimited word list from path. A missing file
// is created with the default words first, matching first-run behavior.
func LoadFilter(path string) (*Filter, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if werr := os.WriteFile(path, []byte(strings.Join(defaultWords, "\n")), 0644); werr != nil {
			return nil, fmt.Errorf("failed to create word list %s: %w", path, werr)
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", path, err)
	}

	return NewFilter(words), nil
}

// Match returns the first banned word contained in text, or "" and false
func (f *Filter) Match(text string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, w := range f.words {
		if strings.Contains(lowered, w) {
			return w, true
		}
	}
	return "", false
}

// Words returns the configured word list in match order
func (f *Filter) Words() []string {
	return f.words
}
