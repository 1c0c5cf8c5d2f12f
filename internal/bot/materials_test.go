package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupMaterial(t *testing.T) {
	for _, topic := range []string{"python", "javascript", "dsa", "ai"} {
		url, ok := LookupMaterial(topic)
		assert.True(t, ok, "topic %q must be known", topic)
		assert.Contains(t, url, "http")
	}

	_, ok := LookupMaterial("cobol")
	assert.False(t, ok)

	// Lookup is exact; callers lowercase the topic first
	_, ok = LookupMaterial("Python")
	assert.False(t, ok)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Python", capitalize("python"))
	assert.Equal(t, "Dsa", capitalize("dsa"))
	assert.Equal(t, "X", capitalize("x"))
	assert.Equal(t, "", capitalize(""))
}
