package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsBlank(t *testing.T) {
	assert.True(t, Note{}.IsBlank())
	assert.False(t, Note{Content: "x"}.IsBlank())
	// Whitespace counts as authored content.
	assert.False(t, Note{Content: " \n"}.IsBlank())
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Untitled", Note{}.Title())
	assert.Equal(t, "Shopping", Note{Content: "\n\n  Shopping  \nmilk\neggs"}.Title())
	assert.Equal(t, "one-liner", Note{Content: "one-liner"}.Title())
}

func TestDateLabel(t *testing.T) {
	n := Note{UpdatedAt: time.Date(2026, 8, 27, 14, 5, 0, 0, time.UTC)}
	assert.Equal(t, "Aug 27, 2026 14:05", n.DateLabel())
}
