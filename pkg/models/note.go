package models

import (
	"strings"
	"time"
)

// MaxContentLength is the content cap enforced by the remote store.
const MaxContentLength = 10000

// Note is a single user-authored note. The ID is assigned by the
// repository at creation and never changes; Content is the only
// user-editable field.
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsBlank reports whether the note has no content.
func (n Note) IsBlank() bool {
	return n.Content == ""
}

// Title returns the first non-empty line of the note, for list views.
func (n Note) Title() string {
	for _, line := range strings.Split(n.Content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return "Untitled"
}

// DateLabel formats the note's last-updated time the way the editor
// header displays it.
func (n Note) DateLabel() string {
	return n.UpdatedAt.Format("Jan 2, 2006 15:04")
}
