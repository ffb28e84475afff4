package frontmatter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n(.*)`)

// TimestampFormat is how created/modified render in exported files.
const TimestampFormat = "2006-01-02 15:04:05"

// Frontmatter is the metadata block at the top of an exported note.
type Frontmatter struct {
	ID       string `yaml:"id"`
	Created  string `yaml:"created"`
	Modified string `yaml:"modified"`
}

// Parse extracts frontmatter from content and returns the parsed data
// and the body. Content without a frontmatter block returns a nil
// Frontmatter and the content unchanged.
func Parse(content string) (*Frontmatter, string, error) {
	matches := frontmatterPattern.FindStringSubmatch(content)
	if len(matches) != 3 {
		return nil, content, nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(matches[1]), &fm); err != nil {
		return nil, content, fmt.Errorf("parse frontmatter: %w", err)
	}
	return &fm, matches[2], nil
}

// Build renders a frontmatter block followed by the body.
func Build(fm *Frontmatter, body string) (string, error) {
	data, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n")
	b.WriteString(body)
	return b.String(), nil
}

// FormatTimestamp renders a time in the export format.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampFormat)
}

// ParseTimestamp parses a frontmatter timestamp.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampFormat, s)
}
