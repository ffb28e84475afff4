package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/flicknote/flick/pkg/session"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	cueStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "63", Dark: "117"})
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)

	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "63", Dark: "117"})
)

func (m Model) contentHeight() int {
	// Header, spacer, footer.
	h := m.height - 4
	if h < 3 {
		return 3
	}
	return h
}

func (m Model) View() string {
	switch {
	case m.confirm.Active:
		return m.centered(m.confirm.View())
	case m.mode == modeTeardown:
		return m.centered(m.teardownView())
	case m.mode == modeList:
		return m.centered(m.listView())
	case m.mode == modeMenu:
		return m.centered(m.menuView())
	}
	return m.editorView()
}

func (m Model) editorView() string {
	note := m.store.ActiveNote()

	position := dimStyle.Render(fmt.Sprintf("%d/%d", m.store.ActiveIndex()+1, m.store.Len()))
	date := headerStyle.Render(note.DateLabel())

	var cue string
	switch m.nav.Feedback() {
	case session.DirPrevious:
		cue = cueStyle.Render("‹ newer")
	case session.DirNext:
		cue = cueStyle.Render("older ›")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top, date, "  ", position, "  ", cue)

	footer := dimStyle.Render("ctrl+← newer · ctrl+→ older · ctrl+t new · ctrl+d delete · ctrl+l notes · esc menu · ctrl+c quit")
	if m.statusMessage != "" {
		footer = errorStyle.Render(m.statusMessage)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.textarea.View(),
		"",
		footer,
	)
}

func (m Model) listView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("All notes"))
	b.WriteString("\n\n")

	for i, n := range m.store.Notes() {
		line := fmt.Sprintf("%s  %s", n.DateLabel(), truncate(n.Title(), 40))
		if i == m.listCursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter open · d delete · esc back"))
	return overlayStyle.Render(b.String())
}

func (m Model) menuView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Account"))
	b.WriteString("\n\n")
	b.WriteString(selectedStyle.Render("> Delete account and all notes"))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("enter select · esc back"))
	return overlayStyle.Render(b.String())
}

func (m Model) teardownView() string {
	p := m.teardownProgress
	if p == nil {
		p = m.saga.Progress()
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Deleting account"))
	b.WriteString("\n\n")
	if p != nil {
		b.WriteString(m.progress.ViewAs(float64(p.Percent) / 100))
		b.WriteString("\n\n")
		b.WriteString(p.Status)
	} else {
		b.WriteString("Working...")
	}
	return overlayStyle.Render(b.String())
}

// centered places an overlay in the middle of the window.
func (m Model) centered(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
