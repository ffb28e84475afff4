package editor

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/flicknote/flick/internal/tui/editor/components/confirm"
	"github.com/flicknote/flick/pkg/session"
	"github.com/flicknote/flick/pkg/teardown"
)

// --- Messages ---

type noteCreatedMsg struct{ err error }

type noteDeletedMsg struct{ err error }

type teardownProgressMsg struct{ progress *teardown.Progress }

type teardownDoneMsg struct{ err error }

// feedbackTickMsg forces a re-render after the direction cue expires.
type feedbackTickMsg struct{}

// --- Commands ---

func (m Model) createNoteCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		_, err := store.CreateNote(context.Background())
		return noteCreatedMsg{err: err}
	}
}

func (m Model) deleteNoteCmd(index int) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		return noteDeletedMsg{err: store.DeleteNote(context.Background(), index)}
	}
}

func (m Model) runTeardownCmd() tea.Cmd {
	saga := m.saga
	return func() tea.Msg {
		return teardownDoneMsg{err: saga.Run(context.Background())}
	}
}

func waitForProgress(ch chan *teardown.Progress) tea.Cmd {
	return func() tea.Msg {
		return teardownProgressMsg{progress: <-ch}
	}
}

func feedbackTick() tea.Cmd {
	return tea.Tick(session.DefaultFeedbackTTL+50*time.Millisecond, func(time.Time) tea.Msg {
		return feedbackTickMsg{}
	})
}

// --- Update ---

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.textarea.SetWidth(msg.Width - 4)
		m.textarea.SetHeight(m.contentHeight())
		m.progress.Width = min(msg.Width-10, 50)
		return m, nil

	case noteCreatedMsg:
		if msg.err != nil {
			m.statusMessage = operationError("create note", msg.err)
			return m, nil
		}
		m.statusMessage = ""
		m.syncActive()
		m.setMode(modeEditing)
		return m, nil

	case noteDeletedMsg:
		if msg.err != nil {
			m.statusMessage = operationError("delete note", msg.err)
		} else {
			m.statusMessage = ""
		}
		// The store already resynthesized a blank note if the list
		// emptied and reset the active index to 0.
		m.syncActive()
		m.setMode(modeEditing)
		return m, nil

	case teardownProgressMsg:
		m.teardownProgress = msg.progress
		if msg.progress == nil {
			// Run is over; the done message carries the outcome.
			return m, nil
		}
		return m, waitForProgress(m.progressCh)

	case teardownDoneMsg:
		m.teardownProgress = nil
		if msg.err != nil {
			m.statusMessage = msg.err.Error()
			m.setMode(modeEditing)
			return m, nil
		}
		m.TornDown = true
		return m, tea.Quit

	case feedbackTickMsg:
		return m, nil

	case confirm.ConfirmedMsg:
		action := m.confirmAction
		m.confirmAction = confirmNone
		switch action {
		case confirmDelete:
			return m, m.deleteNoteCmd(m.pendingDelete)
		case confirmTeardown:
			return m.startTeardown()
		}
		return m, nil

	case confirm.CancelledMsg:
		m.confirmAction = confirmNone
		m.setMode(modeEditing)
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if m.confirm.Active {
			var cmd tea.Cmd
			m.confirm, cmd = m.confirm.Update(msg)
			return m, cmd
		}
		switch m.mode {
		case modeEditing:
			return m.updateEditing(msg)
		case modeList:
			return m.updateList(msg)
		case modeMenu:
			return m.updateMenu(msg)
		case modeTeardown:
			// The overlay blocks everything while the saga runs.
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.writer.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Prev):
		if m.nav.Go(session.DirPrevious) {
			m.syncActive()
			return m, feedbackTick()
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if m.nav.Go(session.DirNext) {
			m.syncActive()
			return m, feedbackTick()
		}
		return m, nil

	case key.Matches(msg, m.keys.NewNote):
		return m, m.createNoteCmd()

	case key.Matches(msg, m.keys.Delete):
		m.pendingDelete = m.store.ActiveIndex()
		m.confirmAction = confirmDelete
		m.confirm.Activate("Delete this note?")
		m.setMode(modeEditing)
		m.nav.SetDisabled(true)
		return m, nil

	case key.Matches(msg, m.keys.ListNotes):
		m.listCursor = m.store.ActiveIndex()
		m.setMode(modeList)
		return m, nil

	case key.Matches(msg, m.keys.Menu):
		m.setMode(modeMenu)
		return m, nil
	}

	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	if after := m.textarea.Value(); after != before {
		m.writer.OnEdit(after)
	}
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.setMode(modeEditing)
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		m.writer.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Confirm):
		m.store.SetActiveIndex(m.listCursor)
		m.syncActive()
		m.setMode(modeEditing)
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.listCursor > 0 {
			m.listCursor--
		}
	case "down", "j":
		if m.listCursor < m.store.Len()-1 {
			m.listCursor++
		}
	case "d":
		m.pendingDelete = m.listCursor
		m.confirmAction = confirmDelete
		m.confirm.Activate("Delete this note?")
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.setMode(modeEditing)
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		m.writer.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Confirm):
		m.confirmAction = confirmTeardown
		m.confirm.Activate("Delete your account and all notes?\nThis cannot be undone.")
		return m, nil
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.nav.PressAt(msg.X)
		}
	case tea.MouseActionMotion:
		// A drag that wanders off the editor surface is abandoned so
		// an unrelated release elsewhere is not read as a swipe.
		if msg.Y > m.contentHeight() {
			m.nav.Leave()
		}
	case tea.MouseActionRelease:
		if m.nav.ReleaseAt(msg.X) {
			m.syncActive()
			return m, feedbackTick()
		}
	}
	return m, nil
}

// startTeardown flips to the blocking overlay and launches the saga.
func (m Model) startTeardown() (tea.Model, tea.Cmd) {
	m.setMode(modeTeardown)

	ch := make(chan *teardown.Progress, 32)
	m.progressCh = ch
	m.saga.Observe(func(p *teardown.Progress) {
		ch <- p
	})

	return m, tea.Batch(m.runTeardownCmd(), waitForProgress(ch))
}

func operationError(op string, err error) string {
	if errors.Is(err, session.ErrBusy) {
		return "Another operation is still running, try again"
	}
	return "Could not " + op + ", please try again"
}
