package editor

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/flicknote/flick/internal/tui/editor/components/confirm"
	"github.com/flicknote/flick/pkg/models"
	"github.com/flicknote/flick/pkg/session"
	"github.com/flicknote/flick/pkg/teardown"
)

type mode int

const (
	modeEditing mode = iota
	modeList
	modeMenu
	modeTeardown
)

// Drag threshold in terminal cells rather than pixels.
const cellSwipeThreshold = 8

// Model is the main model for the note editor TUI. It renders the
// active note, routes keystrokes through the debounced writer, feeds
// drag gestures to the navigator, and overlays the note list, the
// account menu, and teardown progress.
type Model struct {
	store  *session.Store
	writer *session.Writer
	nav    *session.Navigator
	saga   *teardown.Saga
	log    *logrus.Logger

	textarea textarea.Model
	progress progress.Model
	confirm  confirm.Model
	keys     KeyMap

	mode          mode
	width, height int
	statusMessage string

	// listCursor is the selection in the all-notes overlay.
	listCursor int
	// pendingDelete is the index queued behind the delete confirm.
	pendingDelete int
	// confirmAction distinguishes what the active confirm dialog is for.
	confirmAction confirmAction

	teardownProgress *teardown.Progress
	progressCh       chan *teardown.Progress

	// TornDown is read by the caller after the program exits to know
	// the account is gone and the session should not resume.
	TornDown bool
}

type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmDelete
	confirmTeardown
)

// New builds the editor model over an already-bootstrapped session.
func New(store *session.Store, writer *session.Writer, nav *session.Navigator, saga *teardown.Saga, log *logrus.Logger) Model {
	ta := textarea.New()
	ta.Placeholder = "Write something..."
	// The remote store rejects anything longer.
	ta.CharLimit = models.MaxContentLength
	ta.ShowLineNumbers = false
	ta.SetValue(store.ActiveNote().Content)
	ta.CursorEnd()
	ta.Focus()

	nav.SetThreshold(cellSwipeThreshold)

	return Model{
		store:    store,
		writer:   writer,
		nav:      nav,
		saga:     saga,
		log:      log,
		textarea: ta,
		progress: progress.New(progress.WithDefaultGradient()),
		confirm:  confirm.New(),
		keys:     keys,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// syncActive reloads the textarea from the store's active note. Called
// after any index change or structural mutation.
func (m *Model) syncActive() {
	m.textarea.SetValue(m.store.ActiveNote().Content)
	m.textarea.CursorEnd()
}

// setMode switches overlay modes and keeps gesture input gated while
// anything covers the editor.
func (m *Model) setMode(next mode) {
	m.mode = next
	m.nav.SetDisabled(next != modeEditing)
}
