package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/flicknote/flick/pkg/repository"
)

// DefaultQuietPeriod is how long after the last keystroke an edit sits
// before it is persisted.
const DefaultQuietPeriod = 500 * time.Millisecond

// Writer turns the high-frequency stream of keystrokes into a
// low-frequency stream of remote writes. Every edit lands in the Store
// synchronously; at most one remote write is scheduled at a time, and
// each new edit cancels and replaces it rather than queuing behind it.
type Writer struct {
	store *Store
	repo  repository.Repository

	userID string
	quiet  time.Duration
	log    *logrus.Logger

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// NewWriter builds a writer over the store and repository.
func NewWriter(store *Store, repo repository.Repository, userID string, log *logrus.Logger) *Writer {
	if log == nil {
		log = logrus.New()
	}
	return &Writer{
		store:  store,
		repo:   repo,
		userID: userID,
		quiet:  DefaultQuietPeriod,
		log:    log,
	}
}

// SetQuietPeriod overrides the debounce window. Tests use this; the
// editor keeps the default.
func (w *Writer) SetQuietPeriod(d time.Duration) {
	w.mu.Lock()
	w.quiet = d
	w.mu.Unlock()
}

// OnEdit is called on every keystroke. It applies the edit to the
// store before returning, then re-arms the debounce timer. The note id
// is captured now, so a pending write keeps targeting the note it was
// scheduled for even if the user navigates away before it fires.
func (w *Writer) OnEdit(content string) {
	noteID := w.store.ReplaceActiveContent(content)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || noteID == "" {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.quiet, func() {
		w.flush(noteID)
	})
}

// flush persists the note's content as of now, not as of scheduling,
// so a coalesced burst of edits writes its final value.
func (w *Writer) flush(noteID string) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.mu.Unlock()

	content, ok := w.store.ContentOf(noteID)
	if !ok {
		// The note was deleted while the write was pending.
		return
	}

	if err := w.repo.Update(context.Background(), w.userID, noteID, content); err != nil {
		// Local-first: the store keeps the edit, the failure is only
		// logged. The next successful write reconciles.
		w.log.WithError(err).WithField("note", noteID).Warn("autosave failed")
	}
}

// Close cancels any pending write without firing it. Losing at most
// one debounce window of typing is accepted; writing after the session
// is gone is not.
func (w *Writer) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
