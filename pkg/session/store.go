package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/flicknote/flick/pkg/models"
	"github.com/flicknote/flick/pkg/repository"
)

// ErrBusy is returned when a structural mutation (create/delete) is
// requested while another one is still in flight. The caller should
// surface the failure and retry; nothing was changed.
var ErrBusy = errors.New("another note operation is in progress")

// Store is the single source of truth for the session's note list and
// active index. All mutation goes through its methods; the list is
// ordered newest-first and is never empty once the session has
// bootstrapped.
//
// The TUI event loop, the debounce timer, and the teardown saga all
// touch the store, so its state is mutex-protected. Structural
// operations (create/delete) additionally hold an in-flight guard
// across their remote calls so two list-length changes can never
// interleave and corrupt the index.
type Store struct {
	repo   repository.Repository
	userID string
	log    *logrus.Logger

	mu     sync.Mutex
	notes  []models.Note
	active int
	busy   bool
}

// NewStore builds a store over an already-bootstrapped note list.
// Use Bootstrap to construct one from the repository.
func NewStore(repo repository.Repository, userID string, notes []models.Note, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.New()
	}
	return &Store{repo: repo, userID: userID, notes: notes, log: log}
}

// Notes returns a snapshot of the note list.
func (s *Store) Notes() []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

// ActiveIndex returns the current active index.
func (s *Store) ActiveIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// ActiveNote returns the note at the active index.
func (s *Store) ActiveNote() models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.notes) == 0 {
		return models.Note{}
	}
	return s.notes[s.active]
}

// ContentOf returns the current content of the note with the given id.
// The debounced writer re-reads through this at fire time so a
// coalesced burst always persists the latest value.
func (s *Store) ContentOf(noteID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notes {
		if n.ID == noteID {
			return n.Content, true
		}
	}
	return "", false
}

// SetActiveIndex clamps i into the valid range and makes it active.
func (s *Store) SetActiveIndex(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = s.clamp(i)
}

// clamp forces an index into [0, len(notes)). Callers hold s.mu.
func (s *Store) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(s.notes) && len(s.notes) > 0 {
		return len(s.notes) - 1
	}
	if len(s.notes) == 0 {
		return 0
	}
	return i
}

// ReplaceActiveContent applies a keystroke's result to the active note
// locally, refreshing its UpdatedAt for immediate UI feedback. The
// remote write happens later, through the Writer. It returns the id of
// the note that was edited so the writer can target it even if the
// active note changes before the debounce window closes.
func (s *Store) ReplaceActiveContent(content string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.notes) == 0 {
		return ""
	}
	n := &s.notes[s.active]
	n.Content = content
	n.UpdatedAt = time.Now()
	return n.ID
}

// beginOp acquires the structural-operation guard.
func (s *Store) beginOp() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

func (s *Store) endOp() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// CreateNote asks the repository for a fresh blank note, prepends it,
// and makes it active. The local list is untouched when the remote
// create fails; ids are repository-assigned so there is no optimistic
// insert to roll back.
func (s *Store) CreateNote(ctx context.Context) (models.Note, error) {
	if err := s.beginOp(); err != nil {
		return models.Note{}, err
	}
	defer s.endOp()

	id, err := s.repo.Create(ctx, s.userID, "")
	if err != nil {
		s.log.WithError(err).Error("create note failed")
		return models.Note{}, err
	}

	now := time.Now()
	note := models.Note{ID: id, CreatedAt: now, UpdatedAt: now}

	s.mu.Lock()
	s.notes = append([]models.Note{note}, s.notes...)
	s.active = 0
	s.mu.Unlock()
	return note, nil
}

// DeleteNote deletes the note at index. If the list would become
// empty, a fresh blank note is synthesized before control returns, so
// the never-empty invariant holds. The active index always resets to 0
// after any delete, including deletes from the list view.
func (s *Store) DeleteNote(ctx context.Context, index int) error {
	if err := s.beginOp(); err != nil {
		return err
	}
	defer s.endOp()

	s.mu.Lock()
	if index < 0 || index >= len(s.notes) {
		s.mu.Unlock()
		return errors.New("note index out of range")
	}
	target := s.notes[index]
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, s.userID, target.ID); err != nil {
		s.log.WithError(err).WithField("note", target.ID).Error("delete note failed")
		return err
	}

	s.mu.Lock()
	s.notes = append(s.notes[:index], s.notes[index+1:]...)
	needBlank := len(s.notes) == 0
	s.active = 0
	s.mu.Unlock()

	if !needBlank {
		return nil
	}

	id, err := s.repo.Create(ctx, s.userID, "")
	now := time.Now()
	note := models.Note{ID: id, CreatedAt: now, UpdatedAt: now}
	if err != nil {
		// The remote create failed but the UI still needs a note to
		// render. Keep a local blank without an id; the writer skips
		// notes that have no id, and the next structural operation
		// will reconcile.
		s.log.WithError(err).Error("replacement note create failed")
		note = models.Note{CreatedAt: now, UpdatedAt: now}
	}

	s.mu.Lock()
	s.notes = []models.Note{note}
	s.active = 0
	s.mu.Unlock()
	return err
}
