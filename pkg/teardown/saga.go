package teardown

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/flicknote/flick/pkg/repository"
)

// Phase names a step of the account-teardown workflow. The machine is
// linear: Listing, DeletingNotes, DeletingIdentity, Done, with Errored
// reachable from any in-progress phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseListing
	PhaseDeletingNotes
	PhaseDeletingIdentity
	PhaseDone
	PhaseErrored
)

// Progress bands per phase. Note deletion advances linearly across
// its band in proportion to deleted/total.
const (
	percentListing   = 10
	percentNotesDone = 80
	percentIdentity  = 90
	percentDone      = 100
	notesBand        = percentNotesDone - percentListing

	// DefaultDonePause keeps the completed overlay visible briefly so
	// the user sees 100% before the post-teardown redirect.
	DefaultDonePause = 800 * time.Millisecond
)

// Progress is what the UI renders while a teardown runs. A nil
// *Progress, not a flag, is the signal that nothing is running.
type Progress struct {
	Percent int
	Status  string
}

// Saga deletes every note the user owns, then the identity record,
// reporting phase-labeled progress along the way. Failures abort the
// run and clear the progress; nothing is rolled back, so re-running
// simply continues deleting whatever remains.
type Saga struct {
	repo     repository.Repository
	identity repository.Identity
	userID   string
	log      *logrus.Logger

	donePause time.Duration

	mu       sync.Mutex
	phase    Phase
	progress *Progress
	observer func(*Progress)
}

// New builds a saga for the given user. The observer, if set via
// Observe, is called with every progress change, and with nil when the
// run ends (successfully or not).
func New(repo repository.Repository, identity repository.Identity, userID string, log *logrus.Logger) *Saga {
	if log == nil {
		log = logrus.New()
	}
	return &Saga{
		repo:      repo,
		identity:  identity,
		userID:    userID,
		log:       log,
		donePause: DefaultDonePause,
	}
}

// Observe registers the progress callback. It is invoked from the
// saga's goroutine; observers that feed a UI should forward to their
// own event loop.
func (s *Saga) Observe(fn func(*Progress)) {
	s.mu.Lock()
	s.observer = fn
	s.mu.Unlock()
}

// SetDonePause overrides the completion pause. Tests shorten it.
func (s *Saga) SetDonePause(d time.Duration) {
	s.mu.Lock()
	s.donePause = d
	s.mu.Unlock()
}

// Progress returns the current progress, or nil when no run is active.
func (s *Saga) Progress() *Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Phase returns the current phase.
func (s *Saga) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Saga) set(phase Phase, percent int, status string) {
	s.mu.Lock()
	s.phase = phase
	// Percent never moves backward within a run.
	if s.progress != nil && percent < s.progress.Percent {
		percent = s.progress.Percent
	}
	p := &Progress{Percent: percent, Status: status}
	s.progress = p
	observer := s.observer
	s.mu.Unlock()
	if observer != nil {
		observer(p)
	}
}

func (s *Saga) clear(phase Phase) {
	s.mu.Lock()
	s.phase = phase
	s.progress = nil
	observer := s.observer
	s.mu.Unlock()
	if observer != nil {
		observer(nil)
	}
}

// fail aborts the run: progress is cleared so the overlay disappears,
// and the error is classified so a stale-session identity failure
// (remedy: sign in again, retry) reads differently from a transient
// one (remedy: just retry).
func (s *Saga) fail(step string, err error) error {
	s.log.WithError(err).WithField("step", step).Error("account teardown failed")
	s.clear(PhaseErrored)
	if errors.Is(err, repository.ErrReauthRequired) {
		return fmt.Errorf("your session has expired; sign in again and retry: %w", err)
	}
	return fmt.Errorf("account deletion failed at %s: %w", step, err)
}

// Run executes the teardown to completion. The caller is responsible
// for the confirmation step; declining it means Run is never called.
// The UI must block ordinary note operations while Run is active; the
// saga assumes exclusive access to the note list.
func (s *Saga) Run(ctx context.Context) error {
	s.set(PhaseListing, percentListing, "Fetching your notes...")

	notes, err := s.repo.List(ctx, s.userID)
	if err != nil {
		return s.fail("listing notes", err)
	}

	total := len(notes)
	s.set(PhaseDeletingNotes, percentListing, fmt.Sprintf("Deleting notes (0/%d)...", total))

	for i, n := range notes {
		if err := ctx.Err(); err != nil {
			return s.fail("deleting notes", err)
		}
		if err := s.repo.Delete(ctx, s.userID, n.ID); err != nil {
			return s.fail("deleting notes", err)
		}
		deleted := i + 1
		percent := percentListing + notesBand*deleted/total
		s.set(PhaseDeletingNotes, percent, fmt.Sprintf("Deleting notes (%d/%d)...", deleted, total))
	}
	// An empty list skips the loop; progress still reaches the end of
	// the band before the identity phase.
	s.set(PhaseDeletingNotes, percentNotesDone, "All notes deleted")

	s.set(PhaseDeletingIdentity, percentIdentity, "Deleting your account...")
	if err := s.identity.DeleteCurrentIdentity(ctx); err != nil {
		return s.fail("deleting account", err)
	}

	s.set(PhaseDone, percentDone, "Account deleted")

	s.mu.Lock()
	pause := s.donePause
	s.mu.Unlock()
	select {
	case <-time.After(pause):
	case <-ctx.Done():
	}

	s.clear(PhaseDone)
	return nil
}
