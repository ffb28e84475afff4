package teardown

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicknote/flick/pkg/models"
	"github.com/flicknote/flick/pkg/repository"
)

type fakeRepo struct {
	mu       sync.Mutex
	notes    []models.Note
	deletes  []string
	listErr  error
	failOnID string
}

func (f *fakeRepo) List(ctx context.Context, userID string) ([]models.Note, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Note, len(f.notes))
	copy(out, f.notes)
	return out, nil
}

func (f *fakeRepo) Get(ctx context.Context, userID, noteID string) (models.Note, error) {
	return models.Note{}, repository.ErrNotFound
}

func (f *fakeRepo) Create(ctx context.Context, userID, content string) (string, error) {
	return "", fmt.Errorf("not supported")
}

func (f *fakeRepo) Update(ctx context.Context, userID, noteID, content string) error {
	return fmt.Errorf("not supported")
}

func (f *fakeRepo) Delete(ctx context.Context, userID, noteID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if noteID == f.failOnID {
		return fmt.Errorf("delete %s failed", noteID)
	}
	f.deletes = append(f.deletes, noteID)
	return nil
}

type fakeIdentity struct {
	err    error
	called bool
}

func (f *fakeIdentity) DeleteCurrentIdentity(ctx context.Context) error {
	f.called = true
	return f.err
}

// recorder collects every observer callback, nils included.
type recorder struct {
	mu     sync.Mutex
	events []*Progress
}

func (r *recorder) observe(p *Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p == nil {
		r.events = append(r.events, nil)
		return
	}
	cp := *p
	r.events = append(r.events, &cp)
}

func (r *recorder) all() []*Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Progress, len(r.events))
	copy(out, r.events)
	return out
}

func notesOf(n int) []models.Note {
	notes := make([]models.Note, 0, n)
	for i := 0; i < n; i++ {
		notes = append(notes, models.Note{ID: fmt.Sprintf("n%d", i)})
	}
	return notes
}

func newTestSaga(repo *fakeRepo, id *fakeIdentity) (*Saga, *recorder) {
	s := New(repo, id, "u1", nil)
	s.SetDonePause(time.Millisecond)
	rec := &recorder{}
	s.Observe(rec.observe)
	return s, rec
}

func TestSagaProgressIsMonotonicAndEndsAt100(t *testing.T) {
	for _, count := range []int{0, 1, 7} {
		t.Run(fmt.Sprintf("%d notes", count), func(t *testing.T) {
			repo := &fakeRepo{notes: notesOf(count)}
			identity := &fakeIdentity{}
			saga, rec := newTestSaga(repo, identity)

			require.NoError(t, saga.Run(context.Background()))

			events := rec.all()
			require.NotEmpty(t, events)

			last := -1
			sawNotesDone := false
			for _, p := range events[:len(events)-1] {
				require.NotNil(t, p)
				assert.GreaterOrEqual(t, p.Percent, last, "progress went backward")
				last = p.Percent
				if p.Percent == 80 {
					sawNotesDone = true
				}
			}
			assert.Equal(t, 100, last)
			// Even an empty list passes through the end of the
			// note-deletion band before the identity phase.
			assert.True(t, sawNotesDone)

			// The final event clears the progress.
			assert.Nil(t, events[len(events)-1])
			assert.Nil(t, saga.Progress())

			assert.Len(t, repo.deletes, count)
			assert.True(t, identity.called)
		})
	}
}

func TestSagaReportsRunningCount(t *testing.T) {
	repo := &fakeRepo{notes: notesOf(3)}
	saga, rec := newTestSaga(repo, &fakeIdentity{})

	require.NoError(t, saga.Run(context.Background()))

	var statuses []string
	for _, p := range rec.all() {
		if p != nil {
			statuses = append(statuses, p.Status)
		}
	}
	assert.Contains(t, statuses, "Deleting notes (1/3)...")
	assert.Contains(t, statuses, "Deleting notes (3/3)...")
}

func TestSagaListFailureClearsProgress(t *testing.T) {
	repo := &fakeRepo{listErr: fmt.Errorf("boom")}
	identity := &fakeIdentity{}
	saga, _ := newTestSaga(repo, identity)

	err := saga.Run(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrReauthRequired)

	assert.Nil(t, saga.Progress())
	assert.Equal(t, PhaseErrored, saga.Phase())
	assert.False(t, identity.called)
}

func TestSagaNoteDeleteFailureLeavesRemainderForRetry(t *testing.T) {
	repo := &fakeRepo{notes: notesOf(3), failOnID: "n1"}
	saga, _ := newTestSaga(repo, &fakeIdentity{})

	require.Error(t, saga.Run(context.Background()))
	assert.Nil(t, saga.Progress())
	// n0 is gone and stays gone; re-running continues from there.
	assert.Equal(t, []string{"n0"}, repo.deletes)

	repo.failOnID = ""
	require.NoError(t, saga.Run(context.Background()))
	assert.Equal(t, []string{"n0", "n1", "n2"}, repo.deletes)
}

func TestSagaIdentityFailureDistinguishesReauth(t *testing.T) {
	repo := &fakeRepo{notes: notesOf(1)}
	identity := &fakeIdentity{err: repository.ErrReauthRequired}
	saga, rec := newTestSaga(repo, identity)

	err := saga.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrReauthRequired)
	assert.Contains(t, err.Error(), "sign in again")

	// The overlay signal is cleared, not stuck mid-percentage.
	assert.Nil(t, saga.Progress())
	events := rec.all()
	assert.Nil(t, events[len(events)-1])
}

func TestSagaIdentityGenericFailure(t *testing.T) {
	repo := &fakeRepo{notes: notesOf(1)}
	identity := &fakeIdentity{err: fmt.Errorf("transient")}
	saga, _ := newTestSaga(repo, identity)

	err := saga.Run(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrReauthRequired)
	assert.Nil(t, saga.Progress())
}

func TestSagaCancelledContext(t *testing.T) {
	repo := &fakeRepo{notes: notesOf(5)}
	saga, _ := newTestSaga(repo, &fakeIdentity{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, saga.Run(ctx))
	assert.Nil(t, saga.Progress())
}
