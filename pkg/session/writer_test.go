package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testQuiet = 20 * time.Millisecond
	// Long enough for a scheduled write to have fired on any CI box.
	settle = 200 * time.Millisecond
)

func newTestWriter(repo *fakeRepo, store *Store) *Writer {
	w := NewWriter(store, repo, "u1", nil)
	w.SetQuietPeriod(testQuiet)
	return w
}

func TestWriterCoalescesBurstsIntoOneWrite(t *testing.T) {
	repo := &fakeRepo{}
	store := NewStore(repo, "u1", noteList("a"), nil)
	w := newTestWriter(repo, store)
	defer w.Close()

	w.OnEdit("a")
	w.OnEdit("ab")
	w.OnEdit("abc")

	time.Sleep(settle)

	calls := repo.updateCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "a", calls[0].noteID)
	assert.Equal(t, "abc", calls[0].content)
}

func TestWriterAppliesEditLocallyBeforeReturning(t *testing.T) {
	repo := &fakeRepo{}
	store := NewStore(repo, "u1", noteList("a"), nil)
	w := newTestWriter(repo, store)
	defer w.Close()

	w.OnEdit("instant")

	// Visible in the store immediately, before the quiet period ends.
	assert.Equal(t, "instant", store.ActiveNote().Content)
	assert.Empty(t, repo.updateCalls())
}

func TestWriterPendingWriteTargetsScheduledNote(t *testing.T) {
	repo := &fakeRepo{}
	store := NewStore(repo, "u1", noteList("a", "b"), nil)
	w := newTestWriter(repo, store)
	defer w.Close()

	w.OnEdit("draft for a")
	// Switch notes before the quiet period elapses.
	store.SetActiveIndex(1)

	time.Sleep(settle)

	calls := repo.updateCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "a", calls[0].noteID)
	assert.Equal(t, "draft for a", calls[0].content)
	// Note b was never written to.
	assert.Equal(t, "content of b", store.Notes()[1].Content)
}

func TestWriterFlushReadsLatestContent(t *testing.T) {
	repo := &fakeRepo{}
	store := NewStore(repo, "u1", noteList("a"), nil)
	w := newTestWriter(repo, store)
	defer w.Close()

	w.OnEdit("first")
	// A direct store mutation after scheduling still wins: the write
	// reads content at fire time, not at schedule time.
	store.ReplaceActiveContent("second")

	time.Sleep(settle)

	calls := repo.updateCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "second", calls[0].content)
}

func TestWriterCloseCancelsPendingWrite(t *testing.T) {
	repo := &fakeRepo{}
	store := NewStore(repo, "u1", noteList("a"), nil)
	w := newTestWriter(repo, store)

	w.OnEdit("about to be lost")
	w.Close()

	time.Sleep(settle)

	assert.Empty(t, repo.updateCalls())
	// The local edit itself is not lost.
	assert.Equal(t, "about to be lost", store.ActiveNote().Content)
}

func TestWriterEditAfterCloseIsIgnored(t *testing.T) {
	repo := &fakeRepo{}
	store := NewStore(repo, "u1", noteList("a"), nil)
	w := newTestWriter(repo, store)
	w.Close()

	w.OnEdit("late")
	time.Sleep(settle)

	assert.Empty(t, repo.updateCalls())
}

func TestWriterSwallowsUpdateFailure(t *testing.T) {
	repo := &fakeRepo{updateErr: fmt.Errorf("boom")}
	store := NewStore(repo, "u1", noteList("a"), nil)
	w := newTestWriter(repo, store)
	defer w.Close()

	w.OnEdit("kept locally")
	time.Sleep(settle)

	// The failure is logged, not surfaced; local state stays put.
	assert.Equal(t, "kept locally", store.ActiveNote().Content)
}

func TestWriterSkipsDeletedNote(t *testing.T) {
	repo := &fakeRepo{}
	store := NewStore(repo, "u1", noteList("a", "b"), nil)
	w := newTestWriter(repo, store)
	defer w.Close()

	w.OnEdit("edit for a")
	require.NoError(t, store.DeleteNote(context.Background(), 0))

	time.Sleep(settle)

	assert.Empty(t, repo.updateCalls())
}
