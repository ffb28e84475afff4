package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicknote/flick/pkg/models"
	"github.com/flicknote/flick/pkg/repository"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, "u1", "hello")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	note, err := store.Get(ctx, "u1", id)
	require.NoError(t, err)
	assert.Equal(t, id, note.ID)
	assert.Equal(t, "hello", note.Content)
	assert.False(t, note.CreatedAt.IsZero())
}

func TestGetMissingNote(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "u1", "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetIsScopedToUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, "u1", "private")
	require.NoError(t, err)

	_, err = store.Get(ctx, "u2", id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListOrdersByUpdatedAtDescending(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, "u1", "first")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := store.Create(ctx, "u1", "second")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	// Updating the older note moves it to the front.
	require.NoError(t, store.Update(ctx, "u1", first, "first, revised"))

	notes, err := store.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, first, notes[0].ID)
	assert.Equal(t, second, notes[1].ID)
	assert.True(t, notes[0].UpdatedAt.After(notes[1].UpdatedAt))
}

func TestListEmptyForUnknownUser(t *testing.T) {
	store := newTestStore(t)

	notes, err := store.List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestUpdateMissingNote(t *testing.T) {
	store := newTestStore(t)

	err := store.Update(context.Background(), "u1", "nope", "content")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, "u1", "doomed")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "u1", id))
	// Deleting again is not an error.
	require.NoError(t, store.Delete(ctx, "u1", id))

	notes, err := store.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestContentCapIsEnforced(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tooLong := strings.Repeat("x", models.MaxContentLength+1)

	_, err := store.Create(ctx, "u1", tooLong)
	assert.Error(t, err)

	id, err := store.Create(ctx, "u1", "fine")
	require.NoError(t, err)
	assert.Error(t, store.Update(ctx, "u1", id, tooLong))

	// Exactly at the cap is accepted.
	atCap := strings.Repeat("x", models.MaxContentLength)
	assert.NoError(t, store.Update(ctx, "u1", id, atCap))
}

func TestIdentityDeleteRemovesAllUserData(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, "u1", "one")
	require.NoError(t, err)
	_, err = store.Create(ctx, "u1", "two")
	require.NoError(t, err)
	keep, err := store.Create(ctx, "u2", "other user")
	require.NoError(t, err)

	identity := NewIdentity(store, "u1")
	require.NoError(t, identity.DeleteCurrentIdentity(ctx))

	notes, err := store.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, notes)

	// Other users are untouched.
	_, err = store.Get(ctx, "u2", keep)
	assert.NoError(t, err)
}
