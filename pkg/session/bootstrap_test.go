package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicknote/flick/pkg/models"
)

func TestBootstrapEmptyRepositoryCreatesOneBlank(t *testing.T) {
	repo := &fakeRepo{}

	store, err := Bootstrap(context.Background(), repo, "u1", nil)
	require.NoError(t, err)

	require.Equal(t, 1, store.Len())
	assert.Equal(t, 0, store.ActiveIndex())
	assert.True(t, store.Notes()[0].IsBlank())
	assert.Equal(t, 1, repo.creates)
}

func TestBootstrapNonBlankNewestGetsFreshNoteInFront(t *testing.T) {
	repo := &fakeRepo{listed: noteList("recent", "older")}

	store, err := Bootstrap(context.Background(), repo, "u1", nil)
	require.NoError(t, err)

	require.Equal(t, 3, store.Len())
	assert.Equal(t, 0, store.ActiveIndex())
	assert.True(t, store.Notes()[0].IsBlank())
	assert.Equal(t, "recent", store.Notes()[1].ID)
	// Exactly one create call.
	assert.Equal(t, 1, repo.creates)
}

func TestBootstrapBlankNewestIsReused(t *testing.T) {
	notes := noteList("blank", "older")
	notes[0].Content = ""
	repo := &fakeRepo{listed: notes}

	store, err := Bootstrap(context.Background(), repo, "u1", nil)
	require.NoError(t, err)

	require.Equal(t, 2, store.Len())
	assert.Equal(t, "blank", store.Notes()[0].ID)
	// Idempotent across sessions: no extra blank accumulates.
	assert.Equal(t, 0, repo.creates)
}

func TestBootstrapListFailure(t *testing.T) {
	repo := &fakeRepo{listErr: fmt.Errorf("boom")}

	_, err := Bootstrap(context.Background(), repo, "u1", nil)
	assert.Error(t, err)
}

func TestBootstrapCreateFailure(t *testing.T) {
	repo := &fakeRepo{createErr: fmt.Errorf("boom")}

	_, err := Bootstrap(context.Background(), repo, "u1", nil)
	assert.Error(t, err)
}

func TestBootstrapWhitespaceNewestCountsAsAuthored(t *testing.T) {
	notes := []models.Note{{ID: "ws", Content: "  \n"}}
	repo := &fakeRepo{listed: notes}

	store, err := Bootstrap(context.Background(), repo, "u1", nil)
	require.NoError(t, err)

	// Whitespace is content; a fresh blank still goes in front.
	require.Equal(t, 2, store.Len())
	assert.True(t, store.Notes()[0].IsBlank())
	assert.Equal(t, 1, repo.creates)
}
