package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestNavigator(ids ...string) (*Navigator, *Store) {
	store := NewStore(&fakeRepo{}, "u1", noteList(ids...), nil)
	nav := NewNavigator(store)
	nav.SetFeedbackTTL(20 * time.Millisecond)
	return nav, store
}

func TestNavigatorKeyMoves(t *testing.T) {
	nav, store := newTestNavigator("a", "b", "c")

	assert.True(t, nav.Go(DirNext))
	assert.Equal(t, 1, store.ActiveIndex())

	assert.True(t, nav.Go(DirNext))
	assert.Equal(t, 2, store.ActiveIndex())

	assert.True(t, nav.Go(DirPrevious))
	assert.Equal(t, 1, store.ActiveIndex())
}

func TestNavigatorBoundariesAreSilentNoOps(t *testing.T) {
	nav, store := newTestNavigator("a", "b")

	// Previous at index 0.
	assert.False(t, nav.Go(DirPrevious))
	assert.Equal(t, 0, store.ActiveIndex())
	assert.Equal(t, DirNone, nav.Feedback())

	// Next at the last index.
	store.SetActiveIndex(1)
	assert.False(t, nav.Go(DirNext))
	assert.Equal(t, 1, store.ActiveIndex())
	assert.Equal(t, DirNone, nav.Feedback())
}

func TestNavigatorDragAboveThreshold(t *testing.T) {
	nav, store := newTestNavigator("a", "b", "c")
	store.SetActiveIndex(1)

	// Rightward drag: previous (newer) note.
	nav.PressAt(10)
	assert.True(t, nav.ReleaseAt(70))
	assert.Equal(t, 0, store.ActiveIndex())
	assert.Equal(t, DirPrevious, nav.Feedback())

	// Leftward drag: next (older) note.
	nav.PressAt(100)
	assert.True(t, nav.ReleaseAt(40))
	assert.Equal(t, 1, store.ActiveIndex())
}

func TestNavigatorDragBelowThresholdIsNotNavigation(t *testing.T) {
	nav, store := newTestNavigator("a", "b")

	nav.PressAt(10)
	assert.False(t, nav.ReleaseAt(40))
	assert.Equal(t, 0, store.ActiveIndex())
	assert.Equal(t, DirNone, nav.Feedback())
}

func TestNavigatorLeaveResetsDrag(t *testing.T) {
	nav, store := newTestNavigator("a", "b")
	store.SetActiveIndex(1)

	nav.PressAt(10)
	nav.Leave()
	// A release far away after leaving must not count as a drag end.
	assert.False(t, nav.ReleaseAt(500))
	assert.Equal(t, 1, store.ActiveIndex())
}

func TestNavigatorReleaseWithoutPress(t *testing.T) {
	nav, store := newTestNavigator("a", "b")

	assert.False(t, nav.ReleaseAt(300))
	assert.Equal(t, 0, store.ActiveIndex())
}

func TestNavigatorDisabledGatesEverything(t *testing.T) {
	nav, store := newTestNavigator("a", "b", "c")
	store.SetActiveIndex(1)
	nav.SetDisabled(true)

	assert.False(t, nav.Go(DirNext))
	assert.False(t, nav.Go(DirPrevious))

	nav.PressAt(10)
	assert.False(t, nav.ReleaseAt(500))

	assert.Equal(t, 1, store.ActiveIndex())
	assert.Equal(t, DirNone, nav.Feedback())

	// Re-enabling restores navigation.
	nav.SetDisabled(false)
	assert.True(t, nav.Go(DirNext))
	assert.Equal(t, 2, store.ActiveIndex())
}

func TestNavigatorDisableMidDragAbandonsGesture(t *testing.T) {
	nav, store := newTestNavigator("a", "b")

	nav.PressAt(10)
	nav.SetDisabled(true)
	nav.SetDisabled(false)
	assert.False(t, nav.ReleaseAt(500))
	assert.Equal(t, 0, store.ActiveIndex())
}

func TestNavigatorFeedbackAutoClears(t *testing.T) {
	nav, _ := newTestNavigator("a", "b")

	assert.True(t, nav.Go(DirNext))
	assert.Equal(t, DirNext, nav.Feedback())

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, DirNone, nav.Feedback())
}
