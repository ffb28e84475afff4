package session

import (
	"sync"
	"time"
)

// Direction identifies which way the user paged through the list.
type Direction int

const (
	DirNone Direction = iota
	// DirPrevious moves toward index 0, the newest note.
	DirPrevious
	// DirNext moves toward the end of the list, older notes.
	DirNext
)

const (
	// DefaultSwipeThreshold is the horizontal distance a drag must
	// cover before it counts as a navigation gesture.
	DefaultSwipeThreshold = 50
	// DefaultFeedbackTTL is how long the direction cue stays visible.
	DefaultFeedbackTTL = 600 * time.Millisecond
)

// Navigator translates directional input (drag gestures and key
// presses) into active-index changes on the store, with a transient
// direction cue for the UI. A disabled flag gates every input path
// uniformly while an overlay is open.
type Navigator struct {
	store *Store

	mu         sync.Mutex
	threshold  int
	ttl        time.Duration
	disabled   bool
	dragging   bool
	startX     int
	feedback   Direction
	clearTimer *time.Timer
}

// NewNavigator builds a navigator over the store with the default
// threshold and feedback duration.
func NewNavigator(store *Store) *Navigator {
	return &Navigator{
		store:     store,
		threshold: DefaultSwipeThreshold,
		ttl:       DefaultFeedbackTTL,
	}
}

// SetThreshold overrides the drag threshold. The TUI uses a smaller
// value since it measures in terminal cells rather than pixels.
func (n *Navigator) SetThreshold(cells int) {
	n.mu.Lock()
	n.threshold = cells
	n.mu.Unlock()
}

// SetFeedbackTTL overrides how long the direction cue lingers.
func (n *Navigator) SetFeedbackTTL(d time.Duration) {
	n.mu.Lock()
	n.ttl = d
	n.mu.Unlock()
}

// SetDisabled gates all navigation input. While disabled, gestures and
// key presses change nothing and produce no direction feedback.
func (n *Navigator) SetDisabled(disabled bool) {
	n.mu.Lock()
	n.disabled = disabled
	if disabled {
		n.dragging = false
	}
	n.mu.Unlock()
}

// Feedback returns the current transient direction cue, or DirNone.
// This is cosmetic state only; it never feeds back into index logic.
func (n *Navigator) Feedback() Direction {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.feedback
}

// PressAt starts tracking a drag at the given X coordinate.
func (n *Navigator) PressAt(x int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.disabled {
		return
	}
	n.dragging = true
	n.startX = x
}

// Leave resets the drag so a later release elsewhere is not
// misinterpreted as the end of this gesture.
func (n *Navigator) Leave() {
	n.mu.Lock()
	n.dragging = false
	n.mu.Unlock()
}

// ReleaseAt ends a drag. A release that moved at least the threshold
// navigates one step: rightward (positive dx) to the previous, newer
// note; leftward to the next, older one. Sub-threshold movement is
// not a navigation event.
func (n *Navigator) ReleaseAt(x int) bool {
	n.mu.Lock()
	if n.disabled || !n.dragging {
		n.dragging = false
		n.mu.Unlock()
		return false
	}
	n.dragging = false
	dx := x - n.startX
	threshold := n.threshold
	n.mu.Unlock()

	if dx >= threshold {
		return n.Go(DirPrevious)
	}
	if dx <= -threshold {
		return n.Go(DirNext)
	}
	return false
}

// Go moves one step in the given direction, if the boundary allows.
// Requests past either end are silently ignored; there is no
// wraparound. Key presses call this directly, with no threshold.
func (n *Navigator) Go(dir Direction) bool {
	n.mu.Lock()
	if n.disabled || dir == DirNone {
		n.mu.Unlock()
		return false
	}
	n.mu.Unlock()

	idx := n.store.ActiveIndex()
	var target int
	switch dir {
	case DirPrevious:
		target = idx - 1
	case DirNext:
		target = idx + 1
	}
	if target < 0 || target >= n.store.Len() {
		return false
	}

	n.store.SetActiveIndex(target)
	n.setFeedback(dir)
	return true
}

func (n *Navigator) setFeedback(dir Direction) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.feedback = dir
	if n.clearTimer != nil {
		n.clearTimer.Stop()
	}
	n.clearTimer = time.AfterFunc(n.ttl, func() {
		n.mu.Lock()
		n.feedback = DirNone
		n.clearTimer = nil
		n.mu.Unlock()
	})
}
