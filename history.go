package pixpaint

import (
	"errors"
	"image"
)

// DefaultUndoLimit is the number of snapshots kept by default.
const DefaultUndoLimit = 5

// ErrNoUndo is returned when there is nothing to undo.
var ErrNoUndo = errors.New("no undo available")

// History is a bounded stack of canvas snapshots. Once full, pushing a new
// snapshot drops the oldest one.
type History struct {
	limit int
	snaps []*image.NRGBA
}

// NewHistory returns an empty history keeping at most limit snapshots.
// A non-positive limit falls back to DefaultUndoLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultUndoLimit
	}
	return &History{
		limit: limit,
		snaps: make([]*image.NRGBA, 0, limit),
	}
}

// Push records snap as the most recent state.
func (h *History) Push(snap *image.NRGBA) {
	if len(h.snaps) >= h.limit {
		copy(h.snaps, h.snaps[1:])
		h.snaps[len(h.snaps)-1] = nil
		h.snaps = h.snaps[:len(h.snaps)-1]
	}
	h.snaps = append(h.snaps, snap)
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (*image.NRGBA, error) {
	n := len(h.snaps)
	if n == 0 {
		return nil, ErrNoUndo
	}
	snap := h.snaps[n-1]
	h.snaps[n-1] = nil
	h.snaps = h.snaps[:n-1]
	return snap, nil
}

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.snaps) }

// Limit returns the capacity of the history.
func (h *History) Limit() int { return h.limit }

// Reset drops every snapshot.
func (h *History) Reset() {
	for i := range h.snaps {
		h.snaps[i] = nil
	}
	h.snaps = h.snaps[:0]
}
