package pixpaint

import "image"

// frontier is the set of pixels discovered but not yet evaluated by a fill.
// It is double buffered: points pushed while a layer is being processed go
// to the next layer, which becomes current on swap. This expands the region
// ring by ring instead of recursing.
type frontier struct {
	cur  []image.Point
	next []image.Point
}

func newFrontier(seed image.Point) *frontier {
	f := &frontier{
		cur:  make([]image.Point, 0, 64),
		next: make([]image.Point, 0, 64),
	}
	f.cur = append(f.cur, seed)
	return f
}

// pushNeighbors schedules the four 4-connected neighbors of p.
func (f *frontier) pushNeighbors(p image.Point) {
	f.next = append(f.next,
		image.Pt(p.X+1, p.Y),
		image.Pt(p.X-1, p.Y),
		image.Pt(p.X, p.Y+1),
		image.Pt(p.X, p.Y-1),
	)
}

// layer returns the points of the current layer. The slice is only valid
// until the next call to swap.
func (f *frontier) layer() []image.Point {
	return f.cur
}

// swap promotes the next layer to current and recycles the drained one.
func (f *frontier) swap() {
	f.cur, f.next = f.next, f.cur[:0]
}

func (f *frontier) empty() bool {
	return len(f.cur) == 0
}
