package pixpaint

import (
	"image"
)

// Surface is the pixel buffer contract a fill operates on. It is usually
// implemented by the host drawing surface (see Canvas).
type Surface interface {
	// Bounds returns the drawable area.
	Bounds() image.Rectangle
	// Pixel returns the color at (x, y), or Sentinel when the point lies
	// outside of the surface on either axis.
	Pixel(x, y int) Color
	// SetPixel writes c at (x, y). The caller guarantees that the point is in bounds.
	SetPixel(x, y int, c Color)
	// Commit flushes the mutated buffer to the visible surface in one go.
	Commit()
}

// Stats reports the work done by a fill.
type Stats struct {
	Filled  int // pixels repainted
	Visited int // frontier entries evaluated
	Layers  int // frontier layers drained
}

// Filler is the paint bucket engine. The zero value performs an exact color match.
type Filler struct {
	// Tolerance is the maximum per channel difference from the seed color
	// for a pixel to be part of the region. Zero means exact match.
	Tolerance int
}

// Fill repaints the 4-connected region around seed which matches the seed's
// original color with the color described by fillColorHex.
// A malformed color returns a *ColorParseError and leaves the buffer untouched.
// A seed outside of the surface is a no-op.
func Fill(s Surface, seed image.Point, fillColorHex string) error {
	var f Filler
	_, err := f.Fill(s, seed, fillColorHex)
	return err
}

// Fill parses the fill color and runs the flood fill. See FillColor.
func (f *Filler) Fill(s Surface, seed image.Point, fillColorHex string) (Stats, error) {
	fillColor, err := ParseHex(fillColorHex)
	if err != nil {
		return Stats{}, err
	}
	return f.FillColor(s, seed, fillColor), nil
}

// FillColor runs the flood fill with an already parsed color. The buffer is
// committed once, and only when at least one pixel has been repainted.
func (f *Filler) FillColor(s Surface, seed image.Point, fillColor Color) Stats {
	var stats Stats

	target := s.Pixel(seed.X, seed.Y)
	if target.IsSentinel() {
		return stats
	}
	if target.Equal(fillColor) {
		return stats
	}

	var (
		visited *bitset
		bounds  = s.Bounds()
	)
	// With a tolerance a repainted pixel may still match the target,
	// so every accepted pixel has to be remembered.
	if f.Tolerance > 0 {
		visited = newBitset(bounds)
	}

	front := newFrontier(seed)
	for !front.empty() {
		stats.Layers++
		for _, p := range front.layer() {
			stats.Visited++

			c := s.Pixel(p.X, p.Y)
			if !c.Within(target, f.Tolerance) {
				continue
			}
			if visited != nil {
				if visited.has(p) {
					continue
				}
				visited.set(p)
			}
			s.SetPixel(p.X, p.Y, fillColor)
			stats.Filled++
			front.pushNeighbors(p)
		}
		front.swap()
	}

	if stats.Filled > 0 {
		s.Commit()
	}
	return stats
}

// bitset marks the pixels of a rectangle, one bit per pixel.
type bitset struct {
	rect image.Rectangle
	bits []uint64
}

func newBitset(r image.Rectangle) *bitset {
	n := r.Dx() * r.Dy()
	return &bitset{
		rect: r,
		bits: make([]uint64, (n+63)/64),
	}
}

func (b *bitset) index(p image.Point) int {
	return (p.Y-b.rect.Min.Y)*b.rect.Dx() + (p.X - b.rect.Min.X)
}

func (b *bitset) has(p image.Point) bool {
	i := b.index(p)
	return b.bits[i>>6]&(1<<(uint(i)&63)) != 0
}

func (b *bitset) set(p image.Point) {
	i := b.index(p)
	b.bits[i>>6] |= 1 << (uint(i) & 63)
}
