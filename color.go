package pixpaint

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"

	"github.com/esimov/pixpaint/utils"
)

var hexColorRe = regexp.MustCompile(`^#?([[:xdigit:]]{2})([[:xdigit:]]{2})([[:xdigit:]]{2})$`)

// Color is a pixel value with four 8-bit channels (red, green, blue, alpha).
// The channels are kept as signed integers so that the out of bounds
// Sentinel can be represented and never compares equal to a real color.
type Color struct {
	R, G, B, A int
}

// Sentinel is the impossible color returned for coordinates outside of a surface.
var Sentinel = Color{-1, -1, -1, -1}

// ColorParseError is returned when a color string is not of the form #RRGGBB or RRGGBB.
type ColorParseError struct {
	Input string
}

func (e *ColorParseError) Error() string {
	return fmt.Sprintf("invalid hex color %q: expected #RRGGBB", e.Input)
}

// ParseHex converts a 6 hex digit color string to an opaque Color.
func ParseHex(s string) (Color, error) {
	m := hexColorRe.FindStringSubmatch(s)
	if m == nil {
		return Color{}, &ColorParseError{Input: s}
	}
	var ch [3]int
	for i := range ch {
		v, err := strconv.ParseUint(m[i+1], 16, 8)
		if err != nil {
			return Color{}, &ColorParseError{Input: s}
		}
		ch[i] = int(v)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: 0xff}, nil
}

// MustParseHex is like ParseHex but panics on malformed input.
// It is meant for package level palettes and tests.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromNRGBA converts a non-premultiplied color to Color.
func FromNRGBA(c color.NRGBA) Color {
	return Color{R: int(c.R), G: int(c.G), B: int(c.B), A: int(c.A)}
}

// NRGBA converts c to the standard library color type.
// The channels of the Sentinel are clamped to zero.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(utils.Clamp(c.R, 0, 0xff)),
		G: uint8(utils.Clamp(c.G, 0, 0xff)),
		B: uint8(utils.Clamp(c.B, 0, 0xff)),
		A: uint8(utils.Clamp(c.A, 0, 0xff)),
	}
}

// Hex returns the #rrggbb notation of c. Alpha is dropped.
func (c Color) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// IsSentinel reports whether c is the out of bounds marker.
func (c Color) IsSentinel() bool {
	return c == Sentinel
}

// Equal reports whether all four channels are equal.
func (c Color) Equal(o Color) bool {
	return c == o
}

// Within reports whether every channel of c differs from o by at most tol.
// A tolerance of zero is exact equality. The Sentinel never matches anything.
func (c Color) Within(o Color, tol int) bool {
	if c.IsSentinel() || o.IsSentinel() {
		return false
	}
	if tol <= 0 {
		return c == o
	}
	return utils.Abs(c.R-o.R) <= tol &&
		utils.Abs(c.G-o.G) <= tol &&
		utils.Abs(c.B-o.B) <= tol &&
		utils.Abs(c.A-o.A) <= tol
}
