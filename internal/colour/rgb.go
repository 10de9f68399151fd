// Package colour provides colour space conversion, palette extraction and
// harmony generation.
package colour

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// RGB is the canonical colour value. Every other representation is derived
// from it on demand.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBA implements color.Color so an RGB can be drawn directly. Alpha is
// always opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// String returns the colour as "rgb(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex returns the colour as six uppercase hex digits with no prefix,
// e.g. "1A2B3C".
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Less orders colours by ascending R, then G, then B.
func (c RGB) Less(other RGB) bool {
	if c.R != other.R {
		return c.R < other.R
	}
	if c.G != other.G {
		return c.G < other.G
	}
	return c.B < other.B
}

// compare is Less as a three-way comparison for slices.SortFunc.
func (c RGB) compare(other RGB) int {
	switch {
	case c == other:
		return 0
	case c.Less(other):
		return -1
	default:
		return 1
	}
}

// ToRGB converts any color.Color to RGB, un-premultiplying alpha first.
func ToRGB(c color.Color) RGB {
	if rgb, ok := c.(RGB); ok {
		return rgb
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// ParseHex parses "#RRGGBB", "RRGGBB", "#RGB" or "RGB" (any case).
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("%w: hex colour %q must have 3 or 6 digits", ErrInvalidArgument, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: hex colour %q: %v", ErrInvalidArgument, s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// HSL is hue in degrees [0, 360), saturation and lightness in [0, 1].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// String returns the colour as "hsl(h, s%, l%)" with integer components.
func (h HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)",
		int(math.Round(h.H))%360, int(math.Round(h.S*100)), int(math.Round(h.L*100)))
}

// RGB converts back to the canonical representation.
func (h HSL) RGB() RGB {
	return HSLToRGB(h.H, h.S, h.L)
}

// HSL converts to hue/saturation/lightness. Achromatic colours (all
// channels equal) have no defined hue; it is reported as 0.
func (c RGB) HSL() HSL {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	l := (maxVal + minVal) / 2.0
	if delta == 0 {
		return HSL{H: 0, S: 0, L: l}
	}

	var s float64
	if l < 0.5 {
		s = delta / (maxVal + minVal)
	} else {
		s = delta / (2.0 - maxVal - minVal)
	}

	var h float64
	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}

	return HSL{H: WrapHue(h * 60), S: clamp01(s), L: clamp01(l)}
}

// HSLToRGB converts HSL to RGB. The hue wraps onto [0, 360), saturation and
// lightness are clamped to [0, 1] and channels round to nearest, ties up.
func HSLToRGB(h, s, l float64) RGB {
	h = WrapHue(h)
	s = clamp01(s)
	l = clamp01(l)

	if s == 0 {
		v := channel(l)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: channel(hueToRGB(p, q, h+120)),
		G: channel(hueToRGB(p, q, h)),
		B: channel(hueToRGB(p, q, h-120)),
	}
}

// hueToRGB is a helper for HSL to RGB conversion.
func hueToRGB(p, q, t float64) float64 {
	t = WrapHue(t)
	if t < 60 {
		return p + (q-p)*t/60
	}
	if t < 180 {
		return q
	}
	if t < 240 {
		return p + (q-p)*(240-t)/60
	}
	return p
}

// CMYK holds cyan, magenta, yellow and key (black) as fractions in [0, 1].
type CMYK struct {
	C float64 `json:"c"`
	M float64 `json:"m"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// Percent returns the components as whole percentages.
func (c CMYK) Percent() (cyan, magenta, yellow, key int) {
	pct := func(v float64) int { return int(math.Floor(clamp01(v)*100 + 0.5)) }
	return pct(c.C), pct(c.M), pct(c.Y), pct(c.K)
}

// String returns the colour as "cmyk(c%, m%, y%, k%)".
func (c CMYK) String() string {
	cy, m, y, k := c.Percent()
	return fmt.Sprintf("cmyk(%d%%, %d%%, %d%%, %d%%)", cy, m, y, k)
}

// RGB converts back to the canonical representation.
func (c CMYK) RGB() RGB {
	k := 1 - clamp01(c.K)
	return RGB{
		R: channel((1 - clamp01(c.C)) * k),
		G: channel((1 - clamp01(c.M)) * k),
		B: channel((1 - clamp01(c.Y)) * k),
	}
}

// CMYK converts to cyan/magenta/yellow/key. Pure black is K = 1 with
// C = M = Y = 0.
func (c RGB) CMYK() CMYK {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	k := 1 - math.Max(r, math.Max(g, b))
	if k >= 1 {
		return CMYK{K: 1}
	}
	d := 1 - k
	return CMYK{
		C: clamp01((1 - r - k) / d),
		M: clamp01((1 - g - k) / d),
		Y: clamp01((1 - b - k) / d),
		K: k,
	}
}

// WrapHue maps any angle onto [0, 360) using true modulo.
func WrapHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	// math.Mod can hand back -0 or, after the add, exactly 360 for tiny
	// negative inputs.
	if h >= 360 || h == 0 {
		return 0
	}
	return h
}

// RotateHue returns the colour with its hue shifted by degrees, keeping
// saturation and lightness.
func (h HSL) RotateHue(degrees float64) HSL {
	return HSL{H: WrapHue(h.H + degrees), S: h.S, L: h.L}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// channel rounds a [0, 1] fraction to an 8-bit channel, ties up.
func channel(v float64) uint8 {
	return uint8(math.Floor(clamp01(v)*255 + 0.5))
}
