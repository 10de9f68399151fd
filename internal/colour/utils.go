package colour

import (
	"math"
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c RGB) float64 {
	r := gammaCorrect(float64(c.R) / 255.0)
	g := gammaCorrect(float64(c.G) / 255.0)
	b := gammaCorrect(float64(c.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// TextColour returns black or white, whichever reads better on bg.
func TextColour(bg RGB) RGB {
	black, white := RGB{}, RGB{R: 255, G: 255, B: 255}
	if ContrastRatio(bg, black) >= ContrastRatio(bg, white) {
		return black
	}
	return white
}

// Lerp blends from a toward b by t in [0, 1], taking the short way round
// the hue wheel.
func Lerp(a, b RGB, t float64) RGB {
	t = clamp01(t)
	ha, hb := a.HSL(), b.HSL()
	delta := WrapHue(hb.H-ha.H+180) - 180
	return HSLToRGB(ha.H+delta*t, ha.S+(hb.S-ha.S)*t, ha.L+(hb.L-ha.L)*t)
}

// Tint moves c toward white by t in [0, 1], keeping hue and saturation.
func Tint(c RGB, t float64) RGB {
	h := c.HSL()
	return HSLToRGB(h.H, h.S, h.L+(1-h.L)*clamp01(t))
}

// Shade moves c toward black by t in [0, 1], keeping hue and saturation.
func Shade(c RGB, t float64) RGB {
	h := c.HSL()
	return HSLToRGB(h.H, h.S, h.L*(1-clamp01(t)))
}

// ShiftHue rotates the hue of c by degrees.
func ShiftHue(c RGB, degrees float64) RGB {
	return c.HSL().RotateHue(degrees).RGB()
}
