package colour

import (
	"fmt"
	"math"
	"slices"
)

// Space names a colour representation.
type Space string

const (
	SpaceRGB  Space = "rgb"
	SpaceHSL  Space = "hsl"
	SpaceCMYK Space = "cmyk"
	SpaceHex  Space = "hex"
)

// ValidSpaces returns the supported colour spaces.
func ValidSpaces() []Space {
	return []Space{SpaceRGB, SpaceHSL, SpaceCMYK, SpaceHex}
}

// ParseSpace converts a string to a Space.
func ParseSpace(s string) (Space, error) {
	sp := Space(s)
	if slices.Contains(ValidSpaces(), sp) {
		return sp, nil
	}
	return "", fmt.Errorf("%w: unknown colour space %q (valid: %v)", ErrInvalidArgument, s, ValidSpaces())
}

// Representation is one view of a colour.
type Representation interface {
	String() string
}

// Hex is the six digit uppercase view returned by Convert for SpaceHex.
type Hex string

func (h Hex) String() string { return string(h) }

// Convert returns the view of c in the target space: RGB, HSL, CMYK or Hex.
func Convert(c RGB, target Space) (Representation, error) {
	switch target {
	case SpaceRGB:
		return c, nil
	case SpaceHex:
		return Hex(c.Hex()), nil
	case SpaceHSL:
		hsl := c.HSL()
		if !finite(hsl.H, hsl.S, hsl.L) {
			return nil, fmt.Errorf("%w: %s -> hsl gave %+v", ErrConversionDomain, c, hsl)
		}
		return hsl, nil
	case SpaceCMYK:
		cmyk := c.CMYK()
		if !finite(cmyk.C, cmyk.M, cmyk.Y, cmyk.K) {
			return nil, fmt.Errorf("%w: %s -> cmyk gave %+v", ErrConversionDomain, c, cmyk)
		}
		return cmyk, nil
	default:
		return nil, fmt.Errorf("%w: unknown colour space %q", ErrInvalidArgument, target)
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
