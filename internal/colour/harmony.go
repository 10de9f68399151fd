package colour

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// HarmonyKind names one colour-wheel relationship.
type HarmonyKind int

const (
	Complementary HarmonyKind = iota
	Analogous
	Triadic
	Tetradic
	Tints
	Shades
)

// DefaultHarmonySteps is the number of tints and shades generated.
const DefaultHarmonySteps = 4

// AllHarmonyKinds returns every kind in report order.
func AllHarmonyKinds() []HarmonyKind {
	return []HarmonyKind{Complementary, Analogous, Triadic, Tetradic, Tints, Shades}
}

func (k HarmonyKind) String() string {
	switch k {
	case Complementary:
		return "Complementary"
	case Analogous:
		return "Analogous"
	case Triadic:
		return "Triadic"
	case Tetradic:
		return "Tetradic"
	case Tints:
		return "Tints"
	case Shades:
		return "Shades"
	default:
		return fmt.Sprintf("HarmonyKind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name, so it can key JSON objects.
func (k HarmonyKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *HarmonyKind) UnmarshalText(text []byte) error {
	for _, kind := range AllHarmonyKinds() {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("%w: unknown harmony kind %q", ErrInvalidArgument, text)
}

// hueOffsets are the rotations, in degrees, for the hue-based kinds.
var hueOffsets = map[HarmonyKind][]float64{
	Complementary: {180},
	Analogous:     {-30, 30},
	Triadic:       {120, 240},
	Tetradic:      {90, 180, 270},
}

// HarmonyConfig configures harmony generation.
type HarmonyConfig struct {
	// Steps is the number of tints and of shades. Values below 1 use
	// DefaultHarmonySteps.
	Steps int
}

// DefaultHarmonyConfig returns the default harmony configuration.
func DefaultHarmonyConfig() HarmonyConfig {
	return HarmonyConfig{Steps: DefaultHarmonySteps}
}

func (c HarmonyConfig) steps() int {
	if c.Steps < 1 {
		return DefaultHarmonySteps
	}
	return c.Steps
}

// HarmonySet holds the colours derived from one base colour. The base itself
// is never repeated inside Colours.
type HarmonySet struct {
	Base    RGB                   `json:"base"`
	Colours map[HarmonyKind][]RGB `json:"colours"`
}

// Get returns the colours of one kind.
func (h HarmonySet) Get(kind HarmonyKind) []RGB {
	return h.Colours[kind]
}

// GenerateHarmonies derives every harmony kind from base.
//
// Hue-based kinds keep saturation and lightness. Tints raise lightness
// toward 1 and shades lower it toward 0 in Steps equal increments. The
// computed lightness is strictly monotonic and never reaches 0, 1 or the
// base itself, but the 8-bit rounding can collapse steps that are smaller
// than one channel level: tints of pure white are all white, shades of pure
// black are all black, and near those extremes neighbouring steps may round
// to the same colour.
func GenerateHarmonies(base RGB, cfg HarmonyConfig) HarmonySet {
	hsl := base.HSL()
	set := HarmonySet{Base: base, Colours: make(map[HarmonyKind][]RGB, len(AllHarmonyKinds()))}

	for kind, offsets := range hueOffsets {
		out := make([]RGB, len(offsets))
		for i, deg := range offsets {
			out[i] = hsl.RotateHue(deg).RGB()
		}
		set.Colours[kind] = out
	}

	set.Colours[Tints] = TintLightness(hsl, cfg.steps())
	set.Colours[Shades] = ShadeLightness(hsl, cfg.steps())
	return set
}

// TintLightness returns n colours with lightness L + (1-L)*i/(n+1).
func TintLightness(base HSL, n int) []RGB {
	out := make([]RGB, n)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n+1)
		out[i-1] = HSLToRGB(base.H, base.S, base.L+(1-base.L)*t)
	}
	return out
}

// ShadeLightness returns n colours with lightness L*(1 - i/(n+1)).
func ShadeLightness(base HSL, n int) []RGB {
	out := make([]RGB, n)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n+1)
		out[i-1] = HSLToRGB(base.H, base.S, base.L*(1-t))
	}
	return out
}

// GeneratePaletteHarmonies runs GenerateHarmonies for every colour
// concurrently and returns the sets in input order.
func GeneratePaletteHarmonies(ctx context.Context, colours []RGB, cfg HarmonyConfig) ([]HarmonySet, error) {
	sets := make([]HarmonySet, len(colours))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range colours {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sets[i] = GenerateHarmonies(c, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sets, nil
}
