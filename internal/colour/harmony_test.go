package colour

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerateHarmoniesRed(t *testing.T) {
	set := GenerateHarmonies(RGB{R: 255}, DefaultHarmonyConfig())

	want := map[HarmonyKind][]RGB{
		Complementary: {{G: 255, B: 255}},
		Analogous:     {{R: 255, B: 128}, {R: 255, G: 128}},
		Triadic:       {{G: 255}, {B: 255}},
		Tetradic:      {{R: 128, G: 255}, {G: 255, B: 255}, {R: 128, B: 255}},
		Tints:         {{R: 255, G: 51, B: 51}, {R: 255, G: 102, B: 102}, {R: 255, G: 153, B: 153}, {R: 255, G: 204, B: 204}},
		Shades:        {{R: 204}, {R: 153}, {R: 102}, {R: 51}},
	}
	if diff := cmp.Diff(want, set.Colours); diff != "" {
		t.Errorf("GenerateHarmonies(red) mismatch (-want +got):\n%s", diff)
	}
	if set.Base != (RGB{R: 255}) {
		t.Errorf("Base = %v, want red", set.Base)
	}
}

func TestGenerateHarmoniesCardinality(t *testing.T) {
	bases := []RGB{
		{},
		{R: 255, G: 255, B: 255},
		{R: 128, G: 128, B: 128},
		{R: 255, B: 43},
		{R: 12, G: 200, B: 99},
	}
	wantLen := map[HarmonyKind]int{
		Complementary: 1,
		Analogous:     2,
		Triadic:       2,
		Tetradic:      3,
		Tints:         4,
		Shades:        4,
	}

	for _, base := range bases {
		t.Run(base.Hex(), func(t *testing.T) {
			set := GenerateHarmonies(base, DefaultHarmonyConfig())
			for _, kind := range AllHarmonyKinds() {
				if got := len(set.Get(kind)); got != wantLen[kind] {
					t.Errorf("%v has %d colours, want %d", kind, got, wantLen[kind])
				}
			}
		})
	}

	set := GenerateHarmonies(RGB{R: 90, G: 60, B: 30}, HarmonyConfig{Steps: 7})
	if len(set.Get(Tints)) != 7 || len(set.Get(Shades)) != 7 {
		t.Errorf("Steps=7 gave %d tints and %d shades", len(set.Get(Tints)), len(set.Get(Shades)))
	}
}

func TestComplementaryHueWraps(t *testing.T) {
	base := RGB{R: 255, B: 43}
	if h := base.HSL().H; math.Abs(h-350) > 1 {
		t.Fatalf("base hue = %v, want about 350", h)
	}

	comp := GenerateHarmonies(base, DefaultHarmonyConfig()).Get(Complementary)[0]
	if h := comp.HSL().H; math.Abs(h-170) > 1 {
		t.Errorf("complementary hue = %v, want about 170", h)
	}
}

func TestHueKindsKeepSaturationAndLightness(t *testing.T) {
	base := RGB{R: 200, G: 80, B: 40}
	hsl := base.HSL()
	set := GenerateHarmonies(base, DefaultHarmonyConfig())

	for _, kind := range []HarmonyKind{Complementary, Analogous, Triadic, Tetradic} {
		for _, c := range set.Get(kind) {
			got := c.HSL()
			if math.Abs(got.S-hsl.S) > 0.02 || math.Abs(got.L-hsl.L) > 0.01 {
				t.Errorf("%v colour %v has S=%.3f L=%.3f, base S=%.3f L=%.3f", kind, c, got.S, got.L, hsl.S, hsl.L)
			}
		}
	}
}

func TestTintsAndShadesMonotonic(t *testing.T) {
	bases := []RGB{
		{R: 255},
		{R: 40, G: 120, B: 200},
		{R: 128, G: 128, B: 128},
		{R: 90, G: 160, B: 60},
	}

	for _, base := range bases {
		t.Run(base.Hex(), func(t *testing.T) {
			set := GenerateHarmonies(base, DefaultHarmonyConfig())
			white, black := RGB{R: 255, G: 255, B: 255}, RGB{}

			prev := base.HSL().L
			for i, c := range set.Get(Tints) {
				l := c.HSL().L
				if l <= prev {
					t.Errorf("tint %d lightness %.4f not above %.4f", i, l, prev)
				}
				if c == white || c == base {
					t.Errorf("tint %d is %v", i, c)
				}
				prev = l
			}

			prev = base.HSL().L
			for i, c := range set.Get(Shades) {
				l := c.HSL().L
				if l >= prev {
					t.Errorf("shade %d lightness %.4f not below %.4f", i, l, prev)
				}
				if c == black || c == base {
					t.Errorf("shade %d is %v", i, c)
				}
				prev = l
			}
		})
	}
}

func TestTintsAndShadesAtExtremes(t *testing.T) {
	white, black := RGB{R: 255, G: 255, B: 255}, RGB{}
	cfg := DefaultHarmonyConfig()

	tests := []struct {
		name string
		base RGB
		kind HarmonyKind
		want []RGB
	}{
		{name: "tints of white stay white", base: white, kind: Tints, want: []RGB{white, white, white, white}},
		{name: "shades of black stay black", base: black, kind: Shades, want: []RGB{black, black, black, black}},
		{name: "shades of white are greys", base: white, kind: Shades, want: []RGB{
			{R: 204, G: 204, B: 204}, {R: 153, G: 153, B: 153}, {R: 102, G: 102, B: 102}, {R: 51, G: 51, B: 51},
		}},
		{name: "tints of black are greys", base: black, kind: Tints, want: []RGB{
			{R: 51, G: 51, B: 51}, {R: 102, G: 102, B: 102}, {R: 153, G: 153, B: 153}, {R: 204, G: 204, B: 204},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateHarmonies(tt.base, cfg).Get(tt.kind)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("%s of %s mismatch (-want +got):\n%s", tt.kind, tt.base.Hex(), diff)
			}
		})
	}
}

func TestTintsNonDecreasingNearWhite(t *testing.T) {
	cfg := HarmonyConfig{Steps: 8}
	for _, base := range []RGB{{R: 250, G: 250, B: 250}, {R: 255, G: 250, B: 250}, {R: 3, G: 2, B: 2}} {
		t.Run(base.Hex(), func(t *testing.T) {
			set := GenerateHarmonies(base, cfg)

			prev := base.HSL().L
			for i, c := range set.Get(Tints) {
				if l := c.HSL().L; l < prev {
					t.Errorf("tint %d lightness %.4f below %.4f", i, l, prev)
				} else {
					prev = l
				}
			}
			prev = base.HSL().L
			for i, c := range set.Get(Shades) {
				if l := c.HSL().L; l > prev {
					t.Errorf("shade %d lightness %.4f above %.4f", i, l, prev)
				} else {
					prev = l
				}
			}
		})
	}
}

func TestHarmonyKindText(t *testing.T) {
	set := GenerateHarmonies(RGB{R: 10, G: 20, B: 30}, DefaultHarmonyConfig())
	data, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("json.Marshal() unexpected error: %v", err)
	}

	var decoded HarmonySet
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() unexpected error: %v", err)
	}
	if diff := cmp.Diff(set, decoded); diff != "" {
		t.Errorf("harmony set changed through JSON (-want +got):\n%s", diff)
	}

	var k HarmonyKind
	if err := k.UnmarshalText([]byte("Pentadic")); err == nil {
		t.Error("UnmarshalText(Pentadic) expected error")
	}
}

func TestGeneratePaletteHarmonies(t *testing.T) {
	colours := []RGB{{R: 255}, {G: 255}, {B: 255}, {R: 30, G: 60, B: 90}, {R: 200, G: 200, B: 10}}

	sets, err := GeneratePaletteHarmonies(context.Background(), colours, DefaultHarmonyConfig())
	if err != nil {
		t.Fatalf("GeneratePaletteHarmonies() unexpected error: %v", err)
	}
	if len(sets) != len(colours) {
		t.Fatalf("got %d sets, want %d", len(sets), len(colours))
	}
	for i, c := range colours {
		want := GenerateHarmonies(c, DefaultHarmonyConfig())
		if diff := cmp.Diff(want, sets[i]); diff != "" {
			t.Errorf("set %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestUtilsBlend(t *testing.T) {
	red, blue := RGB{R: 255}, RGB{B: 255}

	if got := Lerp(red, blue, 0); got != red {
		t.Errorf("Lerp(t=0) = %v, want %v", got, red)
	}
	if got := Lerp(red, blue, 1); got != blue {
		t.Errorf("Lerp(t=1) = %v, want %v", got, blue)
	}
	// Red to blue goes the short way, through magenta.
	if got := Lerp(red, blue, 0.5); got != (RGB{R: 255, B: 255}) {
		t.Errorf("Lerp(t=0.5) = %v, want magenta", got)
	}
	if got := Tint(red, 1); got != (RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("Tint(1) = %v, want white", got)
	}
	if got := Shade(red, 1); got != (RGB{}) {
		t.Errorf("Shade(1) = %v, want black", got)
	}
	if got := ShiftHue(red, 120); got != (RGB{G: 255}) {
		t.Errorf("ShiftHue(120) = %v, want green", got)
	}
	if got := TextColour(RGB{R: 250, G: 250, B: 210}); got != (RGB{}) {
		t.Errorf("TextColour(light) = %v, want black", got)
	}
	if got := TextColour(RGB{R: 20, G: 20, B: 60}); got != (RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("TextColour(dark) = %v, want white", got)
	}
	if r := ContrastRatio(RGB{}, RGB{R: 255, G: 255, B: 255}); math.Abs(r-21) > 1e-9 {
		t.Errorf("ContrastRatio(black, white) = %v, want 21", r)
	}
}
