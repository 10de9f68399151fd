package colour

import (
	"errors"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

// cubeStep returns the channel stride for full-cube tests; short mode
// samples every third value.
func cubeStep() int {
	if testing.Short() {
		return 3
	}
	return 1
}

func within(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	return d >= -tol && d <= tol
}

func TestHSLRoundTrip(t *testing.T) {
	step := cubeStep()
	for r := 0; r < 256; r += step {
		for g := 0; g < 256; g += step {
			for b := 0; b < 256; b += step {
				c := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				got := c.HSL().RGB()
				if !within(got.R, c.R, 1) || !within(got.G, c.G, 1) || !within(got.B, c.B, 1) {
					t.Fatalf("HSL round trip of %v = %v", c, got)
				}
			}
		}
	}
}

func TestCMYKRoundTrip(t *testing.T) {
	step := cubeStep()
	for r := 0; r < 256; r += step {
		for g := 0; g < 256; g += step {
			for b := 0; b < 256; b += step {
				c := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				got := c.CMYK().RGB()
				if !within(got.R, c.R, 1) || !within(got.G, c.G, 1) || !within(got.B, c.B, 1) {
					t.Fatalf("CMYK round trip of %v = %v", c, got)
				}
			}
		}
	}
}

func TestHSLMatchesColorful(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 17 {
				c := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				got := c.HSL()

				ref := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
				h, s, l := ref.Hsl()
				if math.Abs(got.H-WrapHue(h)) > 1e-9 || math.Abs(got.S-s) > 1e-9 || math.Abs(got.L-l) > 1e-9 {
					t.Errorf("%v.HSL() = %+v, colorful gives (%v, %v, %v)", c, got, h, s, l)
				}
			}
		}
	}
}

func TestAchromaticHue(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		l    float64
	}{
		{name: "mid grey", rgb: RGB{R: 128, G: 128, B: 128}, l: 128.0 / 255.0},
		{name: "black", rgb: RGB{}, l: 0},
		{name: "white", rgb: RGB{R: 255, G: 255, B: 255}, l: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hsl := tt.rgb.HSL()
			if math.IsNaN(hsl.H) || hsl.H != 0 {
				t.Errorf("hue = %v, want 0", hsl.H)
			}
			if hsl.S != 0 {
				t.Errorf("saturation = %v, want 0", hsl.S)
			}
			if math.Abs(hsl.L-tt.l) > 1e-12 {
				t.Errorf("lightness = %v, want %v", hsl.L, tt.l)
			}
		})
	}
}

func TestHSLToRGB(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l float64
		want    RGB
	}{
		{name: "red", h: 0, s: 1, l: 0.5, want: RGB{R: 255}},
		{name: "green", h: 120, s: 1, l: 0.5, want: RGB{G: 255}},
		{name: "blue", h: 240, s: 1, l: 0.5, want: RGB{B: 255}},
		{name: "half grey rounds up", h: 0, s: 0, l: 0.5, want: RGB{R: 128, G: 128, B: 128}},
		{name: "negative hue wraps", h: -120, s: 1, l: 0.5, want: RGB{B: 255}},
		{name: "hue above 360 wraps", h: 480, s: 1, l: 0.5, want: RGB{G: 255}},
		{name: "lightness clamps", h: 0, s: 1, l: 1.7, want: RGB{R: 255, G: 255, B: 255}},
		{name: "saturation clamps", h: 0, s: -3, l: 0.5, want: RGB{R: 128, G: 128, B: 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HSLToRGB(tt.h, tt.s, tt.l); got != tt.want {
				t.Errorf("HSLToRGB(%v, %v, %v) = %v, want %v", tt.h, tt.s, tt.l, got, tt.want)
			}
		})
	}
}

func TestCMYK(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want CMYK
	}{
		{name: "black", rgb: RGB{}, want: CMYK{K: 1}},
		{name: "white", rgb: RGB{R: 255, G: 255, B: 255}, want: CMYK{}},
		{name: "red", rgb: RGB{R: 255}, want: CMYK{M: 1, Y: 1}},
		{name: "cyan", rgb: RGB{G: 255, B: 255}, want: CMYK{C: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rgb.CMYK()
			if math.Abs(got.C-tt.want.C) > 1e-12 || math.Abs(got.M-tt.want.M) > 1e-12 ||
				math.Abs(got.Y-tt.want.Y) > 1e-12 || math.Abs(got.K-tt.want.K) > 1e-12 {
				t.Errorf("%v.CMYK() = %+v, want %+v", tt.rgb, got, tt.want)
			}
		})
	}

	c, m, y, k := RGB{R: 128, G: 64, B: 0}.CMYK().Percent()
	if c != 0 || m != 50 || y != 100 || k != 50 {
		t.Errorf("Percent() = (%d, %d, %d, %d), want (0, 50, 100, 50)", c, m, y, k)
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		rgb  RGB
		want string
	}{
		{rgb: RGB{R: 255}, want: "FF0000"},
		{rgb: RGB{R: 255, G: 128}, want: "FF8000"},
		{rgb: RGB{R: 1, G: 2, B: 3}, want: "010203"},
		{rgb: RGB{R: 0xab, G: 0xcd, B: 0xef}, want: "ABCDEF"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{in: "#FF8000", want: RGB{R: 255, G: 128}},
		{in: "ff8000", want: RGB{R: 255, G: 128}},
		{in: "#abc", want: RGB{R: 0xaa, G: 0xbb, B: 0xcc}},
		{in: " 010203 ", want: RGB{R: 1, G: 2, B: 3}},
		{in: "#12345", wantErr: true},
		{in: "zzzzzz", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("ParseHex(%q) error = %v, want ErrInvalidArgument", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWrapHue(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: 0, want: 0},
		{in: 360, want: 0},
		{in: -360, want: 0},
		{in: 370, want: 10},
		{in: -10, want: 350},
		{in: 530, want: 170},
		{in: -725, want: 355},
		{in: math.NaN(), want: 0},
	}

	for _, tt := range tests {
		if got := WrapHue(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapHue(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConvert(t *testing.T) {
	c := RGB{R: 255, G: 128}

	tests := []struct {
		space Space
		want  string
	}{
		{space: SpaceRGB, want: "rgb(255, 128, 0)"},
		{space: SpaceHex, want: "FF8000"},
		{space: SpaceHSL, want: "hsl(30, 100%, 50%)"},
		{space: SpaceCMYK, want: "cmyk(0%, 50%, 100%, 0%)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.space), func(t *testing.T) {
			got, err := Convert(c, tt.space)
			if err != nil {
				t.Fatalf("Convert(%v) unexpected error: %v", tt.space, err)
			}
			if got.String() != tt.want {
				t.Errorf("Convert(%v) = %q, want %q", tt.space, got.String(), tt.want)
			}
		})
	}

	if _, err := Convert(c, Space("lab")); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Convert(lab) error = %v, want ErrInvalidArgument", err)
	}
}

func TestToRGB(t *testing.T) {
	want := RGB{R: 10, G: 20, B: 30}
	if got := ToRGB(want); got != want {
		t.Errorf("ToRGB(RGB) = %v, want %v", got, want)
	}
	if got := ToRGB(HSLToRGB(0, 1, 0.5)); got != (RGB{R: 255}) {
		t.Errorf("ToRGB(red) = %v", got)
	}
}
