package report

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/cpe/internal/colour"
)

func testResult(t *testing.T) *Result {
	t.Helper()

	red, blue := colour.RGB{R: 255}, colour.RGB{B: 255}
	grid, err := colour.NewPixelGridFromColours([][]colour.RGB{
		{red, red, red},
		{blue, blue, blue},
		{red, red, red},
	})
	if err != nil {
		t.Fatalf("NewPixelGridFromColours() unexpected error: %v", err)
	}
	cfg := colour.DefaultExtractorConfig()
	cfg.ColourCount = 2
	p, err := colour.Extract(grid, cfg)
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}

	res, err := Build(context.Background(), "test.png", p, colour.DefaultHarmonyConfig())
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	return res
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, testResult(t)); err != nil {
		t.Fatalf("WriteText() unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Color Palette:\nHEX: #FF0000, RGB: (255, 0, 0), CMYK: (0, 100, 100, 0), Weight: 66.7%\n",
		"HEX: #0000FF, RGB: (0, 0, 255), CMYK: (100, 100, 0, 0), Weight: 33.3%\n",
		"  dominant: #FF0000\n",
		"\nComplementary:\n  Base #FF0000\n    Complementary 1: HEX: #00FFFF, RGB: (0, 255, 255), CMYK: (100, 0, 0, 0)\n",
		"    Shades 4: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteText() output missing %q\n%s", want, out)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	res := testResult(t)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, res); err != nil {
		t.Fatalf("WriteJSON() unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"Complementary": [`) {
		t.Errorf("harmony kinds not keyed by name:\n%s", buf.String())
	}

	doc, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() unexpected error: %v", err)
	}

	colours, err := doc.Colours()
	if err != nil {
		t.Fatalf("Colours() unexpected error: %v", err)
	}
	if diff := cmp.Diff(res.Palette.Colours(), colours); diff != "" {
		t.Errorf("Colours() mismatch (-want +got):\n%s", diff)
	}

	roles, err := doc.ParsedRoles()
	if err != nil {
		t.Fatalf("ParsedRoles() unexpected error: %v", err)
	}
	if diff := cmp.Diff(res.Roles, roles); diff != "" {
		t.Errorf("ParsedRoles() mismatch (-want +got):\n%s", diff)
	}
	if doc.Harmonies[0].Sets[colour.Triadic][0] != "#00FF00" {
		t.Errorf("triadic of red = %v", doc.Harmonies[0].Sets[colour.Triadic])
	}
}

func TestReadJSONErrors(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("{")); err == nil {
		t.Error("ReadJSON(truncated) expected error")
	}
	if _, err := ReadJSON(strings.NewReader(`{"colors": []}`)); err == nil {
		t.Error("ReadJSON(no colors) expected error")
	}
}

func TestWritePNG(t *testing.T) {
	res := testResult(t)
	src := image.NewNRGBA(image.Rect(0, 0, 600, 300))

	var buf bytes.Buffer
	if err := WritePNG(&buf, res, src); err != nil {
		t.Fatalf("WritePNG() unexpected error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() unexpected error: %v", err)
	}

	b := img.Bounds()
	if b.Dx() != minPreviewWidth || b.Dy() != previewHeight(res, true) {
		t.Errorf("preview is %dx%d, want %dx%d", b.Dx(), b.Dy(), minPreviewWidth, previewHeight(res, true))
	}

	// First palette swatch sits below the thumbnail and title.
	y := previewMargin + thumbHeight + previewMargin + titleGap + swatchSize/2
	got := color.RGBAModel.Convert(img.At(previewMargin+swatchSize/2, y)).(color.RGBA)
	if got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("first swatch pixel = %v, want red", got)
	}
}

func TestWriteTerminal(t *testing.T) {
	res := testResult(t)

	tests := []struct {
		mode      ColourMode
		wantANSI  bool
		wantLines []string
	}{
		{mode: ColourNever, wantLines: []string{"Original Palette:\n#FF0000  #0000FF\n", "Tints Harmony:\n"}},
		{mode: ColourAlways, wantANSI: true, wantLines: []string{"\033[48;2;255;0;0m  \033[0m #FF0000"}},
		// A bytes.Buffer is never a terminal.
		{mode: ColourAuto, wantLines: []string{"#FF0000  #0000FF"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteTerminal(&buf, res, TerminalOptions{Mode: tt.mode}); err != nil {
				t.Fatalf("WriteTerminal() unexpected error: %v", err)
			}
			out := buf.String()
			if strings.Contains(out, "\033[") != tt.wantANSI {
				t.Errorf("ANSI present = %v, want %v", !tt.wantANSI, tt.wantANSI)
			}
			for _, want := range tt.wantLines {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q\n%s", want, out)
				}
			}
		})
	}
}

func TestColourPreviewWithText(t *testing.T) {
	got := ColourPreviewWithText(colour.RGB{R: 250, G: 250, B: 250}, "ab", 6)
	want := "\033[48;2;250;250;250m\033[38;2;0;0;0m  ab  \033[0m"
	if got != want {
		t.Errorf("ColourPreviewWithText() = %q, want %q", got, want)
	}
}
