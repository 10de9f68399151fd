package report

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/cpe/internal/colour"
)

// Preview layout, in pixels.
const (
	previewMargin   = 20
	thumbWidth      = 300
	thumbHeight     = 200
	swatchSize      = 50
	swatchStep      = 60
	labelGap        = 15
	titleGap        = 25
	rowGap          = 80
	minPreviewWidth = thumbWidth + 2*previewMargin
)

var (
	previewBackground = color.White
	previewInk        = color.Black
)

// WritePNG renders a preview: a thumbnail of source (when non-nil), the
// palette and one row per palette colour for every harmony kind, each
// swatch labelled with its hex value.
func WritePNG(w io.Writer, res *Result, source image.Image) error {
	img := RenderPreview(res, source)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding preview: %w", err)
	}
	return nil
}

// RenderPreview draws the preview image written by WritePNG.
func RenderPreview(res *Result, source image.Image) *image.RGBA {
	cols := res.Palette.Len()
	for _, set := range res.Harmonies {
		for _, kind := range colour.AllHarmonyKinds() {
			cols = max(cols, 1+len(set.Get(kind)))
		}
	}

	width := max(minPreviewWidth, 2*previewMargin+cols*swatchStep-(swatchStep-swatchSize))
	height := previewHeight(res, source != nil)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(previewBackground), image.Point{}, draw.Src)

	y := previewMargin
	if source != nil {
		drawThumbnail(dst, source, image.Pt(previewMargin, y))
		y += thumbHeight + previewMargin
	}

	y = drawTitle(dst, "Original Palette:", y)
	drawRow(dst, res.Palette.Colours(), y)
	y += rowGap

	for _, kind := range colour.AllHarmonyKinds() {
		y = drawTitle(dst, kind.String()+" Harmony:", y)
		for _, set := range res.Harmonies {
			row := append([]colour.RGB{set.Base}, set.Get(kind)...)
			drawRow(dst, row, y)
			y += rowGap
		}
	}
	return dst
}

func previewHeight(res *Result, thumb bool) int {
	h := 2 * previewMargin
	if thumb {
		h += thumbHeight + previewMargin
	}
	h += titleGap + rowGap
	h += len(colour.AllHarmonyKinds()) * (titleGap + len(res.Harmonies)*rowGap)
	return h
}

// drawThumbnail scales src to fit the thumbnail box, keeping its aspect
// ratio.
func drawThumbnail(dst *image.RGBA, src image.Image, at image.Point) {
	b := src.Bounds()
	if b.Empty() {
		return
	}
	scale := min(float64(thumbWidth)/float64(b.Dx()), float64(thumbHeight)/float64(b.Dy()))
	w := max(int(float64(b.Dx())*scale), 1)
	h := max(int(float64(b.Dy())*scale), 1)
	draw.CatmullRom.Scale(dst, image.Rect(at.X, at.Y, at.X+w, at.Y+h), src, b, draw.Over, nil)
}

// drawTitle writes text at y and returns the y of the content below it.
func drawTitle(dst *image.RGBA, text string, y int) int {
	drawLabel(dst, text, previewMargin, y+basicfont.Face7x13.Ascent)
	return y + titleGap
}

func drawRow(dst *image.RGBA, colours []colour.RGB, y int) {
	for i, c := range colours {
		x := previewMargin + i*swatchStep
		r := image.Rect(x, y, x+swatchSize, y+swatchSize)
		draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
		drawLabel(dst, hex(c), x, y+swatchSize+labelGap)
	}
}

func drawLabel(dst *image.RGBA, text string, x, baseline int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(previewInk),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(text)
}
