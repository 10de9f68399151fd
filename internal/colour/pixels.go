package colour

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// PixelGrid is a read-only, row-major grid of non-premultiplied RGBA
// pixels, four bytes per pixel.
type PixelGrid struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelGrid copies a decoded image into a PixelGrid.
func NewPixelGrid(img image.Image) (*PixelGrid, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image cannot be nil", ErrInvalidArgument)
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &PixelGrid{Width: b.Dx(), Height: b.Dy(), Pix: dst.Pix}, nil
}

// NewPixelGridFromRGBA wraps raw RGBA bytes. The buffer must hold exactly
// width*height*4 bytes.
func NewPixelGridFromRGBA(width, height int, pix []uint8) (*PixelGrid, error) {
	g := &PixelGrid{Width: width, Height: height, Pix: pix}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// NewPixelGridFromColours builds a grid from rows of opaque colours. All rows
// must have the same length.
func NewPixelGridFromColours(rows [][]RGB) (*PixelGrid, error) {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	pix := make([]uint8, 0, width*height*4)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrInvalidArgument, y, len(row), width)
		}
		for _, c := range row {
			pix = append(pix, c.R, c.G, c.B, 0xff)
		}
	}
	return &PixelGrid{Width: width, Height: height, Pix: pix}, nil
}

// Validate reports a malformed grid.
func (g *PixelGrid) Validate() error {
	if g == nil {
		return fmt.Errorf("%w: pixel grid cannot be nil", ErrInvalidArgument)
	}
	if g.Width < 0 || g.Height < 0 {
		return fmt.Errorf("%w: negative grid dimensions %dx%d", ErrInvalidArgument, g.Width, g.Height)
	}
	if want := g.Width * g.Height * 4; len(g.Pix) != want {
		return fmt.Errorf("%w: pixel buffer has %d bytes, want %d for %dx%d",
			ErrInvalidArgument, len(g.Pix), want, g.Width, g.Height)
	}
	return nil
}

// At returns the colour and alpha of the pixel at (x, y).
func (g *PixelGrid) At(x, y int) (RGB, uint8) {
	i := (y*g.Width + x) * 4
	return RGB{R: g.Pix[i], G: g.Pix[i+1], B: g.Pix[i+2]}, g.Pix[i+3]
}

// Image exposes the grid as an *image.NRGBA sharing the same pixels.
func (g *PixelGrid) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    g.Pix,
		Stride: g.Width * 4,
		Rect:   image.Rect(0, 0, g.Width, g.Height),
	}
}

// Downsample returns a copy scaled with r so the longest side is at most
// maxDimension, preserving aspect ratio. The receiver is returned unchanged
// when it already fits or maxDimension <= 0.
func (g *PixelGrid) Downsample(maxDimension int, r Resampler) *PixelGrid {
	longest := max(g.Width, g.Height)
	if maxDimension <= 0 || longest <= maxDimension {
		return g
	}

	scale := float64(maxDimension) / float64(longest)
	w := max(int(math.Round(float64(g.Width)*scale)), 1)
	h := max(int(math.Round(float64(g.Height)*scale)), 1)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	src := g.Image()
	r.scaler().Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return &PixelGrid{Width: w, Height: h, Pix: dst.Pix}
}

// weightedColour is a distinct colour and the number of pixels carrying it.
type weightedColour struct {
	colour RGB
	count  int
}

// histogram flattens the grid into distinct colours sorted by ascending RGB,
// skipping pixels whose alpha is at or below alphaThreshold unless
// keepTransparent is set. It also returns the number of pixels kept.
func (g *PixelGrid) histogram(alphaThreshold uint8, keepTransparent bool) ([]weightedColour, int) {
	counts := make(map[RGB]int)
	total := 0
	for i := 0; i+3 < len(g.Pix); i += 4 {
		if !keepTransparent && g.Pix[i+3] <= alphaThreshold {
			continue
		}
		counts[RGB{R: g.Pix[i], G: g.Pix[i+1], B: g.Pix[i+2]}]++
		total++
	}

	out := make([]weightedColour, 0, len(counts))
	for c, n := range counts {
		out = append(out, weightedColour{colour: c, count: n})
	}
	sortWeighted(out)
	return out, total
}
