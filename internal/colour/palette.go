package colour

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Swatch is one palette entry: a colour and the fraction of sampled pixels
// assigned to it.
type Swatch struct {
	Colour RGB     `json:"colour"`
	Weight float64 `json:"weight"`
}

// Palette is an ordered set of swatches, most prevalent first.
type Palette struct {
	Swatches []Swatch
}

// newPalette orders swatches by descending weight, ties by ascending RGB.
// Swatches that round to the same colour are merged.
func newPalette(swatches []Swatch) *Palette {
	merged := make([]Swatch, 0, len(swatches))
	index := make(map[RGB]int, len(swatches))
	for _, s := range swatches {
		if i, ok := index[s.Colour]; ok {
			merged[i].Weight += s.Weight
			continue
		}
		index[s.Colour] = len(merged)
		merged = append(merged, s)
	}

	slices.SortStableFunc(merged, func(a, b Swatch) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		default:
			return a.Colour.compare(b.Colour)
		}
	})
	return &Palette{Swatches: merged}
}

// Len returns the number of swatches in the palette.
func (p *Palette) Len() int {
	return len(p.Swatches)
}

// Colours returns the swatch colours in palette order.
func (p *Palette) Colours() []RGB {
	out := make([]RGB, len(p.Swatches))
	for i, s := range p.Swatches {
		out[i] = s.Colour
	}
	return out
}

// Weights returns the swatch weights in palette order.
func (p *Palette) Weights() []float64 {
	out := make([]float64, len(p.Swatches))
	for i, s := range p.Swatches {
		out[i] = s.Weight
	}
	return out
}

// TotalWeight returns the sum of all weights; 1 for any extracted palette.
func (p *Palette) TotalWeight() float64 {
	return floats.Sum(p.Weights())
}

// Get returns the swatch at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (Swatch, error) {
	if index < 0 || index >= len(p.Swatches) {
		return Swatch{}, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, len(p.Swatches))
	}
	return p.Swatches[index], nil
}

// All returns an iterator over all swatches in the palette.
func (p *Palette) All() func(func(int, Swatch) bool) {
	return func(yield func(int, Swatch) bool) {
		for i, s := range p.Swatches {
			if !yield(i, s) {
				return
			}
		}
	}
}

// ToHex converts the palette colours to "#RRGGBB" strings.
func (p *Palette) ToHex() []string {
	out := make([]string, len(p.Swatches))
	for i, s := range p.Swatches {
		out[i] = "#" + s.Colour.Hex()
	}
	return out
}

// SwatchJSON is the JSON form of one swatch.
type SwatchJSON struct {
	Hex    string  `json:"hex"`
	RGB    RGB     `json:"rgb"`
	Weight float64 `json:"weight"`
}

// PaletteJSON is the JSON form of a palette.
type PaletteJSON struct {
	Count  int          `json:"count"`
	Colors []SwatchJSON `json:"colors"`
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	out := PaletteJSON{Count: p.Len(), Colors: make([]SwatchJSON, p.Len())}
	for i, s := range p.Swatches {
		out.Colors[i] = SwatchJSON{Hex: "#" + s.Colour.Hex(), RGB: s.Colour, Weight: s.Weight}
	}
	return json.MarshalIndent(out, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Swatches) == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colours:\n", len(p.Swatches))
	for i, s := range p.Swatches {
		fmt.Fprintf(&sb, "  %2d: #%s (%s) %5.1f%%\n", i+1, s.Colour.Hex(), s.Colour, s.Weight*100)
	}
	return sb.String()
}
