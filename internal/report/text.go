package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/jmylchreest/cpe/internal/colour"
)

// describe formats one colour as "HEX: #RRGGBB, RGB: (r, g, b), CMYK: (c, m, y, k)".
func describe(c colour.RGB) string {
	cy, m, y, k := c.CMYK().Percent()
	return fmt.Sprintf("HEX: %s, RGB: (%d, %d, %d), CMYK: (%d, %d, %d, %d)",
		hex(c), c.R, c.G, c.B, cy, m, y, k)
}

// WriteText writes the palette, its roles and every harmony as plain text.
func WriteText(w io.Writer, res *Result) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Color Palette:")
	for _, s := range res.Palette.All() {
		fmt.Fprintf(bw, "%s, Weight: %.1f%%\n", describe(s.Colour), s.Weight*100)
	}

	if len(res.Roles) > 0 {
		fmt.Fprintln(bw, "\nColor Roles:")
		for _, role := range res.Roles.Ordered() {
			fmt.Fprintf(bw, "  %s: %s\n", role, hex(res.Roles[role]))
		}
	}

	fmt.Fprintln(bw, "\nColor Harmonies:")
	for _, kind := range colour.AllHarmonyKinds() {
		fmt.Fprintf(bw, "\n%s:\n", kind)
		for _, set := range res.Harmonies {
			fmt.Fprintf(bw, "  Base %s\n", hex(set.Base))
			for i, c := range set.Get(kind) {
				fmt.Fprintf(bw, "    %s %d: %s\n", kind, i+1, describe(c))
			}
		}
	}

	return bw.Flush()
}
