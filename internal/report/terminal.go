package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jmylchreest/cpe/internal/colour"
)

// ANSI escape codes for 24-bit terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 2
)

// ColourMode controls whether ANSI colour is emitted.
type ColourMode string

const (
	ColourAuto   ColourMode = "auto"
	ColourAlways ColourMode = "always"
	ColourNever  ColourMode = "never"
)

// ValidColourModes returns the supported colour modes.
func ValidColourModes() []ColourMode {
	return []ColourMode{ColourAuto, ColourAlways, ColourNever}
}

// TerminalOptions configures WriteTerminal.
type TerminalOptions struct {
	// Mode selects when colour is used. Auto colours only terminals.
	Mode ColourMode

	// Width is the swatch width in cells. Zero uses a two cell block.
	Width int
}

// enabled reports whether colour should be written to w.
func (o TerminalOptions) enabled(w io.Writer) bool {
	switch o.Mode {
	case ColourAlways:
		return true
	case ColourNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

// ColourPreview returns a solid ANSI background block for c.
func ColourPreview(c colour.RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// ColourPreviewWithText returns text centred on a c background, in black or
// white, whichever contrasts better.
func ColourPreviewWithText(c colour.RGB, text string, width int) string {
	if width <= 0 {
		width = len(text)
	}

	fg := colour.TextColour(c)
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	fgs := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg.R, fg.G, fg.B, ansiSuffix)

	switch {
	case len(text) > width:
		text = text[:width]
	case len(text) < width:
		pad := (width - len(text)) / 2
		text = strings.Repeat(" ", pad) + text + strings.Repeat(" ", width-len(text)-pad)
	}
	return bg + fgs + text + ansiReset
}

// WriteTerminal prints the palette and its harmonies as swatch rows. Without
// colour only the hex values are printed.
func WriteTerminal(w io.Writer, res *Result, opts TerminalOptions) error {
	bw := bufio.NewWriter(w)
	useColour := opts.enabled(w)

	row := func(colours []colour.RGB) {
		cells := make([]string, len(colours))
		for i, c := range colours {
			if useColour {
				cells[i] = ColourPreview(c, opts.Width) + " " + hex(c)
			} else {
				cells[i] = hex(c)
			}
		}
		fmt.Fprintln(bw, strings.Join(cells, "  "))
	}

	fmt.Fprintln(bw, "Original Palette:")
	row(res.Palette.Colours())
	fmt.Fprintln(bw)

	for _, kind := range colour.AllHarmonyKinds() {
		fmt.Fprintf(bw, "%s Harmony:\n", kind)
		for _, set := range res.Harmonies {
			row(set.Get(kind))
		}
		fmt.Fprintln(bw)
	}

	if len(res.Roles) > 0 {
		fmt.Fprintln(bw, "Roles:")
		for _, role := range res.Roles.Ordered() {
			c := res.Roles[role]
			label := fmt.Sprintf(" %-11s %s ", role, hex(c))
			if useColour {
				label = ColourPreviewWithText(c, label, 0)
			}
			fmt.Fprintln(bw, label)
		}
	}
	return bw.Flush()
}
