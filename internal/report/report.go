// Package report turns an extracted palette into the files and terminal
// output cpe produces: a text summary, a JSON document, a PNG preview and
// an ANSI swatch listing.
package report

import (
	"context"
	"fmt"

	"github.com/jmylchreest/cpe/internal/colour"
)

// Result is everything derived from one image.
type Result struct {
	Source    string
	Palette   *colour.Palette
	Roles     colour.Roles
	Harmonies []colour.HarmonySet
}

// Build assigns roles and generates harmonies for every palette colour.
func Build(ctx context.Context, source string, p *colour.Palette, cfg colour.HarmonyConfig) (*Result, error) {
	roles, err := colour.AssignRoles(p)
	if err != nil {
		return nil, fmt.Errorf("assigning roles: %w", err)
	}

	sets, err := colour.GeneratePaletteHarmonies(ctx, p.Colours(), cfg)
	if err != nil {
		return nil, fmt.Errorf("generating harmonies: %w", err)
	}

	return &Result{Source: source, Palette: p, Roles: roles, Harmonies: sets}, nil
}

// hex formats c as "#RRGGBB".
func hex(c colour.RGB) string {
	return "#" + c.Hex()
}
