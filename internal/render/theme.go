// Package render fills text templates with colours from an extracted
// palette, so application configs can be themed from an image.
package render

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/jmylchreest/cpe/internal/colour"
	"github.com/jmylchreest/cpe/internal/report"
)

// Theme is the palette and role assignment available to templates.
type Theme struct {
	Colors []colour.RGB
	Roles  colour.Roles
}

// NewTheme builds a Theme from a JSON report document.
func NewTheme(doc *report.Document) (*Theme, error) {
	colours, err := doc.Colours()
	if err != nil {
		return nil, err
	}
	roles, err := doc.ParsedRoles()
	if err != nil {
		return nil, err
	}
	return &Theme{Colors: colours, Roles: roles}, nil
}

// Colour returns the palette colour at index i.
func (t *Theme) Colour(i int) (colour.RGB, error) {
	if i < 0 || i >= len(t.Colors) {
		return colour.RGB{}, fmt.Errorf("colour index %d out of range (palette has %d colours)", i, len(t.Colors))
	}
	return t.Colors[i], nil
}

// Role returns the colour assigned to a role.
func (t *Theme) Role(name string) (colour.RGB, error) {
	c, ok := t.Roles[colour.Role(name)]
	if !ok {
		return colour.RGB{}, fmt.Errorf("role %q not found", name)
	}
	return c, nil
}

// Funcs returns the template functions bound to t.
//
// Colour sources: colour, role, has. Formatting: hex, hexNoHash, rgb,
// rgbDecimal. Transforms: hueShift, tint, shade, lerp, complementary,
// analogous, triadic, tetradic.
func (t *Theme) Funcs() template.FuncMap {
	return template.FuncMap{
		// Colour access.
		"colour": t.Colour,
		"color":  t.Colour,
		"role":   t.Role,
		"has": func(name string) bool {
			_, ok := t.Roles[colour.Role(name)]
			return ok
		},
		"count": func() int { return len(t.Colors) },

		// Format conversion.
		"hex":        hexFunc,
		"hexNoHash":  colour.RGB.Hex,
		"rgb":        rgbFunc,
		"rgbDecimal": rgbDecimalFunc,

		// Transforms.
		"hueShift":      colour.ShiftHue,
		"tint":          colour.Tint,
		"shade":         colour.Shade,
		"lerp":          colour.Lerp,
		"complementary": complementaryFunc,
		"analogous":     harmonyFunc(colour.Analogous),
		"triadic":       harmonyFunc(colour.Triadic),
		"tetradic":      harmonyFunc(colour.Tetradic),

		// String manipulation.
		"toLower": strings.ToLower,
		"toUpper": strings.ToUpper,
	}
}

// hexFunc formats a colour as "#RRGGBB".
func hexFunc(c colour.RGB) string {
	return "#" + c.Hex()
}

// rgbFunc formats a colour as "r, g, b".
func rgbFunc(c colour.RGB) string {
	return fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B)
}

// rgbDecimalFunc formats a colour as "r, g, b" with channels in [0, 1].
func rgbDecimalFunc(c colour.RGB) string {
	return fmt.Sprintf("%.3f, %.3f, %.3f", float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}

func complementaryFunc(c colour.RGB) colour.RGB {
	return colour.GenerateHarmonies(c, colour.DefaultHarmonyConfig()).Get(colour.Complementary)[0]
}

// harmonyFunc returns a template function picking the i-th colour of kind.
func harmonyFunc(kind colour.HarmonyKind) func(colour.RGB, int) (colour.RGB, error) {
	return func(c colour.RGB, i int) (colour.RGB, error) {
		set := colour.GenerateHarmonies(c, colour.DefaultHarmonyConfig()).Get(kind)
		if i < 0 || i >= len(set) {
			return colour.RGB{}, fmt.Errorf("%s index %d out of range (0-%d)", kind, i, len(set)-1)
		}
		return set[i], nil
	}
}
