package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/cpe/internal/colour"
	"github.com/jmylchreest/cpe/internal/report"
)

func testTheme() *Theme {
	return &Theme{
		Colors: []colour.RGB{{R: 255}, {B: 255}},
		Roles: colour.Roles{
			colour.RoleDominant: {R: 255},
			colour.RoleAccent:   {B: 255},
		},
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		want    string
		wantErr bool
	}{
		{name: "colour rgb", tmpl: `{{ colour 0 | rgb }}`, want: "255, 0, 0"},
		{name: "role hex", tmpl: `{{ role "accent" | hex }}`, want: "#0000FF"},
		{name: "hex no hash", tmpl: `{{ role "dominant" | hexNoHash | toLower }}`, want: "ff0000"},
		{name: "complementary", tmpl: `{{ complementary (colour 0) | hex }}`, want: "#00FFFF"},
		{name: "analogous", tmpl: `{{ analogous (colour 0) 1 | hex }}`, want: "#FF8000"},
		{name: "triadic", tmpl: `{{ triadic (colour 0) 0 | hex }}`, want: "#00FF00"},
		{name: "tetradic", tmpl: `{{ tetradic (colour 0) 2 | hex }}`, want: "#8000FF"},
		{name: "hue shift", tmpl: `{{ hueShift (colour 0) 240 | hex }}`, want: "#0000FF"},
		{name: "tint", tmpl: `{{ tint (colour 0) 1.0 | hex }}`, want: "#FFFFFF"},
		{name: "shade", tmpl: `{{ shade (colour 0) 1.0 | hex }}`, want: "#000000"},
		{name: "lerp", tmpl: `{{ lerp (colour 0) (colour 1) 0.5 | hex }}`, want: "#FF00FF"},
		{name: "has", tmpl: `{{ if has "shadow" }}yes{{ else }}no{{ end }}`, want: "no"},
		{name: "count", tmpl: `{{ count }}`, want: "2"},
		{name: "range", tmpl: `{{ range .Colors }}{{ hex . }};{{ end }}`, want: "#FF0000;#0000FF;"},
		{name: "missing role", tmpl: `{{ role "shadow" }}`, wantErr: true},
		{name: "bad index", tmpl: `{{ colour 5 }}`, wantErr: true},
		{name: "bad harmony index", tmpl: `{{ triadic (colour 0) 2 }}`, wantErr: true},
		{name: "parse error", tmpl: `{{ colour 0 `, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(testTheme(), tt.name, tt.tmpl)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Render() expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Render() unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderPath(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "themes")

	files := map[string]string{
		"kitty.conf": "background {{ role \"dominant\" | hex }}\n",
		"waybar.css": "@define-color accent rgb({{ role \"accent\" | rgb }});\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(in, name), []byte(body), 0o600); err != nil {
			t.Fatalf("WriteFile() unexpected error: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(in, "nested"), 0o750); err != nil {
		t.Fatalf("Mkdir() unexpected error: %v", err)
	}

	written, err := RenderPath(testTheme(), in, out, nil)
	if err != nil {
		t.Fatalf("RenderPath() unexpected error: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("RenderPath() wrote %v, want 2 files", written)
	}

	got, err := os.ReadFile(filepath.Join(out, "kitty.conf"))
	if err != nil || string(got) != "background #FF0000\n" {
		t.Errorf("kitty.conf = %q, %v", got, err)
	}
	got, err = os.ReadFile(filepath.Join(out, "waybar.css"))
	if err != nil || !strings.Contains(string(got), "rgb(0, 0, 255)") {
		t.Errorf("waybar.css = %q, %v", got, err)
	}

	single, err := RenderPath(testTheme(), filepath.Join(in, "kitty.conf"), t.TempDir(), nil)
	if err != nil || len(single) != 1 {
		t.Errorf("RenderPath(file) = %v, %v", single, err)
	}
}

func TestNewTheme(t *testing.T) {
	doc := &report.Document{
		Colors: []report.ColourEntry{{Hex: "#112233"}, {Hex: "#445566"}},
		Roles:  map[colour.Role]string{colour.RoleDominant: "#112233"},
	}
	theme, err := NewTheme(doc)
	if err != nil {
		t.Fatalf("NewTheme() unexpected error: %v", err)
	}
	if len(theme.Colors) != 2 || theme.Colors[1] != (colour.RGB{R: 0x44, G: 0x55, B: 0x66}) {
		t.Errorf("NewTheme() colours = %v", theme.Colors)
	}
	if theme.Roles[colour.RoleDominant] != (colour.RGB{R: 0x11, G: 0x22, B: 0x33}) {
		t.Errorf("NewTheme() roles = %v", theme.Roles)
	}

	doc.Colors[0].Hex = "nope"
	if _, err := NewTheme(doc); err == nil {
		t.Error("NewTheme() expected error for invalid hex")
	}
}
