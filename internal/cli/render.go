package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cpe/internal/render"
	"github.com/jmylchreest/cpe/internal/report"
)

type renderOptions struct {
	input  string
	colors string
	output string
}

func newRenderCmd(a *app) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render templates with colours from an extracted palette",
		Long: `Render Go text/template files using the colours and roles of a palette
written by "cpe extract".

The input may be a single template or a directory; every regular file in a
directory is rendered to a file of the same name in the output directory.

Template functions:
  colour i, color i     palette colour at index i
  role "name"           colour assigned to a role (dominant, accent, ...)
  has "name"            whether a role is assigned
  count                 number of palette colours
  hex, hexNoHash        "#RRGGBB" and "RRGGBB"
  rgb, rgbDecimal       "r, g, b" in 0-255 and in 0-1
  hueShift c deg        rotate hue
  tint c t, shade c t   mix toward white or black
  lerp a b t            mix two colours
  complementary c       opposite hue
  analogous c i, triadic c i, tetradic c i

Examples:
  cpe render --input templates/ --output ~/.config/theme
  cpe render --input kitty.conf.tmpl --colors ./colors.json --output .`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runRender(opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "template file or directory")
	f.StringVar(&opts.colors, "colors", "", "palette JSON from extract (default: colors.json in the output dir)")
	f.StringVarP(&opts.output, "output", "o", ".", "directory for rendered files")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func (a *app) runRender(opts *renderOptions) error {
	colors := opts.colors
	if colors == "" {
		colors = filepath.Join(a.cfg.OutputDir, JSONFile)
	}

	f, err := os.Open(colors) // #nosec G304 -- user-specified palette file
	if err != nil {
		return fmt.Errorf("failed to open palette: %w", err)
	}
	defer f.Close()

	doc, err := report.ReadJSON(f)
	if err != nil {
		return fmt.Errorf("failed to read palette %s: %w", colors, err)
	}
	theme, err := render.NewTheme(doc)
	if err != nil {
		return err
	}

	written, err := render.RenderPath(theme, opts.input, opts.output, a.logger.Named("render"))
	if err != nil {
		return err
	}
	a.logger.Info("templates rendered", "palette", colors, "files", len(written))
	return nil
}
