package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cpe/internal/colour"
	"github.com/jmylchreest/cpe/internal/report"
)

func newHarmonyCmd(a *app) *cobra.Command {
	var (
		steps  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "harmony <hex>",
		Short: "Generate colour harmonies for a single colour",
		Long: `Generate the complementary, analogous, triadic, tetradic, tint and shade
harmonies of one colour, given as #RRGGBB, RRGGBB, #RGB or RGB.

Examples:
  cpe harmony '#FF0000'
  cpe harmony 3a7bd5 --steps 6
  cpe harmony 3a7bd5 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := colour.ParseHex(args[0])
			if err != nil {
				return err
			}
			cfg := a.cfg.HarmonyConfig()
			if cmd.Flags().Changed("steps") {
				if steps < 1 {
					return fmt.Errorf("%w: steps must be at least 1, got %d", colour.ErrInvalidArgument, steps)
				}
				cfg.Steps = steps
			}

			set := colour.GenerateHarmonies(base, cfg)
			a.logger.Debug("harmonies generated", "base", base.Hex(), "steps", cfg.Steps)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report.NewHarmonyEntry(set))
			}

			t := NewTable("KIND", "#", "HEX", "RGB", "HSL")
			for _, kind := range colour.AllHarmonyKinds() {
				for i, c := range set.Get(kind) {
					t.AddRow(kind.String(), strconv.Itoa(i+1), "#"+c.Hex(), c.String(), c.HSL().String())
				}
			}
			_, err = t.WriteTo(out)
			return err
		},
	}
	cmd.Flags().IntVar(&steps, "steps", colour.DefaultHarmonySteps, "number of tints and shades")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print harmonies as JSON")
	return cmd
}
