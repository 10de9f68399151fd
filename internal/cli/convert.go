package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cpe/internal/colour"
)

func newConvertCmd(a *app) *cobra.Command {
	var target colour.Space

	cmd := &cobra.Command{
		Use:   "convert <hex>",
		Short: "Convert a colour between RGB, HSL, CMYK and hex",
		Long: `Print a colour in every supported colour space, or only the one named by
--to.

Examples:
  cpe convert '#3A7BD5'
  cpe convert 3a7bd5 --to cmyk`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := colour.ParseHex(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if target != "" {
				v, err := colour.Convert(c, target)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, v)
				return err
			}

			t := NewTable("SPACE", "VALUE")
			for _, sp := range colour.ValidSpaces() {
				v, err := colour.Convert(c, sp)
				if err != nil {
					return err
				}
				t.AddRow(string(sp), v.String())
			}
			a.logger.Debug("converted colour", "hex", c.Hex())
			_, err = t.WriteTo(out)
			return err
		},
	}
	cmd.Flags().Var(spaceFlag{&target}, "to", "only print this colour space (rgb, hsl, cmyk, hex)")
	return cmd
}
