// Package cli provides the command-line interface for cpe.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/cpe/internal/config"
	"github.com/jmylchreest/cpe/internal/version"
)

// app carries state shared by every command of one invocation.
type app struct {
	cfg     config.Config
	logger  hclog.Logger
	envFile string
	verbose bool
	quiet   bool
}

// NewRootCmd builds the cpe command tree.
func NewRootCmd() *cobra.Command {
	a := &app{cfg: config.Default(), logger: hclog.NewNullLogger()}

	root := &cobra.Command{
		Use:   "cpe",
		Short: "Colour palette extractor",
		Long: `cpe extracts a colour palette from an image with k-means clustering and
derives colour harmonies (complementary, analogous, triadic, tetradic, tints
and shades) for every palette colour.

Palettes are written as colors.txt and colors.json (plus palette.png with
--png) to the output directory, and templates can be rendered from the JSON
to theme other applications.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "environment file to load (default .env)")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.SetVersionTemplate(version.String() + "\n")

	root.AddCommand(
		newExtractCmd(a),
		newHarmonyCmd(a),
		newConvertCmd(a),
		newRenderCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	level := hclog.Info
	switch {
	case a.verbose:
		level = hclog.Debug
	case a.quiet:
		level = hclog.Error
	}
	a.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "cpe",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	})

	cfg, err := config.Load(a.envFile)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg
	a.logger.Debug("configuration loaded", "output_dir", cfg.OutputDir, "init", cfg.Init, "workers", cfg.Workers)
	return nil
}

// Execute runs the root command with ctx and reports any error on stderr.
// It returns the process exit code.
func Execute(ctx context.Context) int {
	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
