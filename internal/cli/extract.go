package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cpe/internal/colour"
	"github.com/jmylchreest/cpe/internal/image"
	"github.com/jmylchreest/cpe/internal/report"
	httputil "github.com/jmylchreest/cpe/internal/util/http"
	"github.com/jmylchreest/cpe/internal/util/imagecache"
)

// Output file names written by extract.
const (
	TextFile = "colors.txt"
	JSONFile = "colors.json"
	PNGFile  = "palette.png"
)

type extractOptions struct {
	colours      int
	maxDimension int
	resample     colour.Resampler
	steps        int
	init         colour.InitStrategy
	seed         uint64
	restarts     int
	workers      int
	outputDir    string
	png          bool
	random       bool
	colourMode   report.ColourMode
	allowPrivate bool
	noCache      bool
}

func newExtractCmd(a *app) *cobra.Command {
	opts := &extractOptions{
		init:       colour.InitMaximin,
		resample:   colour.ResampleCatmullRom,
		colourMode: report.ColourAuto,
	}

	cmd := &cobra.Command{
		Use:   "extract <image> [count]",
		Short: "Extract a colour palette and its harmonies from an image",
		Long: `Extract a colour palette from an image using k-means clustering, then
generate complementary, analogous, triadic, tetradic, tint and shade
harmonies for every palette colour.

The image may be a local file (JPEG, PNG, GIF, WebP, optionally xz, gzip
or bzip2 compressed), a directory (its first image in name order, or a
random one with --random) or an HTTP(S) URL.

count is the palette size, between 1 and 20 (default 5). An image with
fewer distinct colours yields a shorter palette.

Examples:
  # Extract 5 colours and print a preview
  cpe extract wallpaper.jpg

  # Extract 8 colours and also render a PNG preview
  cpe extract wallpaper.png 8 --png

  # Write the results somewhere else
  cpe extract -o ./theme wallpaper.webp

  # Use seeded k-means++ initialisation
  cpe extract --init kmeans++ --seed 42 wallpaper.jpg`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExtract(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.colours, "colours", "c", colour.DefaultColourCount, "number of colours to extract (1-20)")
	f.IntVar(&opts.maxDimension, "max-dimension", colour.DefaultMaxDimension, "downsample so the longest side is at most this (0 disables)")
	f.Var(resampleFlag{&opts.resample}, "resample", "downsampling scaler (catmullrom, bilinear, nearest; nearest keeps flat colours exact)")
	f.IntVar(&opts.steps, "steps", colour.DefaultHarmonySteps, "number of tints and shades")
	f.Var(initFlag{&opts.init}, "init", "k-means initialisation (maximin, kmeans++)")
	f.Uint64Var(&opts.seed, "seed", 0, "seed for kmeans++ initialisation (default: derived from image content)")
	f.IntVar(&opts.restarts, "restarts", colour.DefaultRestarts, "number of k-means initialisations to try")
	f.IntVar(&opts.workers, "workers", 0, "goroutines for k-means assignment (default: GOMAXPROCS)")
	f.StringVarP(&opts.outputDir, "output-dir", "o", "", "directory for colors.txt, colors.json and palette.png (default: user cache dir)")
	f.BoolVar(&opts.png, "png", false, "also render palette.png")
	f.BoolVar(&opts.random, "random", false, "pick a random image when the path is a directory")
	f.Var(colourModeFlag{&opts.colourMode}, "colour", "terminal colour (auto, always, never)")
	f.BoolVar(&opts.allowPrivate, "allow-private-hosts", false, "allow image URLs on loopback and private networks")
	f.BoolVar(&opts.noCache, "no-cache", false, "always download image URLs instead of reusing the cached copy")
	return cmd
}

// applyExtractFlags overlays explicitly set flags onto the loaded configuration.
func (a *app) applyExtractFlags(cmd *cobra.Command, args []string, opts *extractOptions) error {
	f := cmd.Flags()
	if f.Changed("colours") {
		a.cfg.ColourCount = opts.colours
	}
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: count must be a number, got %q", colour.ErrInvalidArgument, args[1])
		}
		a.cfg.ColourCount = n
	}
	if f.Changed("max-dimension") {
		a.cfg.MaxDimension = opts.maxDimension
	}
	if f.Changed("resample") {
		a.cfg.Resample = opts.resample
	}
	if f.Changed("steps") {
		a.cfg.Steps = opts.steps
	}
	if f.Changed("init") {
		a.cfg.Init = opts.init
	}
	if f.Changed("seed") {
		seed := opts.seed
		a.cfg.Seed = &seed
	}
	if f.Changed("restarts") {
		a.cfg.Restarts = opts.restarts
	}
	if f.Changed("workers") && opts.workers > 0 {
		a.cfg.Workers = opts.workers
	}
	if f.Changed("output-dir") {
		a.cfg.OutputDir = opts.outputDir
	}
	if f.Changed("allow-private-hosts") {
		a.cfg.AllowPrivateHosts = opts.allowPrivate
	}
	return a.cfg.Validate()
}

func (a *app) runExtract(cmd *cobra.Command, args []string, opts *extractOptions) error {
	if err := a.applyExtractFlags(cmd, args, opts); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	ctx := cmd.Context()
	log := a.logger

	source := args[0]
	if err := image.ValidateImagePath(source); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}
	resolved, err := image.ResolveImagePath(source, opts.random)
	if err != nil {
		return fmt.Errorf("failed to resolve image path: %w", err)
	}
	if resolved != source {
		log.Info("selected image from directory", "path", resolved)
	}

	loader := image.NewSmartLoader()
	loader.FetchOptions = httputil.FetchOptions{Timeout: a.cfg.FetchTimeout}
	loader.AllowPrivateHosts = a.cfg.AllowPrivateHosts
	loader.Logger = log.Named("loader")
	if !opts.noCache {
		loader.Cache = imagecache.New(filepath.Join(a.cfg.OutputDir, imagecache.DirName))
	}

	img, err := loader.Load(ctx, resolved)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	log.Debug("image loaded", "width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	grid, err := colour.NewPixelGrid(img)
	if err != nil {
		return err
	}

	ec := a.cfg.ExtractorConfig()
	ec.Logger = log.Named("extract")
	palette, err := colour.ExtractContext(ctx, grid, ec)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	if palette.Len() < a.cfg.ColourCount {
		log.Info("image has fewer distinct colours than requested",
			"requested", a.cfg.ColourCount, "extracted", palette.Len())
	}

	res, err := report.Build(ctx, resolved, palette, a.cfg.HarmonyConfig())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil { // #nosec G301 -- output dir holds non-secret palette files
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	written := []string{
		filepath.Join(a.cfg.OutputDir, TextFile),
		filepath.Join(a.cfg.OutputDir, JSONFile),
	}
	if err := writeFile(written[0], func(w io.Writer) error { return report.WriteText(w, res) }); err != nil {
		return err
	}
	if err := writeFile(written[1], func(w io.Writer) error { return report.WriteJSON(w, res) }); err != nil {
		return err
	}
	if opts.png {
		p := filepath.Join(a.cfg.OutputDir, PNGFile)
		if err := writeFile(p, func(w io.Writer) error { return report.WritePNG(w, res, img) }); err != nil {
			return err
		}
		written = append(written, p)
	}
	log.Info("palette written", "colours", palette.Len(), "files", written)

	if a.quiet {
		return nil
	}
	return report.WriteTerminal(cmd.OutOrStdout(), res, report.TerminalOptions{Mode: opts.colourMode})
}

// writeFile creates path and fills it with write.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path) // #nosec G304 -- path is inside the configured output dir
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
