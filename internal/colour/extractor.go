package colour

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"slices"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/image/draw"
)

const (
	// MinColours and MaxColours bound the requested palette size.
	MinColours = 1
	MaxColours = 20

	// DefaultColourCount is the palette size used when none is given.
	DefaultColourCount = 5

	// DefaultMaxDimension bounds the longest side of the working image.
	DefaultMaxDimension = 400

	// DefaultMaxIterations caps Lloyd iterations per run.
	DefaultMaxIterations = 100

	// DefaultEpsilon is the total centroid movement, in 8-bit RGB units,
	// below which a run has converged.
	DefaultEpsilon = 1e-4

	// DefaultRestarts is the number of initialisations tried.
	DefaultRestarts = 4
)

// InitStrategy selects how k-means centroids are seeded.
type InitStrategy string

const (
	// InitMaximin seeds from the most populous colours and grows each run by
	// farthest-point selection. It uses no randomness.
	InitMaximin InitStrategy = "maximin"

	// InitKMeansPlusPlus uses k-means++ with a PCG stream derived from the
	// configured seed, or from the image content when no seed is set.
	InitKMeansPlusPlus InitStrategy = "kmeans++"
)

// Resampler selects the scaler used to downsample the working image.
type Resampler string

const (
	// ResampleCatmullRom is the default: smooth, but it blends colours
	// across hard edges.
	ResampleCatmullRom Resampler = "catmullrom"

	// ResampleBilinear blends neighbouring pixels linearly.
	ResampleBilinear Resampler = "bilinear"

	// ResampleNearest copies source pixels without blending, which keeps
	// flat-colour images exact.
	ResampleNearest Resampler = "nearest"
)

// ValidResamplers returns the supported resamplers.
func ValidResamplers() []Resampler {
	return []Resampler{ResampleCatmullRom, ResampleBilinear, ResampleNearest}
}

// ParseResampler converts a string to a Resampler.
func ParseResampler(s string) (Resampler, error) {
	r := Resampler(s)
	if slices.Contains(ValidResamplers(), r) {
		return r, nil
	}
	return "", fmt.Errorf("%w: unknown resampler %q (valid: %v)", ErrInvalidArgument, s, ValidResamplers())
}

// scaler maps the resampler to its x/image/draw implementation. The empty
// value is CatmullRom.
func (r Resampler) scaler() draw.Scaler {
	switch r {
	case ResampleBilinear:
		return draw.BiLinear
	case ResampleNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// ValidInitStrategies returns the supported initialisation strategies.
func ValidInitStrategies() []InitStrategy {
	return []InitStrategy{InitMaximin, InitKMeansPlusPlus}
}

// ParseInitStrategy converts a string to an InitStrategy.
func ParseInitStrategy(s string) (InitStrategy, error) {
	st := InitStrategy(s)
	if slices.Contains(ValidInitStrategies(), st) {
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown init strategy %q (valid: %v)", ErrInvalidArgument, s, ValidInitStrategies())
}

// ExtractorConfig holds configuration for palette extraction. It is passed
// into every call; there is no package-level state.
type ExtractorConfig struct {
	// ColourCount is the requested palette size, in [MinColours, MaxColours].
	ColourCount int

	// MaxDimension bounds the longest side of the working image. Zero or
	// negative disables downsampling.
	MaxDimension int

	// Resample selects the downsampling scaler. Empty means CatmullRom.
	Resample Resampler

	// MaxIterations caps Lloyd iterations per run.
	MaxIterations int

	// Epsilon is the convergence threshold on total centroid movement.
	Epsilon float64

	// Init selects the initialisation strategy.
	Init InitStrategy

	// Seed drives InitKMeansPlusPlus. Nil derives it from the image content.
	Seed *uint64

	// Restarts is the number of initialisations tried; the lowest inertia
	// wins.
	Restarts int

	// Workers is the number of goroutines used for the assignment step.
	Workers int

	// AlphaThreshold drops pixels whose alpha is at or below it, so the
	// default of zero drops fully transparent pixels only.
	AlphaThreshold uint8

	// KeepTransparent keeps every pixel regardless of alpha.
	KeepTransparent bool

	// Logger receives trace output. Nil discards it.
	Logger hclog.Logger
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		ColourCount:   DefaultColourCount,
		MaxDimension:  DefaultMaxDimension,
		Resample:      ResampleCatmullRom,
		MaxIterations: DefaultMaxIterations,
		Epsilon:       DefaultEpsilon,
		Init:          InitMaximin,
		Restarts:      DefaultRestarts,
		Workers:       runtime.GOMAXPROCS(0),
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if c.ColourCount < MinColours || c.ColourCount > MaxColours {
		return fmt.Errorf("%w: colour count must be between %d and %d, got %d",
			ErrInvalidArgument, MinColours, MaxColours, c.ColourCount)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("%w: max iterations must be at least 1, got %d", ErrInvalidArgument, c.MaxIterations)
	}
	if c.Epsilon < 0 {
		return fmt.Errorf("%w: epsilon cannot be negative, got %g", ErrInvalidArgument, c.Epsilon)
	}
	if c.Restarts < 1 {
		return fmt.Errorf("%w: restarts must be at least 1, got %d", ErrInvalidArgument, c.Restarts)
	}
	if _, err := ParseInitStrategy(string(c.Init)); err != nil {
		return err
	}
	if c.Resample != "" {
		if _, err := ParseResampler(string(c.Resample)); err != nil {
			return err
		}
	}
	return nil
}

func (c ExtractorConfig) logger() hclog.Logger {
	if c.Logger == nil {
		return hclog.NewNullLogger()
	}
	return c.Logger
}

// Extract derives a palette from the grid. See ExtractContext.
func Extract(grid *PixelGrid, cfg ExtractorConfig) (*Palette, error) {
	return ExtractContext(context.Background(), grid, cfg)
}

// ExtractContext derives a palette of at most cfg.ColourCount swatches.
//
// When the working image holds fewer distinct colours than requested, the
// palette has one swatch per distinct colour and is therefore shorter than
// requested. Clusters that end up empty are dropped, never padded.
func ExtractContext(ctx context.Context, grid *PixelGrid, cfg ExtractorConfig) (*Palette, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	log := cfg.logger()
	work := grid.Downsample(cfg.MaxDimension, cfg.Resample)
	if work != grid {
		log.Debug("downsampled image", "from", fmt.Sprintf("%dx%d", grid.Width, grid.Height),
			"to", fmt.Sprintf("%dx%d", work.Width, work.Height))
	}

	hist, total := work.histogram(cfg.AlphaThreshold, cfg.KeepTransparent)
	if total == 0 {
		return nil, fmt.Errorf("%w: image has no pixels above alpha %d", ErrEmptyInput, cfg.AlphaThreshold)
	}
	log.Debug("sampled pixels", "pixels", total, "distinct", len(hist))

	k := cfg.ColourCount
	if len(hist) <= k {
		swatches := make([]Swatch, len(hist))
		for i, w := range hist {
			swatches[i] = Swatch{Colour: w.colour, Weight: float64(w.count) / float64(total)}
		}
		return newPalette(swatches), nil
	}

	cl := newClustering(hist, k, cfg)
	var inits [][]point3D
	switch cfg.Init {
	case InitKMeansPlusPlus:
		seed := ContentSeed(work)
		if cfg.Seed != nil {
			seed = *cfg.Seed
		}
		inits = cl.kmeansPlusPlusInits(cfg.Restarts, seed)
	default:
		inits = cl.maximinInits(cfg.Restarts)
	}

	res, err := cl.run(ctx, inits)
	if err != nil {
		return nil, fmt.Errorf("clustering: %w", err)
	}
	log.Debug("clustering complete", "inertia", res.inertia, "iterations", res.iterations)

	swatches := make([]Swatch, 0, len(res.centroids))
	for i, c := range res.centroids {
		if res.counts[i] == 0 {
			continue
		}
		swatches = append(swatches, Swatch{Colour: c.rgb(), Weight: res.counts[i] / float64(total)})
	}
	return newPalette(swatches), nil
}

// Extractor defines the interface for colour extraction algorithms.
type Extractor interface {
	// Extract extracts a colour palette from an image.
	// The count parameter specifies the number of colours to extract.
	Extract(img image.Image, count int) (*Palette, error)
}

// KMeansExtractor implements colour extraction using k-means clustering.
type KMeansExtractor struct {
	config ExtractorConfig
}

// NewKMeansExtractor creates a new KMeansExtractor with the given settings.
func NewKMeansExtractor(cfg ExtractorConfig) *KMeansExtractor {
	return &KMeansExtractor{config: cfg}
}

// Extract extracts count colours from an image.
func (e *KMeansExtractor) Extract(img image.Image, count int) (*Palette, error) {
	grid, err := NewPixelGrid(img)
	if err != nil {
		return nil, err
	}
	cfg := e.config
	cfg.ColourCount = count
	return Extract(grid, cfg)
}
