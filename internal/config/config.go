// Package config resolves cpe settings from defaults, an optional .env file
// and CPE_* environment variables. Command-line flags are applied on top by
// the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/jmylchreest/cpe/internal/colour"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CPE_"

// Environment variable names.
const (
	EnvColours       = EnvPrefix + "COLOURS"
	EnvMaxDimension  = EnvPrefix + "MAX_DIMENSION"
	EnvSteps         = EnvPrefix + "STEPS"
	EnvInit          = EnvPrefix + "INIT"
	EnvSeed          = EnvPrefix + "SEED"
	EnvRestarts      = EnvPrefix + "RESTARTS"
	EnvWorkers       = EnvPrefix + "WORKERS"
	EnvOutputDir     = EnvPrefix + "OUTPUT_DIR"
	EnvAllowPrivate  = EnvPrefix + "ALLOW_PRIVATE_HOSTS"
	EnvFetchTimeout  = EnvPrefix + "FETCH_TIMEOUT"
	EnvAlphaCutoff   = EnvPrefix + "ALPHA_THRESHOLD"
	EnvResample      = EnvPrefix + "RESAMPLE"
	defaultEnvFile   = ".env"
	defaultCacheName = "cpe"
)

// Config holds every tunable of a cpe run.
type Config struct {
	ColourCount       int
	MaxDimension      int
	Resample          colour.Resampler
	Steps             int
	Init              colour.InitStrategy
	Seed              *uint64
	Restarts          int
	Workers           int
	AlphaThreshold    uint8
	OutputDir         string
	AllowPrivateHosts bool
	FetchTimeout      time.Duration
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ColourCount:  colour.DefaultColourCount,
		MaxDimension: colour.DefaultMaxDimension,
		Resample:     colour.ResampleCatmullRom,
		Steps:        colour.DefaultHarmonySteps,
		Init:         colour.InitMaximin,
		Restarts:     colour.DefaultRestarts,
		Workers:      runtime.GOMAXPROCS(0),
		OutputDir:    DefaultOutputDir(),
		FetchTimeout: 10 * time.Second,
	}
}

// DefaultOutputDir returns the per-user cache directory for cpe, falling
// back to ./cpe when the platform has none.
func DefaultOutputDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return defaultCacheName
	}
	return filepath.Join(dir, defaultCacheName)
}

// Load returns Default() overlaid with envFile (".env" when empty) and the
// CPE_* environment. A missing env file is not an error; variables already
// set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = defaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := Default()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overlays values found through lookup onto c.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	intVar := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}

	intVar(EnvColours, &c.ColourCount)
	intVar(EnvMaxDimension, &c.MaxDimension)
	intVar(EnvSteps, &c.Steps)
	intVar(EnvRestarts, &c.Restarts)
	intVar(EnvWorkers, &c.Workers)

	if v, ok := lookup(EnvInit); ok && v != "" {
		strategy, err := colour.ParseInitStrategy(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvInit, err))
		} else {
			c.Init = strategy
		}
	}
	if v, ok := lookup(EnvResample); ok && v != "" {
		r, err := colour.ParseResampler(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvResample, err))
		} else {
			c.Resample = r
		}
	}
	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSeed, err))
		} else {
			c.Seed = &seed
		}
	}
	if v, ok := lookup(EnvAlphaCutoff); ok && v != "" {
		a, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvAlphaCutoff, err))
		} else {
			c.AlphaThreshold = uint8(a)
		}
	}
	if v, ok := lookup(EnvOutputDir); ok && v != "" {
		c.OutputDir = v
	}
	if v, ok := lookup(EnvAllowPrivate); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvAllowPrivate, err))
		} else {
			c.AllowPrivateHosts = b
		}
	}
	if v, ok := lookup(EnvFetchTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvFetchTimeout, err))
		} else {
			c.FetchTimeout = d
		}
	}

	return errors.Join(errs...)
}

// ExtractorConfig converts c into the extractor's configuration.
func (c Config) ExtractorConfig() colour.ExtractorConfig {
	ec := colour.DefaultExtractorConfig()
	ec.ColourCount = c.ColourCount
	ec.MaxDimension = c.MaxDimension
	ec.Resample = c.Resample
	ec.Init = c.Init
	ec.Seed = c.Seed
	ec.Restarts = c.Restarts
	ec.Workers = max(c.Workers, 1)
	ec.AlphaThreshold = c.AlphaThreshold
	return ec
}

// HarmonyConfig converts c into the harmony generator's configuration.
func (c Config) HarmonyConfig() colour.HarmonyConfig {
	return colour.HarmonyConfig{Steps: c.Steps}
}

// Validate checks the values that have no natural downstream check.
func (c Config) Validate() error {
	if err := c.ExtractorConfig().Validate(); err != nil {
		return err
	}
	if c.Steps < 1 {
		return fmt.Errorf("%w: steps must be at least 1, got %d", colour.ErrInvalidArgument, c.Steps)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	return nil
}
