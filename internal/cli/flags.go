package cli

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/cpe/internal/colour"
	"github.com/jmylchreest/cpe/internal/report"
)

// initFlag is a pflag.Value restricted to the k-means init strategies.
type initFlag struct {
	value *colour.InitStrategy
}

var _ pflag.Value = initFlag{}

func (f initFlag) String() string {
	if f.value == nil {
		return ""
	}
	return string(*f.value)
}

func (f initFlag) Set(s string) error {
	v, err := colour.ParseInitStrategy(s)
	if err != nil {
		return err
	}
	*f.value = v
	return nil
}

func (f initFlag) Type() string { return "strategy" }

// resampleFlag is a pflag.Value restricted to the downsampling scalers.
type resampleFlag struct {
	value *colour.Resampler
}

var _ pflag.Value = resampleFlag{}

func (f resampleFlag) String() string {
	if f.value == nil {
		return ""
	}
	return string(*f.value)
}

func (f resampleFlag) Set(s string) error {
	v, err := colour.ParseResampler(s)
	if err != nil {
		return err
	}
	*f.value = v
	return nil
}

func (f resampleFlag) Type() string { return "resampler" }

// spaceFlag is a pflag.Value restricted to the supported colour spaces.
type spaceFlag struct {
	value *colour.Space
}

var _ pflag.Value = spaceFlag{}

func (f spaceFlag) String() string {
	if f.value == nil {
		return ""
	}
	return string(*f.value)
}

func (f spaceFlag) Set(s string) error {
	v, err := colour.ParseSpace(s)
	if err != nil {
		return err
	}
	*f.value = v
	return nil
}

func (f spaceFlag) Type() string { return "space" }

// colourModeFlag is a pflag.Value for the terminal colour mode.
type colourModeFlag struct {
	value *report.ColourMode
}

var _ pflag.Value = colourModeFlag{}

func (f colourModeFlag) String() string {
	if f.value == nil {
		return ""
	}
	return string(*f.value)
}

func (f colourModeFlag) Set(s string) error {
	for _, m := range report.ValidColourModes() {
		if string(m) == s {
			*f.value = m
			return nil
		}
	}
	return fmt.Errorf("invalid colour mode %q (valid: %v)", s, report.ValidColourModes())
}

func (f colourModeFlag) Type() string { return "mode" }
