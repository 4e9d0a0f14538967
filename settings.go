package embroidery

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Hoop is the usable sewing field of a machine hoop in millimeters.
type Hoop struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Settings holds the knobs that readers, writers and Normalize consult.
type Settings struct {
	// DstJumpsPerTrim is the number of consecutive jumps that a DST style
	// machine interprets as a trim.
	DstJumpsPerTrim int   `yaml:"dst_jumps_per_trim"`
	Home            Point `yaml:"home"`
	Hoop            Hoop  `yaml:"hoop"`

	HideStitchesOverLength float64 `yaml:"hide_stitches_over_length,omitempty"`
	MaxStitchLength        float64 `yaml:"max_stitch_length,omitempty"`
	MaxJumpLength          float64 `yaml:"max_jump_length,omitempty"`
	CombineJumps           bool    `yaml:"combine_jumps,omitempty"`
}

// DefaultSettings returns the settings of a freshly created pattern.
func DefaultSettings() Settings {
	return Settings{DstJumpsPerTrim: 6}
}

// Validate checks the settings for values no algorithm accepts.
func (s Settings) Validate() error {
	const op = "Settings.Validate"
	switch {
	case s.DstJumpsPerTrim < 0:
		return invalidArgument(op, "dst_jumps_per_trim must not be negative")
	case s.Hoop.Width < 0 || s.Hoop.Height < 0:
		return invalidArgument(op, "hoop size must not be negative")
	case s.HideStitchesOverLength < 0:
		return invalidArgument(op, "hide_stitches_over_length must not be negative")
	case s.MaxStitchLength < 0 || s.MaxJumpLength < 0:
		return invalidArgument(op, "maximum lengths must not be negative")
	case (s.MaxStitchLength > 0) != (s.MaxJumpLength > 0):
		return invalidArgument(op, "max_stitch_length and max_jump_length must be set together")
	}
	return nil
}

// ParseSettings decodes YAML on top of DefaultSettings.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, &Error{Op: "ParseSettings", Kind: KindFormat, Err: err}
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadSettings reads a YAML settings file. A missing file yields
// DefaultSettings.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return Settings{}, &Error{Op: "LoadSettings", Kind: KindIO, Path: path, Err: err}
	}
	s, err := ParseSettings(data)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}
