// Package config loads flatmesher settings from a YAML file.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Version is reported by the command line tool.
const Version = "0.1"

const (
	MinTriangleSize     = 0.05
	MaxTriangleSize     = 50.0
	DefaultTriangleSize = 0.5

	MinWallsHeight     = 0.05
	MaxWallsHeight     = 500.0
	DefaultWallsHeight = 2.0

	DefaultFormat = "vtu"
	DefaultOutput = "tmp.vtu"
)

// Limits bound the values accepted for new plans.
type Limits struct {
	MinTriangleSize float64 `yaml:"min_triangle_size"`
	MaxTriangleSize float64 `yaml:"max_triangle_size"`
	MinHeight       float64 `yaml:"min_height"`
	MaxHeight       float64 `yaml:"max_height"`
}

// Config holds the tool settings. Command line flags override it.
type Config struct {
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	// Workers bounds mesh generation parallelism; 0 means one per CPU.
	Workers      int     `yaml:"workers"`
	Height       float64 `yaml:"height"`
	TriangleSize float64 `yaml:"triangle_size"`
	Limits       Limits  `yaml:"limits"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Format:       DefaultFormat,
		Output:       DefaultOutput,
		Height:       DefaultWallsHeight,
		TriangleSize: DefaultTriangleSize,
		Limits: Limits{
			MinTriangleSize: MinTriangleSize,
			MaxTriangleSize: MaxTriangleSize,
			MinHeight:       MinWallsHeight,
			MaxHeight:       MaxWallsHeight,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// optional is set.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "config: read %q", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.Wrapf(err, "config: parse %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), errors.WithMessagef(err, "config: %s", path)
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	l := c.Limits
	switch {
	case c.Workers < 0:
		return errors.Errorf("workers must not be negative, got %d", c.Workers)
	case l.MinTriangleSize <= 0 || l.MinTriangleSize > l.MaxTriangleSize:
		return errors.Errorf("invalid triangle size limits [%g, %g]", l.MinTriangleSize, l.MaxTriangleSize)
	case l.MinHeight <= 0 || l.MinHeight > l.MaxHeight:
		return errors.Errorf("invalid height limits [%g, %g]", l.MinHeight, l.MaxHeight)
	case c.TriangleSize < l.MinTriangleSize || c.TriangleSize > l.MaxTriangleSize:
		return errors.Errorf("triangle size %g outside [%g, %g]", c.TriangleSize, l.MinTriangleSize, l.MaxTriangleSize)
	case c.Height < l.MinHeight || c.Height > l.MaxHeight:
		return errors.Errorf("height %g outside [%g, %g]", c.Height, l.MinHeight, l.MaxHeight)
	}
	return nil
}

// ClampTriangleSize limits ts to the configured range.
func (c Config) ClampTriangleSize(ts float64) float64 {
	return min(max(ts, c.Limits.MinTriangleSize), c.Limits.MaxTriangleSize)
}

// ClampHeight limits h to the configured range.
func (c Config) ClampHeight(h float64) float64 {
	return min(max(h, c.Limits.MinHeight), c.Limits.MaxHeight)
}
