// SPDX-License-Identifier: MIT

// Package config loads the radial YAML configuration and maps it onto the
// options of every stage.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/radial/ballot"
	"github.com/katalvlaran/radial/pca"
	"github.com/katalvlaran/radial/render"
	"github.com/katalvlaran/radial/sector"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the root configuration.
type Config struct {
	Groups     int              `yaml:"groups"`
	Labels     []string         `yaml:"labels"`
	Search     SearchConfig     `yaml:"search"`
	Projection ProjectionConfig `yaml:"projection"`
	Ballot     BallotConfig     `yaml:"ballot"`
	Output     OutputConfig     `yaml:"output"`
	Render     RenderConfig     `yaml:"render"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SearchConfig tunes the rotation-offset search.
type SearchConfig struct {
	Resolution int `yaml:"resolution"`
	Workers    int `yaml:"workers"`
}

// ProjectionConfig configures the PCA stage.
type ProjectionConfig struct {
	Standardize   bool    `yaml:"standardize"`
	Solver        string  `yaml:"solver"`
	Seed          int64   `yaml:"seed"`
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
}

// BallotConfig configures answer-token decoding.
type BallotConfig struct {
	Yes     []string `yaml:"yes"`
	No      []string `yaml:"no"`
	Missing float64  `yaml:"missing"`
	Lenient bool     `yaml:"lenient"`
}

// OutputConfig names the artifacts of a run. Empty paths disable an output.
type OutputConfig struct {
	Assignments string `yaml:"assignments"`
	Image       string `yaml:"image"`
	Database    string `yaml:"database"`
}

// RenderConfig configures the PNG chart.
type RenderConfig struct {
	Width    int      `yaml:"width"`
	Height   int      `yaml:"height"`
	Margin   int      `yaml:"margin"`
	Rotation float64  `yaml:"rotation"`
	Palette  []string `yaml:"palette"`
	Title    string   `yaml:"title"`
	XLabel   string   `yaml:"x_label"`
	YLabel   string   `yaml:"y_label"`
}

// MetricsConfig controls Prometheus export. Empty values disable export.
type MetricsConfig struct {
	Textfile    string `yaml:"textfile"`
	Pushgateway string `yaml:"pushgateway"`
	Job         string `yaml:"job"`
}

// LoggingConfig selects the zap preset and level.
type LoggingConfig struct {
	Mode  string `yaml:"mode"`  // development | production
	Level string `yaml:"level"` // debug | info | warn | error
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	ro := render.DefaultOptions()
	palette := make([]string, len(ro.Palette))
	copy(palette, ro.Palette)

	return &Config{
		Groups: 6,
		Search: SearchConfig{
			Resolution: sector.DefaultResolution,
			Workers:    1,
		},
		Projection: ProjectionConfig{
			Standardize: true,
			Solver:      pca.SolverJacobi.String(),
			Seed:        42,
			Tolerance:   1e-10,
		},
		Ballot: BallotConfig{
			Yes:     []string{"yes"},
			No:      []string{"no"},
			Missing: 0.5,
		},
		Output: OutputConfig{
			Assignments: "radial_clustering_assignments.csv",
			Image:       "radial_clustering_visualization.png",
		},
		Render: RenderConfig{
			Width:   ro.Width,
			Height:  ro.Height,
			Margin:  ro.Margin,
			Palette: palette,
			Title:   ro.Title,
			XLabel:  ro.XLabel,
			YLabel:  ro.YLabel,
		},
		Metrics: MetricsConfig{Job: "radial"},
		Logging: LoggingConfig{Mode: "development", Level: "info"},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file yields the defaults (still overridden by the environment).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies RADIAL_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("RADIAL_GROUPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: RADIAL_GROUPS=%q: %w", ErrInvalidConfig, v, err)
		}
		c.Groups = n
	}
	if v := os.Getenv("RADIAL_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: RADIAL_SEED=%q: %w", ErrInvalidConfig, v, err)
		}
		c.Projection.Seed = n
	}
	if v := os.Getenv("RADIAL_DB"); v != "" {
		c.Output.Database = v
	}
	if v := os.Getenv("RADIAL_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return nil
}

// Validate checks ranges and names. Every error wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Groups < 1 {
		return fmt.Errorf("%w: groups must be >= 1, got %d", ErrInvalidConfig, c.Groups)
	}
	if len(c.Labels) > 0 && len(c.Labels) != c.Groups {
		return fmt.Errorf("%w: %d labels for %d groups", ErrInvalidConfig, len(c.Labels), c.Groups)
	}
	if c.Search.Resolution < 0 {
		return fmt.Errorf("%w: search.resolution must be >= 0", ErrInvalidConfig)
	}
	if c.Search.Workers < 0 {
		return fmt.Errorf("%w: search.workers must be >= 0", ErrInvalidConfig)
	}
	if _, err := pca.ParseSolver(c.Projection.Solver); err != nil {
		return fmt.Errorf("%w: projection.solver: %w", ErrInvalidConfig, err)
	}
	if c.Projection.Tolerance < 0 || c.Projection.MaxIterations < 0 {
		return fmt.Errorf("%w: projection tolerance and max_iterations must be >= 0", ErrInvalidConfig)
	}
	if c.Ballot.Missing < 0 || c.Ballot.Missing > 1 {
		return fmt.Errorf("%w: ballot.missing must be in [0, 1]", ErrInvalidConfig)
	}
	switch c.Logging.Mode {
	case "", "development", "production":
	default:
		return fmt.Errorf("%w: logging.mode %q", ErrInvalidConfig, c.Logging.Mode)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}

	return nil
}

// SectorOptions maps the search settings and labels onto sector.Options.
func (c *Config) SectorOptions() sector.Options {
	o := sector.DefaultOptions()
	o.Resolution = c.Search.Resolution
	o.Workers = c.Search.Workers
	if len(c.Labels) > 0 {
		o.Labels = make([]sector.Label, len(c.Labels))
		for i, l := range c.Labels {
			o.Labels[i] = sector.Label(l)
		}
	}

	return o
}

// ProjectionOptions maps the projection settings onto pca.Options (two components).
func (c *Config) ProjectionOptions() (pca.Options, error) {
	s, err := pca.ParseSolver(c.Projection.Solver)
	if err != nil {
		return pca.Options{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	o := pca.DefaultOptions()
	o.Standardize = c.Projection.Standardize
	o.Solver = s
	o.Seed = c.Projection.Seed
	if c.Projection.Tolerance > 0 {
		o.Tolerance = c.Projection.Tolerance
	}
	o.MaxIter = c.Projection.MaxIterations

	return o, nil
}

// Encoding maps the ballot settings onto ballot.Encoding.
func (c *Config) Encoding() ballot.Encoding {
	return ballot.Encoding{
		Yes:     c.Ballot.Yes,
		No:      c.Ballot.No,
		Missing: c.Ballot.Missing,
		Lenient: c.Ballot.Lenient,
	}
}

// RenderOptions maps the render settings onto render.Options.
func (c *Config) RenderOptions() render.Options {
	o := render.DefaultOptions()
	o.Width = c.Render.Width
	o.Height = c.Render.Height
	o.Margin = c.Render.Margin
	o.Rotation = c.Render.Rotation
	if len(c.Render.Palette) > 0 {
		o.Palette = c.Render.Palette
	}
	o.Title = c.Render.Title
	o.XLabel = c.Render.XLabel
	o.YLabel = c.Render.YLabel

	return o
}
