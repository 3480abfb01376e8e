// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and TIANWEN_ env vars over the defaults.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DatasetPath points at a JSON or YAML dataset. Empty selects the bundled dataset.
	DatasetPath string `koanf:"dataset_path"`

	// DatasetFormat forces json or yaml. Empty detects from the file extension.
	DatasetFormat string `koanf:"dataset_format"`

	// DensityMode selects the regional density normalization:
	// count, share, relative, span or script.
	DensityMode string `koanf:"density_mode"`

	// DensityScript is the path to a Lua file defining density(region, count, total, max).
	// Required when DensityMode is script.
	DensityScript string `koanf:"density_script"`

	// RegionSpans maps region names to their expected span for the span mode.
	RegionSpans map[string]float64 `koanf:"region_spans"`

	// DefaultRegionSpan is used for regions missing from RegionSpans.
	DefaultRegionSpan float64 `koanf:"default_region_span"`

	// Locale selects the report language, e.g. zh-Hans or en.
	Locale string `koanf:"locale"`

	// TopN limits the rows rendered per table. Zero renders all rows.
	TopN int `koanf:"top_n"`

	// MetricsTextfile, when set, receives a Prometheus text dump after the run.
	MetricsTextfile string `koanf:"metrics_textfile"`

	// Sites extends the built-in gazetteer of historical capitals.
	Sites []Site `koanf:"sites"`
}

// Site is an extra observation site recognized by the analyzer.
type Site struct {
	Name       string   `koanf:"name"`
	ModernName string   `koanf:"modern_name"`
	Aliases    []string `koanf:"aliases"`
	Dynasties  []string `koanf:"dynasties"`
	Lat        float64  `koanf:"lat"`
	Lon        float64  `koanf:"lon"`
}

// New creates a Config populated with defaults. Context is accepted first to
// follow the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		DensityMode:       "count",
		RegionSpans:       map[string]float64{},
		DefaultRegionSpan: 1,
		Locale:            "zh-Hans",
		TopN:              10,
	}
}
