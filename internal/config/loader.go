package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/okian/tianwen/internal/domain/analyzer"
	"github.com/okian/tianwen/internal/domain/gazetteer"
	"github.com/okian/tianwen/internal/domain/model"
	"golang.org/x/text/language"
)

// Environment variable naming.
const (
	EnvPrefix = "TIANWEN_"
	EnvFile   = "TIANWEN_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if TIANWEN_CONFIG is set
//  3. env (prefix TIANWEN_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// TIANWEN_DENSITY_MODE -> density_mode. Underscores are preserved to
	// match the koanf tags on the struct.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}

	switch strings.ToLower(strings.TrimSpace(c.DatasetFormat)) {
	case "", "json", "yaml", "yml":
	default:
		return fmt.Errorf("%w: dataset_format %q", ErrInvalidConfig, c.DatasetFormat)
	}

	mode, err := analyzer.ParseMode(c.DensityMode)
	if err != nil {
		return fmt.Errorf("%w: density_mode: %w", ErrInvalidConfig, err)
	}
	if mode == analyzer.ModeScript && strings.TrimSpace(c.DensityScript) == "" {
		return fmt.Errorf("%w: density_script is required for the script density mode", ErrInvalidConfig)
	}

	if c.DefaultRegionSpan <= 0 {
		return fmt.Errorf("%w: default_region_span must be positive, got %v", ErrInvalidConfig, c.DefaultRegionSpan)
	}
	for region, span := range c.RegionSpans {
		if span <= 0 {
			return fmt.Errorf("%w: region_spans[%s] must be positive, got %v", ErrInvalidConfig, region, span)
		}
	}

	if c.Locale != "" {
		if _, err := language.Parse(c.Locale); err != nil {
			return fmt.Errorf("%w: locale %q: %w", ErrInvalidConfig, c.Locale, err)
		}
	}

	if c.TopN < 0 {
		return fmt.Errorf("%w: top_n must not be negative, got %d", ErrInvalidConfig, c.TopN)
	}

	for i, site := range c.Sites {
		if strings.TrimSpace(site.Name) == "" {
			return fmt.Errorf("%w: sites[%d]: name is required", ErrInvalidConfig, i)
		}
		if site.Lat < -90 || site.Lat > 90 || site.Lon < -180 || site.Lon > 180 {
			return fmt.Errorf("%w: sites[%d] %s: coordinates (%v, %v) out of range", ErrInvalidConfig, i, site.Name, site.Lat, site.Lon)
		}
	}
	return nil
}

// Gazetteer builds the built-in capitals plus the configured Sites.
func (c *Config) Gazetteer() *gazetteer.Gazetteer {
	if len(c.Sites) == 0 {
		return gazetteer.New()
	}
	sites := make([]gazetteer.Site, 0, len(c.Sites))
	for _, s := range c.Sites {
		sites = append(sites, gazetteer.Site{
			Info: model.SiteInfo{
				Name:       strings.TrimSpace(s.Name),
				ModernName: s.ModernName,
				Dynasties:  s.Dynasties,
				Lat:        s.Lat,
				Lon:        s.Lon,
			},
			Aliases: s.Aliases,
		})
	}
	return gazetteer.New(gazetteer.WithSites(sites...))
}

// Normalizer builds the analyzer normalizer configuration. scriptSource is
// the contents of DensityScript, loaded by the caller.
func (c *Config) Normalizer(scriptSource string) (analyzer.NormalizerConfig, error) {
	mode, err := analyzer.ParseMode(c.DensityMode)
	if err != nil {
		return analyzer.NormalizerConfig{}, fmt.Errorf("%w: density_mode: %w", ErrInvalidConfig, err)
	}
	return analyzer.NormalizerConfig{
		Mode:        mode,
		Spans:       c.RegionSpans,
		DefaultSpan: c.DefaultRegionSpan,
		Script:      scriptSource,
	}, nil
}
