package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/tianwen/internal/config"
	"github.com/okian/tianwen/internal/domain/analyzer"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.DensityMode, convey.ShouldEqual, "count")
				convey.So(cfg.Locale, convey.ShouldEqual, "zh-Hans")
				convey.So(cfg.TopN, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("TIANWEN_LOG_LEVEL", "debug")
			_ = os.Setenv("TIANWEN_DATASET_PATH", "/data/records.json")
			_ = os.Setenv("TIANWEN_DENSITY_MODE", "relative")
			_ = os.Setenv("TIANWEN_LOCALE", "en")
			_ = os.Setenv("TIANWEN_TOP_N", "5")
			_ = os.Setenv("TIANWEN_METRICS_TEXTFILE", "/tmp/tianwen.prom")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "/data/records.json")
				convey.So(cfg.DensityMode, convey.ShouldEqual, "relative")
				convey.So(cfg.Locale, convey.ShouldEqual, "en")
				convey.So(cfg.TopN, convey.ShouldEqual, 5)
				convey.So(cfg.MetricsTextfile, convey.ShouldEqual, "/tmp/tianwen.prom")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := createTempConfigFile(t, `
# regional weights for the span mode
density_mode: span
default_region_span: 2.5
region_spans:
  关中: 10
  中原: 8
top_n: 3
`)
			_ = os.Setenv("TIANWEN_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DensityMode, convey.ShouldEqual, "span")
				convey.So(cfg.DefaultRegionSpan, convey.ShouldEqual, 2.5)
				convey.So(cfg.RegionSpans["关中"], convey.ShouldEqual, 10.0)
				convey.So(cfg.RegionSpans["中原"], convey.ShouldEqual, 8.0)
				convey.So(cfg.TopN, convey.ShouldEqual, 3)
				convey.So(cfg.Locale, convey.ShouldEqual, "zh-Hans")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			path := createTempConfigFile(t, "top_n: 3\nlocale: en\n")
			_ = os.Setenv("TIANWEN_CONFIG", path)
			_ = os.Setenv("TIANWEN_TOP_N", "7")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TopN, convey.ShouldEqual, 7)
				convey.So(cfg.Locale, convey.ShouldEqual, "en")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			path := createTempConfigFile(t, "top_n: [unclosed\n")
			_ = os.Setenv("TIANWEN_CONFIG", path)

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("TIANWEN_CONFIG", "/non/existent/tianwen.yaml")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("TIANWEN_TOP_N", "many")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the YAML file declares extra sites", func() {
			path := createTempConfigFile(t, `sites:
  - name: 敦煌
    modern_name: 敦煌
    aliases: [沙州]
    dynasties: [唐]
    lat: 40.14
    lon: 94.66
`)
			_ = os.Setenv("TIANWEN_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then the sites should be loaded and recognized by the gazetteer", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(cfg.Sites), convey.ShouldEqual, 1)
				convey.So(cfg.Sites[0].Aliases, convey.ShouldResemble, []string{"沙州"})

				info, ok := cfg.Gazetteer().Lookup("沙州")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(info.Name, convey.ShouldEqual, "敦煌")
				convey.So(info.Lat, convey.ShouldAlmostEqual, 40.14, 1e-9)

				_, ok = cfg.Gazetteer().Lookup("长安")
				convey.So(ok, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the density mode is unknown", func() {
			_ = os.Setenv("TIANWEN_DENSITY_MODE", "volume")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(errors.Is(err, analyzer.ErrUnknownNormalizer), convey.ShouldBeTrue)
			})
		})
	})
}

func TestConfigValidate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New(context.Background())

		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"unknown log level", func(c *config.Config) { c.LogLevel = "verbose" }},
			{"unknown dataset format", func(c *config.Config) { c.DatasetFormat = "csv" }},
			{"script mode without script", func(c *config.Config) { c.DensityMode = "script" }},
			{"zero default span", func(c *config.Config) { c.DefaultRegionSpan = 0 }},
			{"negative region span", func(c *config.Config) { c.RegionSpans = map[string]float64{"关中": -1} }},
			{"malformed locale", func(c *config.Config) { c.Locale = "not a locale!" }},
			{"negative top_n", func(c *config.Config) { c.TopN = -1 }},
			{"unnamed site", func(c *config.Config) { c.Sites = []config.Site{{Name: " ", Lat: 1, Lon: 1}} }},
			{"site latitude out of range", func(c *config.Config) { c.Sites = []config.Site{{Name: "敦煌", Lat: 140, Lon: 94}} }},
		}

		for _, tc := range cases {
			convey.Convey("When the config has "+tc.name, func() {
				tc.mutate(cfg)

				convey.Convey("Then Validate should fail with ErrInvalidConfig", func() {
					convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}

		convey.Convey("When script mode has a script path", func() {
			cfg.DensityMode = "script"
			cfg.DensityScript = "density.lua"

			convey.Convey("Then Validate should pass", func() {
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When no sites are configured", func() {
			convey.Convey("Then the gazetteer should hold only the built-in capitals", func() {
				_, ok := cfg.Gazetteer().Lookup("敦煌")
				convey.So(ok, convey.ShouldBeFalse)
				_, ok = cfg.Gazetteer().Lookup("洛阳")
				convey.So(ok, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When top_n is zero", func() {
			cfg.TopN = 0

			convey.Convey("Then all rows are requested and Validate should pass", func() {
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	envVars := []string{
		"TIANWEN_CONFIG",
		"TIANWEN_LOG_LEVEL",
		"TIANWEN_DATASET_PATH",
		"TIANWEN_DATASET_FORMAT",
		"TIANWEN_DENSITY_MODE",
		"TIANWEN_DENSITY_SCRIPT",
		"TIANWEN_DEFAULT_REGION_SPAN",
		"TIANWEN_LOCALE",
		"TIANWEN_TOP_N",
		"TIANWEN_METRICS_TEXTFILE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "tianwen-config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatal(err)
	}
	if err := tmpFile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpFile.Name()
}
