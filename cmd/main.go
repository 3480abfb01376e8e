package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/tianwen/internal/adapters/feed"
	"github.com/okian/tianwen/internal/adapters/repository"
	service "github.com/okian/tianwen/internal/app"
	"github.com/okian/tianwen/internal/config"
	"github.com/okian/tianwen/internal/domain/analyzer"
	"github.com/okian/tianwen/internal/view"
	"github.com/okian/tianwen/pkg/logger"
	"github.com/okian/tianwen/pkg/metrics"
)

func main() {
	// Logs go to stderr; stdout carries the report.
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.Load(ctx)
	if err != nil {
		stop()
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	err = run(ctx, cfg, os.Stdout)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// run loads the dataset, analyzes it and renders the report to out. Load and
// analysis failures are rendered as a localized message and returned.
func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	log := logger.Get()

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	locale, err := view.ParseLocale(cfg.Locale)
	if err != nil {
		return err
	}
	renderer := view.NewRenderer(view.WithLocale(locale), view.WithTopN(cfg.TopN))
	screen := view.NewScreen(view.WithRenderer(renderer), view.WithLogger(log.Named("view")))

	loadErr := screen.Load(ctx, func(ctx context.Context) (service.Report, error) {
		a, err := buildAnalyzer(cfg)
		if err != nil {
			return service.Report{}, err
		}
		ds, err := loadDataset(ctx, cfg)
		if err != nil {
			return service.Report{}, err
		}
		svc := service.New(
			service.WithStore(repository.NewMemoryStore(ds.Records)),
			service.WithSource(ds.Source),
			service.WithAnalyzer(a),
			service.WithLogger(log.Named("service")),
		)
		return svc.Analyze(ctx)
	})
	if loadErr != nil {
		log.Error(ctx, "analysis run failed", logger.Error(loadErr))
	}

	if err := screen.Render(out); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Error(ctx, "failed to write metrics textfile", logger.String("path", cfg.MetricsTextfile), logger.Error(err))
			if loadErr == nil {
				return err
			}
		}
	}
	return loadErr
}

// buildAnalyzer selects the density normalizer from cfg. In script mode the
// Lua source is read from cfg.DensityScript.
func buildAnalyzer(cfg *config.Config) (*analyzer.Analyzer, error) {
	var source string
	if cfg.DensityScript != "" {
		data, err := os.ReadFile(cfg.DensityScript)
		if err != nil {
			return nil, fmt.Errorf("read density script: %w", err)
		}
		source = string(data)
	}

	nc, err := cfg.Normalizer(source)
	if err != nil {
		return nil, err
	}
	n, err := analyzer.NewNormalizer(nc)
	if err != nil {
		return nil, err
	}
	return analyzer.New(analyzer.WithNormalizer(n), analyzer.WithGazetteer(cfg.Gazetteer())), nil
}

// loadDataset reads cfg.DatasetPath, or the bundled dataset when it is empty.
func loadDataset(ctx context.Context, cfg *config.Config) (feed.Dataset, error) {
	if cfg.DatasetPath == "" {
		return feed.Bundled(ctx)
	}
	format, err := feed.ParseFormat(cfg.DatasetFormat)
	if err != nil {
		return feed.Dataset{}, err
	}
	return feed.LoadFile(ctx, cfg.DatasetPath, format)
}
