package feed

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/okian/tianwen/internal/domain/dedupe"
	"github.com/okian/tianwen/internal/domain/model"
	"github.com/okian/tianwen/pkg/logger"
	"github.com/okian/tianwen/pkg/metrics"
)

// BundledSource names the embedded dataset in logs and reports.
const BundledSource = "bundled"

//go:embed dataset/records.yaml
var bundled []byte

// Dataset is a decoded, deduplicated set of records.
type Dataset struct {
	Source  string
	Records []model.CelestialRecord
	// Dropped counts records skipped because their ID was already seen.
	Dropped int
}

// Bundled decodes the embedded default dataset.
func Bundled(ctx context.Context) (Dataset, error) {
	return Load(ctx, bundled, FormatYAML, BundledSource)
}

// LoadFile reads and decodes path. An empty format is detected from the extension.
func LoadFile(ctx context.Context, path string, format Format) (Dataset, error) {
	if format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return Dataset{}, err
		}
		format = f
	}

	data, err := os.ReadFile(path)
	if err != nil {
		metrics.RecordErrorByComponent("feed", "read")
		return Dataset{}, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return Load(ctx, data, format, path)
}

// Load decodes data and drops records whose ID repeats an earlier one.
// Records without an ID are always kept.
func Load(ctx context.Context, data []byte, format Format, source string) (Dataset, error) {
	records, err := Decode(data, format)
	if err != nil {
		metrics.RecordErrorByComponent("feed", "decode")
		return Dataset{}, fmt.Errorf("load %s: %w", source, err)
	}

	seen := dedupe.NewInMemoryDeduper()
	kept := records[:0]
	dropped := 0
	for _, r := range records {
		if seen.SeenAndRecord(ctx, r.ID) {
			dropped++
			if l := logger.Safe(); l != nil {
				l.Debug(ctx, "dropping duplicate record", logger.String("id", r.ID), logger.String("dataset", source))
			}
			continue
		}
		kept = append(kept, r)
	}

	metrics.RecordDuplicatesDropped(dropped)
	if l := logger.Safe(); l != nil {
		l.Info(ctx, "dataset loaded",
			logger.String("dataset", source),
			logger.Int("records", len(kept)),
			logger.Int("dropped", dropped))
	}

	return Dataset{Source: source, Records: kept, Dropped: dropped}, nil
}
