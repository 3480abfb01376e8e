// Package dedupe tracks record identifiers already admitted to a dataset.
package dedupe

import (
	"context"
	"strings"
)

// Deduper records seen IDs so each record is admitted at most once.
// Implementations are not safe for concurrent use.
type Deduper interface {
	// SeenAndRecord reports whether id was seen before and records it if not.
	// Blank IDs are never reported as seen and are not recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	Size() int64
}

// inMemoryDeduper keeps trimmed IDs in a set.
type inMemoryDeduper struct {
	seen map[string]struct{}
}

// NewInMemoryDeduper creates an empty, unbounded deduper.
func NewInMemoryDeduper() Deduper {
	return &inMemoryDeduper{seen: make(map[string]struct{})}
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	if _, ok := d.seen[id]; ok {
		return true
	}
	d.seen[id] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Size() int64 {
	return int64(len(d.seen))
}
