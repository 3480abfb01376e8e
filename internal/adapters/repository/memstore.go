package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/tianwen/internal/domain/model"
	"github.com/okian/tianwen/pkg/metrics"
)

// MemoryStore is an immutable, in-memory Store built once from a dataset.
//
// Records without an ID are kept and listed but cannot be fetched with Get.
// When IDs collide the first record wins the index slot.
type MemoryStore struct {
	records []model.CelestialRecord
	byID    map[string]int
	byType  map[model.RecordType][]int
	metrics *metrics.Manager
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore indexes records. The input slice is copied.
func NewMemoryStore(records []model.CelestialRecord, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		records: make([]model.CelestialRecord, len(records)),
		byID:    make(map[string]int, len(records)),
		byType:  make(map[model.RecordType][]int),
		metrics: metrics.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	copy(s.records, records)
	for i, r := range s.records {
		if id := strings.TrimSpace(r.ID); id != "" {
			if _, exists := s.byID[id]; !exists {
				s.byID[id] = i
			}
		}
		t := r.TypeKey()
		s.byType[t] = append(s.byType[t], i)
	}

	s.metrics.UpdateCatalogRecords(len(s.records))
	return s
}

func (s *MemoryStore) All(_ context.Context) []model.CelestialRecord {
	out := make([]model.CelestialRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *MemoryStore) Get(_ context.Context, id string) (model.CelestialRecord, error) {
	i, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		s.metrics.RecordErrorByComponent("repository", "not_found")
		return model.CelestialRecord{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return s.records[i], nil
}

func (s *MemoryStore) Count(_ context.Context) int {
	return len(s.records)
}

// ByType matches on the trimmed type; records with a blank type are listed under model.Unknown.
func (s *MemoryStore) ByType(_ context.Context, t model.RecordType) []model.CelestialRecord {
	idx := s.byType[model.RecordType(model.KeyOrUnknown(string(t)))]
	out := make([]model.CelestialRecord, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.records[i])
	}
	return out
}
