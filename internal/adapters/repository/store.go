// Package repository holds the read-only catalog of celestial records.
package repository

import (
	"context"

	"github.com/okian/tianwen/internal/domain/model"
)

// Store provides read access to the loaded dataset.
type Store interface {
	// All returns every record in load order. The slice is a copy.
	All(ctx context.Context) []model.CelestialRecord

	// Get returns the record with the given ID.
	// Returns ErrNotFound if the ID is unknown.
	Get(ctx context.Context, id string) (model.CelestialRecord, error)

	// Count returns the number of records in the catalog.
	Count(ctx context.Context) int

	// ByType returns the records of type t in load order.
	ByType(ctx context.Context, t model.RecordType) []model.CelestialRecord
}
