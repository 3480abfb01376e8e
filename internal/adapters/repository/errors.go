package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound = errors.New("record not found")
)
