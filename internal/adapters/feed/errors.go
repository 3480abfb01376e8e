package feed

import "errors"

// Sentinel kinds for feed errors.
var (
	ErrDecode            = errors.New("dataset decode failed")
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrRead              = errors.New("dataset read failed")
)
