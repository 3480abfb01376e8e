package view

import "errors"

// Sentinel kinds for view errors.
var (
	ErrIllegalTransition = errors.New("illegal view state transition")
	ErrNoLoader          = errors.New("no load function")
	ErrUnsupportedLocale = errors.New("unsupported locale")
)
