package app

import "errors"

var (
	// ErrEventNotFound indicates the target event is neither persisted nor
	// derivable as a virtual instance of a persisted series.
	ErrEventNotFound = errors.New("event not found")
)
