package db

import "errors"

// Domain-level database error sentinels.
var (
	// ErrInvalidMatchType is returned when a lookup is recorded with an
	// unknown match type.
	ErrInvalidMatchType = errors.New("invalid match type")
)
