package core

import "errors"

// Misuse errors. They signal a broken caller contract and are not meant to be
// retried.
var (
	ErrInvalidName     = errors.New("invalid identifier")
	ErrInvalidType     = errors.New("invalid column type")
	ErrReservedVariant = errors.New("reserved variant name")
	ErrFallbackColumn  = errors.New("fallback column cannot be rendered")
)
