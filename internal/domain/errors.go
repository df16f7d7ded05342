package domain

import "errors"

// Validation errors raised before any storage I/O. Storage failures are
// never wrapped in these; they propagate from the repository unchanged.
var (
	ErrInvalidArgument = errors.New("invalid argument")
)
