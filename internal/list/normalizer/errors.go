package normalizer

import "errors"

// Records rejected by Normalize.
var (
	ErrMissingName      = errors.New("record has no name")
	ErrMissingStartDate = errors.New("record has no start date")
)
