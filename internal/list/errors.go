package list

import "errors"

// Domain-specific errors for the list package.
var (
	ErrEmptyListID  = errors.New("list id is empty")
	ErrMissingToken = errors.New("slack token is not configured")
	ErrNoRecords    = errors.New("list has no records")
)
