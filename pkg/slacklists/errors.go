package slacklists

import (
	"errors"
	"fmt"
)

var (
	ErrMissingToken     = errors.New("slack user token is not configured")
	ErrDownloadPending  = errors.New("list export job not completed")
	ErrNoDownloadURL    = errors.New("list export job returned no download url")
	ErrTooManyItemPages = errors.New("list items pagination did not terminate")
)

// APIError is returned when Slack answers with ok=false.
type APIError struct {
	Method string
	Code   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("slack API %s error: %s", e.Method, e.Code)
}
