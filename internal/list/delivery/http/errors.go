package http

import (
	"errors"
	"net/http"

	"list-timeline/internal/list"
	pkgErrors "list-timeline/pkg/errors"
)

var (
	errListIDRequired = pkgErrors.NewHTTPError(http.StatusBadRequest, "list_id is required")
	errTokenMissing   = pkgErrors.NewHTTPError(http.StatusServiceUnavailable, "slack token is not configured")
)

// mapError translates domain errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, list.ErrEmptyListID):
		return errListIDRequired
	case errors.Is(err, list.ErrMissingToken):
		return errTokenMissing
	default:
		return pkgErrors.ErrInternalServerError
	}
}
