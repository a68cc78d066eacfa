package service

import (
	"errors"

	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/domain"
)

// isNotFound reports whether err wraps domain.ErrNotFound. Services use it
// to translate a missing attendee row into domain.ErrAccessDenied without
// leaking the repo-level sentinel.
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
