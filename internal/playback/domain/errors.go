package domain

import (
	"github.com/prepdeck/contentguard/internal/errors"
)

var (
	// ErrTokenInvalid covers expired, unknown, and content-mismatched
	// playback tokens alike: no partial credit, and the cause is not
	// disclosed. Clients silently re-request a fresh token once before
	// surfacing an error.
	ErrTokenInvalid = errors.Wrap(errors.ErrUnauthorized, "playback token invalid")

	// ErrTokenNotFound is the store-level miss, folded into ErrTokenInvalid
	// by the use case.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "playback token not found")
)
