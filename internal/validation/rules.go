// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"

	validation "github.com/jellydator/validation"

	apperrors "github.com/prepdeck/contentguard/internal/errors"
)

var (
	// fingerprintRegex limits device fingerprints to a conservative charset.
	// Fingerprints are client-supplied and end up in logs and SQL parameters.
	fingerprintRegex = regexp.MustCompile(`^[a-zA-Z0-9._:\-]+$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// DeviceFingerprint validates that a string is a plausible device fingerprint.
var DeviceFingerprint = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_fingerprint_type", "must be a string")
	}
	if s == "" {
		return nil // fingerprints are optional
	}
	if len(s) > 256 {
		return validation.NewError("validation_fingerprint_length", "must be at most 256 characters")
	}
	if !fingerprintRegex.MatchString(s) {
		return validation.NewError(
			"validation_fingerprint_charset",
			"must contain only letters, digits, dots, underscores, colons and dashes",
		)
	}
	return nil
})
