package validation

import (
	"errors"
	"strings"
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/prepdeck/contentguard/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	t.Run("Success_NilPassesThrough", func(t *testing.T) {
		assert.NoError(t, WrapValidationError(nil))
	})

	t.Run("Success_WrapsAsInvalidInput", func(t *testing.T) {
		err := WrapValidationError(errors.New("field is required"))
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Contains(t, err.Error(), "field is required")
	})
}

func TestDeviceFingerprint(t *testing.T) {
	validate := func(s string) error {
		return validation.Validate(s, DeviceFingerprint)
	}

	t.Run("Success_ValidFingerprints", func(t *testing.T) {
		assert.NoError(t, validate("fp_1234-abcd.XYZ"))
		assert.NoError(t, validate("browser:chrome:121"))
		assert.NoError(t, validate(""))
	})

	t.Run("Error_InvalidCharset", func(t *testing.T) {
		assert.Error(t, validate("fp with spaces"))
		assert.Error(t, validate("fp;drop"))
	})

	t.Run("Error_TooLong", func(t *testing.T) {
		assert.Error(t, validate(strings.Repeat("a", 257)))
	})
}
