package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/prepdeck/contentguard/internal/errors"
)

func TestKnownActivityType(t *testing.T) {
	assert.True(t, KnownActivityType(ActivityScreenshotAttempt))
	assert.True(t, KnownActivityType(ActivityOther))
	assert.False(t, KnownActivityType(ActivityType("keylogger")))
}

func TestValidateDetails(t *testing.T) {
	t.Run("Success_ScreenshotAttempt", func(t *testing.T) {
		err := ValidateDetails(ActivityScreenshotAttempt, map[string]any{"method": "keyboard"})
		assert.NoError(t, err)
	})

	t.Run("Success_DevToolsWithFloatDelta", func(t *testing.T) {
		err := ValidateDetails(ActivityDevToolsDetected, map[string]any{"delta_px": 240.0})
		assert.NoError(t, err)
	})

	t.Run("Success_FocusLost", func(t *testing.T) {
		err := ValidateDetails(ActivityFocusLost, map[string]any{"duration_ms": 1500.0})
		assert.NoError(t, err)
	})

	t.Run("Error_UnknownType", func(t *testing.T) {
		err := ValidateDetails(ActivityType("keylogger"), nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_MissingRequiredDetail", func(t *testing.T) {
		err := ValidateDetails(ActivityScreenshotAttempt, map[string]any{})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_WrongDetailType", func(t *testing.T) {
		err := ValidateDetails(ActivityDevToolsDetected, map[string]any{"delta_px": "big"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_UnexpectedDetailKey", func(t *testing.T) {
		err := ValidateDetails(ActivityFocusLost, map[string]any{
			"duration_ms": 100.0,
			"extra":       "payload",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}
