package domain

import (
	"fmt"

	apperrors "github.com/prepdeck/contentguard/internal/errors"
)

// ValidateDetails checks the detail payload against the fixed schema for the
// event type. Unknown keys are rejected so the audit table never accumulates
// free-form client data under a typed tag; the "other" type is the escape
// hatch for anything unanticipated.
func ValidateDetails(activityType ActivityType, details map[string]any) error {
	if !KnownActivityType(activityType) {
		return apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("unknown activity type %q", activityType))
	}

	var required map[string]string
	switch activityType {
	case ActivityScreenshotAttempt:
		required = map[string]string{"method": "string"}
	case ActivityScreenRecordingDetected:
		required = map[string]string{"api": "string"}
	case ActivityDevToolsDetected:
		required = map[string]string{"delta_px": "number"}
	case ActivityFocusLost:
		required = map[string]string{"duration_ms": "number"}
	case ActivityOther:
		required = map[string]string{"description": "string"}
	}

	for key, kind := range required {
		value, ok := details[key]
		if !ok {
			return apperrors.Wrap(
				apperrors.ErrInvalidInput,
				fmt.Sprintf("missing detail %q for activity type %q", key, activityType),
			)
		}
		if !matchesKind(value, kind) {
			return apperrors.Wrap(
				apperrors.ErrInvalidInput,
				fmt.Sprintf("detail %q must be a %s", key, kind),
			)
		}
	}

	for key := range details {
		if _, ok := required[key]; !ok {
			return apperrors.Wrap(
				apperrors.ErrInvalidInput,
				fmt.Sprintf("unexpected detail %q for activity type %q", key, activityType),
			)
		}
	}

	return nil
}

// matchesKind checks a decoded JSON value against a schema kind. JSON
// numbers decode as float64.
func matchesKind(value any, kind string) bool {
	switch kind {
	case "string":
		_, ok := value.(string)
		return ok
	case "number":
		switch value.(type) {
		case float64, int, int64:
			return true
		}
		return false
	}
	return false
}
