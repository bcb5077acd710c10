// Package dto provides data transfer objects for security HTTP handlers.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"
)

// LogSuspiciousActivityRequest is one client-side protection report.
type LogSuspiciousActivityRequest struct {
	ContentID    string         `json:"content_id"`
	ActivityType string         `json:"activity_type"`
	Details      map[string]any `json:"details"`
	OccurredAt   time.Time      `json:"occurred_at"`
}

// Validate checks the structural fields. The per-type detail schema is
// enforced by the use case, not here.
func (r *LogSuspiciousActivityRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ContentID,
			validation.Required,
			validation.By(isUUID),
		),
		validation.Field(&r.ActivityType,
			validation.Required,
			validation.In(
				"screenshot_attempt",
				"screen_recording_detected",
				"devtools_detected",
				"focus_lost",
				"other",
			),
		),
	)
}
