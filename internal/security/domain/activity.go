// Package domain defines the suspicious-activity event model: client-side
// protection signals recorded server-side as an append-only audit trail.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType tags a suspicious-activity event. Each type carries its own
// expected detail schema, validated before persistence so the audit table
// stays queryable.
type ActivityType string

const (
	ActivityScreenshotAttempt       ActivityType = "screenshot_attempt"
	ActivityScreenRecordingDetected ActivityType = "screen_recording_detected"
	ActivityDevToolsDetected        ActivityType = "devtools_detected"
	ActivityFocusLost               ActivityType = "focus_lost"
	ActivityOther                   ActivityType = "other"
)

// KnownActivityType reports whether the type is one of the defined tags.
func KnownActivityType(t ActivityType) bool {
	switch t {
	case ActivityScreenshotAttempt,
		ActivityScreenRecordingDetected,
		ActivityDevToolsDetected,
		ActivityFocusLost,
		ActivityOther:
		return true
	}
	return false
}

// Event is one recorded suspicious-activity report. Events are append-only;
// nothing in the service updates or deletes them.
type Event struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ContentID uuid.UUID
	Type      ActivityType
	// Details is the per-type detail payload, already schema-validated.
	Details map[string]any
	// ClientIP is the remote address the report arrived from.
	ClientIP string
	// Country is the ISO country code resolved from ClientIP, empty when
	// geo enrichment is disabled or the lookup fails.
	Country string
	// OccurredAt is the client-reported timestamp of the activity.
	OccurredAt time.Time
	// RecordedAt is the server-side ingestion timestamp.
	RecordedAt time.Time
}
