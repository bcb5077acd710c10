package dto

import (
	"time"

	validation "github.com/jellydator/validation"
	"github.com/google/uuid"

	securityDomain "github.com/prepdeck/contentguard/internal/security/domain"
)

// isUUID validates that a string parses as a UUID.
func isUUID(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if _, err := uuid.Parse(s); err != nil {
		return validation.NewError("validation_uuid", "must be a valid UUID")
	}
	return nil
}

// EventResponse represents a recorded suspicious-activity event.
type EventResponse struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	ContentID    string         `json:"content_id"`
	ActivityType string         `json:"activity_type"`
	Details      map[string]any `json:"details,omitempty"`
	Country      string         `json:"country,omitempty"`
	OccurredAt   time.Time      `json:"occurred_at"`
	RecordedAt   time.Time      `json:"recorded_at"`
}

// ListEventsResponse wraps a page of events.
type ListEventsResponse struct {
	Events []EventResponse `json:"events"`
	Offset int             `json:"offset"`
	Limit  int             `json:"limit"`
}

// MapEventToResponse converts a domain event to an API response.
func MapEventToResponse(event *securityDomain.Event) EventResponse {
	return EventResponse{
		ID:           event.ID.String(),
		UserID:       event.UserID.String(),
		ContentID:    event.ContentID.String(),
		ActivityType: string(event.Type),
		Details:      event.Details,
		Country:      event.Country,
		OccurredAt:   event.OccurredAt,
		RecordedAt:   event.RecordedAt,
	}
}

// MapEventsToListResponse converts a page of domain events to an API response.
func MapEventsToListResponse(events []*securityDomain.Event, offset, limit int) ListEventsResponse {
	responses := make([]EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, MapEventToResponse(event))
	}
	return ListEventsResponse{
		Events: responses,
		Offset: offset,
		Limit:  limit,
	}
}
