package usecase

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"

	securityDomain "github.com/prepdeck/contentguard/internal/security/domain"
)

// securityUseCase implements SecurityUseCase.
type securityUseCase struct {
	events EventRepository
	geo    GeoResolver
	logger *slog.Logger
}

// Record validates the report against its type schema, enriches it with a
// country code when a resolver is configured, and appends it to the audit
// table. Geo failures never block the write.
func (s *securityUseCase) Record(ctx context.Context, input *ReportInput) (*securityDomain.Event, error) {
	if err := securityDomain.ValidateDetails(input.Type, input.Details); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	occurredAt := input.OccurredAt
	if occurredAt.IsZero() || occurredAt.After(now) {
		// Client clocks drift; a missing or future timestamp falls back to
		// server time.
		occurredAt = now
	}

	event := &securityDomain.Event{
		ID:         uuid.Must(uuid.NewV7()),
		UserID:     input.UserID,
		ContentID:  input.ContentID,
		Type:       input.Type,
		Details:    input.Details,
		ClientIP:   input.ClientIP,
		OccurredAt: occurredAt,
		RecordedAt: now,
	}

	if s.geo != nil && input.ClientIP != "" {
		if ip := net.ParseIP(input.ClientIP); ip != nil {
			country, err := s.geo.Country(ip)
			if err != nil {
				s.logger.Debug("geo enrichment failed",
					slog.String("client_ip", input.ClientIP),
					slog.Any("error", err),
				)
			} else {
				event.Country = country
			}
		}
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info("suspicious activity recorded",
		slog.String("event_id", event.ID.String()),
		slog.String("user_id", event.UserID.String()),
		slog.String("content_id", event.ContentID.String()),
		slog.String("activity_type", string(event.Type)),
	)

	return event, nil
}

// List returns recorded events, newest first.
func (s *securityUseCase) List(ctx context.Context, offset, limit int) ([]*securityDomain.Event, error) {
	return s.events.List(ctx, offset, limit)
}

// NewSecurityUseCase creates a new SecurityUseCase. The geo resolver may be
// nil to disable enrichment.
func NewSecurityUseCase(events EventRepository, geo GeoResolver, logger *slog.Logger) SecurityUseCase {
	return &securityUseCase{
		events: events,
		geo:    geo,
		logger: logger,
	}
}
