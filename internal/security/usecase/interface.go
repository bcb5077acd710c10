// Package usecase implements suspicious-activity ingestion: schema
// validation, optional geo enrichment, and append-only persistence.
package usecase

import (
	"context"
	"net"
	"time"

	"github.com/google/uuid"

	securityDomain "github.com/prepdeck/contentguard/internal/security/domain"
)

// ReportInput is one incoming suspicious-activity report.
type ReportInput struct {
	UserID     uuid.UUID
	ContentID  uuid.UUID
	Type       securityDomain.ActivityType
	Details    map[string]any
	ClientIP   string
	OccurredAt time.Time
}

// SecurityUseCase records and lists suspicious-activity events.
type SecurityUseCase interface {
	// Record validates and persists a report. Validation failures are the
	// only client-visible errors; enrichment failures are swallowed.
	Record(ctx context.Context, input *ReportInput) (*securityDomain.Event, error)

	// List returns recorded events, newest first.
	List(ctx context.Context, offset, limit int) ([]*securityDomain.Event, error)
}

// EventRepository persists suspicious-activity events append-only.
type EventRepository interface {
	Create(ctx context.Context, event *securityDomain.Event) error
	List(ctx context.Context, offset, limit int) ([]*securityDomain.Event, error)
}

// GeoResolver resolves an IP address to an ISO country code. Optional;
// a nil resolver disables enrichment.
type GeoResolver interface {
	Country(ip net.IP) (string, error)
	Close() error
}
