// Package repository implements suspicious-activity persistence for
// PostgreSQL and MySQL. The table is append-only: Create and List only.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/prepdeck/contentguard/internal/database"
	apperrors "github.com/prepdeck/contentguard/internal/errors"
	securityDomain "github.com/prepdeck/contentguard/internal/security/domain"
)

// PostgreSQLEventRepository implements suspicious-activity event persistence
// for PostgreSQL. Uses native UUID types with transaction support via
// database.GetTx().
type PostgreSQLEventRepository struct {
	db *sql.DB
}

// Create inserts a new event. Handles nil details as database NULL.
func (p *PostgreSQLEventRepository) Create(ctx context.Context, event *securityDomain.Event) error {
	querier := database.GetTx(ctx, p.db)

	var detailsJSON []byte
	var err error

	if event.Details != nil {
		detailsJSON, err = json.Marshal(event.Details)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal event details")
		}
	}

	query := `INSERT INTO suspicious_activity_events
			  (id, user_id, content_id, activity_type, details, client_ip,
			   country, occurred_at, recorded_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = querier.ExecContext(
		ctx,
		query,
		event.ID,
		event.UserID,
		event.ContentID,
		string(event.Type),
		detailsJSON,
		event.ClientIP,
		event.Country,
		event.OccurredAt,
		event.RecordedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create suspicious activity event")
	}

	return nil
}

// List retrieves events ordered by ID descending (newest first) with
// pagination. Returns an empty slice when no events match.
func (p *PostgreSQLEventRepository) List(ctx context.Context, offset, limit int) ([]*securityDomain.Event, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, content_id, activity_type, details, client_ip,
			  country, occurred_at, recorded_at
			  FROM suspicious_activity_events
			  ORDER BY id DESC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list suspicious activity events")
	}
	defer rows.Close()

	events := []*securityDomain.Event{}
	for rows.Next() {
		var event securityDomain.Event
		var detailsJSON []byte

		err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.ContentID,
			&event.Type,
			&detailsJSON,
			&event.ClientIP,
			&event.Country,
			&event.OccurredAt,
			&event.RecordedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan suspicious activity event")
		}

		if len(detailsJSON) > 0 {
			if err := json.Unmarshal(detailsJSON, &event.Details); err != nil {
				return nil, apperrors.Wrap(err, "failed to unmarshal event details")
			}
		}

		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate suspicious activity events")
	}

	return events, nil
}

// NewPostgreSQLEventRepository creates a new PostgreSQL event repository.
func NewPostgreSQLEventRepository(db *sql.DB) *PostgreSQLEventRepository {
	return &PostgreSQLEventRepository{db: db}
}
