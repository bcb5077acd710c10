package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/prepdeck/contentguard/internal/database"
	apperrors "github.com/prepdeck/contentguard/internal/errors"
	securityDomain "github.com/prepdeck/contentguard/internal/security/domain"
)

// MySQLEventRepository implements suspicious-activity event persistence for
// MySQL. UUIDs are stored as CHAR(36) strings.
type MySQLEventRepository struct {
	db *sql.DB
}

// Create inserts a new event. Handles nil details as database NULL.
func (m *MySQLEventRepository) Create(ctx context.Context, event *securityDomain.Event) error {
	querier := database.GetTx(ctx, m.db)

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
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		event.ID.String(),
		event.UserID.String(),
		event.ContentID.String(),
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
func (m *MySQLEventRepository) List(ctx context.Context, offset, limit int) ([]*securityDomain.Event, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, content_id, activity_type, details, client_ip,
			  country, occurred_at, recorded_at
			  FROM suspicious_activity_events
			  ORDER BY id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list suspicious activity events")
	}
	defer rows.Close()

	events := []*securityDomain.Event{}
	for rows.Next() {
		var event securityDomain.Event
		var id, userID, contentID string
		var detailsJSON []byte

		err := rows.Scan(
			&id,
			&userID,
			&contentID,
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

		if event.ID, err = uuid.Parse(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse event id")
		}
		if event.UserID, err = uuid.Parse(userID); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse event user id")
		}
		if event.ContentID, err = uuid.Parse(contentID); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse event content id")
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

// NewMySQLEventRepository creates a new MySQL event repository.
func NewMySQLEventRepository(db *sql.DB) *MySQLEventRepository {
	return &MySQLEventRepository{db: db}
}
