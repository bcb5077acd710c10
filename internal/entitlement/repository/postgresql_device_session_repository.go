package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/prepdeck/contentguard/internal/database"
	apperrors "github.com/prepdeck/contentguard/internal/errors"
)

// PostgreSQLDeviceSessionRepository tracks per-device playback activity in
// PostgreSQL. Rows are upserted on every playback request and counted against
// the concurrent-device limit.
type PostgreSQLDeviceSessionRepository struct {
	db *sql.DB
}

// Touch records activity for a (user, device) pair, creating the session row
// on first sight.
func (p *PostgreSQLDeviceSessionRepository) Touch(ctx context.Context, userID uuid.UUID, fingerprint string, seenAt time.Time) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO device_sessions (user_id, device_fingerprint, last_seen_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (user_id, device_fingerprint)
			  DO UPDATE SET last_seen_at = EXCLUDED.last_seen_at`

	_, err := querier.ExecContext(ctx, query, userID, fingerprint, seenAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to touch device session")
	}
	return nil
}

// CountActive counts distinct devices the user has been seen on since the
// given instant.
func (p *PostgreSQLDeviceSessionRepository) CountActive(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM device_sessions
			  WHERE user_id = $1 AND last_seen_at >= $2`

	var count int

	err := querier.QueryRowContext(ctx, query, userID, since).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count active device sessions")
	}

	return count, nil
}

// DeleteStale removes device sessions not seen since the given instant.
func (p *PostgreSQLDeviceSessionRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM device_sessions WHERE last_seen_at < $1`

	result, err := querier.ExecContext(ctx, query, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete stale device sessions")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read affected rows")
	}

	return rows, nil
}

// NewPostgreSQLDeviceSessionRepository creates a new PostgreSQL device session repository.
func NewPostgreSQLDeviceSessionRepository(db *sql.DB) *PostgreSQLDeviceSessionRepository {
	return &PostgreSQLDeviceSessionRepository{db: db}
}
