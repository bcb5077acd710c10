package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/prepdeck/contentguard/internal/database"
	apperrors "github.com/prepdeck/contentguard/internal/errors"
)

// MySQLDeviceSessionRepository tracks per-device playback activity in MySQL.
// UUIDs are stored as CHAR(36) strings.
type MySQLDeviceSessionRepository struct {
	db *sql.DB
}

// Touch records activity for a (user, device) pair, creating the session row
// on first sight.
func (m *MySQLDeviceSessionRepository) Touch(ctx context.Context, userID uuid.UUID, fingerprint string, seenAt time.Time) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO device_sessions (user_id, device_fingerprint, last_seen_at)
			  VALUES (?, ?, ?)
			  ON DUPLICATE KEY UPDATE last_seen_at = ?`

	_, err := querier.ExecContext(ctx, query, userID.String(), fingerprint, seenAt, seenAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to touch device session")
	}
	return nil
}

// CountActive counts distinct devices the user has been seen on since the
// given instant.
func (m *MySQLDeviceSessionRepository) CountActive(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM device_sessions
			  WHERE user_id = ? AND last_seen_at >= ?`

	var count int

	err := querier.QueryRowContext(ctx, query, userID.String(), since).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count active device sessions")
	}

	return count, nil
}

// DeleteStale removes device sessions not seen since the given instant.
func (m *MySQLDeviceSessionRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM device_sessions WHERE last_seen_at < ?`

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

// NewMySQLDeviceSessionRepository creates a new MySQL device session repository.
func NewMySQLDeviceSessionRepository(db *sql.DB) *MySQLDeviceSessionRepository {
	return &MySQLDeviceSessionRepository{db: db}
}
