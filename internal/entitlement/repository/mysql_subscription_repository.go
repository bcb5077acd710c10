package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/prepdeck/contentguard/internal/database"
	apperrors "github.com/prepdeck/contentguard/internal/errors"
	"github.com/prepdeck/contentguard/internal/identity"
)

// MySQLSubscriptionRepository reads subscription state from MySQL.
// UUIDs are stored as CHAR(36) strings.
type MySQLSubscriptionRepository struct {
	db *sql.DB
}

// GetStatus retrieves the subscription status for a user. Returns an error
// wrapping ErrNotFound when the user has no subscription record.
func (m *MySQLSubscriptionRepository) GetStatus(ctx context.Context, userID uuid.UUID) (identity.SubscriptionStatus, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT status FROM subscriptions WHERE user_id = ?`

	var status identity.SubscriptionStatus

	err := querier.QueryRowContext(ctx, query, userID.String()).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.Wrap(apperrors.ErrNotFound, "subscription not found")
		}
		return "", apperrors.Wrap(err, "failed to get subscription status")
	}

	return status, nil
}

// NewMySQLSubscriptionRepository creates a new MySQL subscription repository.
func NewMySQLSubscriptionRepository(db *sql.DB) *MySQLSubscriptionRepository {
	return &MySQLSubscriptionRepository{db: db}
}
