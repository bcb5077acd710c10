// Package repository implements entitlement persistence for PostgreSQL and MySQL.
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

// PostgreSQLSubscriptionRepository reads subscription state from PostgreSQL.
// The table is written by the billing system; this service only reads it.
type PostgreSQLSubscriptionRepository struct {
	db *sql.DB
}

// GetStatus retrieves the subscription status for a user. Returns an error
// wrapping ErrNotFound when the user has no subscription record.
func (p *PostgreSQLSubscriptionRepository) GetStatus(ctx context.Context, userID uuid.UUID) (identity.SubscriptionStatus, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT status FROM subscriptions WHERE user_id = $1`

	var status identity.SubscriptionStatus

	err := querier.QueryRowContext(ctx, query, userID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.Wrap(apperrors.ErrNotFound, "subscription not found")
		}
		return "", apperrors.Wrap(err, "failed to get subscription status")
	}

	return status, nil
}

// NewPostgreSQLSubscriptionRepository creates a new PostgreSQL subscription repository.
func NewPostgreSQLSubscriptionRepository(db *sql.DB) *PostgreSQLSubscriptionRepository {
	return &PostgreSQLSubscriptionRepository{db: db}
}
