package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/prepdeck/contentguard/internal/errors"
	"github.com/prepdeck/contentguard/internal/identity"
)

func TestPostgreSQLSubscriptionRepository_GetStatus(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	t.Run("Success_ActiveSubscription", func(t *testing.T) {
		db, dbmock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dbmock.ExpectQuery(`SELECT status FROM subscriptions WHERE user_id = \$1`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("ACTIVE"))

		repo := NewPostgreSQLSubscriptionRepository(db)
		status, err := repo.GetStatus(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, identity.SubscriptionActive, status)
		assert.NoError(t, dbmock.ExpectationsWereMet())
	})

	t.Run("Error_NoSubscriptionRecord", func(t *testing.T) {
		db, dbmock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dbmock.ExpectQuery(`SELECT status FROM subscriptions WHERE user_id = \$1`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}))

		repo := NewPostgreSQLSubscriptionRepository(db)
		_, err = repo.GetStatus(ctx, userID)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLDeviceSessionRepository(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	t.Run("Success_TouchUpsertsSession", func(t *testing.T) {
		db, dbmock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dbmock.ExpectExec(`INSERT INTO device_sessions`).
			WithArgs(userID, "device-abc", now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLDeviceSessionRepository(db)
		err = repo.Touch(ctx, userID, "device-abc", now)

		require.NoError(t, err)
		assert.NoError(t, dbmock.ExpectationsWereMet())
	})

	t.Run("Success_CountActive", func(t *testing.T) {
		db, dbmock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		since := now.Add(-30 * time.Minute)
		dbmock.ExpectQuery(`SELECT COUNT\(\*\) FROM device_sessions`).
			WithArgs(userID, since).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		repo := NewPostgreSQLDeviceSessionRepository(db)
		count, err := repo.CountActive(ctx, userID, since)

		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("Success_DeleteStale", func(t *testing.T) {
		db, dbmock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		before := now.Add(-24 * time.Hour)
		dbmock.ExpectExec(`DELETE FROM device_sessions WHERE last_seen_at < \$1`).
			WithArgs(before).
			WillReturnResult(sqlmock.NewResult(0, 5))

		repo := NewPostgreSQLDeviceSessionRepository(db)
		deleted, err := repo.DeleteStale(ctx, before)

		require.NoError(t, err)
		assert.Equal(t, int64(5), deleted)
	})

	t.Run("Error_TouchFailure", func(t *testing.T) {
		db, dbmock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dbmock.ExpectExec(`INSERT INTO device_sessions`).
			WithArgs(userID, "device-abc", now).
			WillReturnError(assert.AnError)

		repo := NewPostgreSQLDeviceSessionRepository(db)
		err = repo.Touch(ctx, userID, "device-abc", now)

		assert.Error(t, err)
	})
}
