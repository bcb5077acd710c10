package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contentDomain "github.com/prepdeck/contentguard/internal/content/domain"
	cryptoDomain "github.com/prepdeck/contentguard/internal/crypto/domain"
	apperrors "github.com/prepdeck/contentguard/internal/errors"
)

func contentColumns() []string {
	return []string{
		"id", "kind", "premium", "version", "body", "ciphertext", "nonce",
		"wrapped_key", "wrap_nonce", "key_version", "algorithm", "content_hash",
		"media_path", "created_at", "updated_at",
	}
}

func TestPostgreSQLContentRepository_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_InsertPremiumContent", func(t *testing.T) {
		db, dbmock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		now := time.Now().UTC()
		content := &contentDomain.Content{
			ID:      uuid.Must(uuid.NewV7()),
			Kind:    contentDomain.KindText,
			Premium: true,
			Envelope: cryptoDomain.Envelope{
				Ciphertext: []byte("ciphertext"),
				Nonce:      []byte("nonce"),
				WrappedKey: []byte("wrapped"),
				WrapNonce:  []byte("wrap-nonce"),
				KeyVersion: "v1",
				Algorithm:  cryptoDomain.AESGCM,
			},
			ContentHash: []byte("hash"),
			UpdatedAt:   now,
		}

		dbmock.ExpectExec(`INSERT INTO contents`).
			WithArgs(
				content.ID, content.Kind, content.Premium, content.Body,
				content.Envelope.Ciphertext, content.Envelope.Nonce,
				content.Envelope.WrappedKey, content.Envelope.WrapNonce,
				content.Envelope.KeyVersion, content.Envelope.Algorithm,
				content.ContentHash, content.MediaPath, now,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLContentRepository(db)
		err = repo.Upsert(ctx, content)

		require.NoError(t, err)
		assert.NoError(t, dbmock.ExpectationsWereMet())
	})
}

func TestPostgreSQLContentRepository_Get(t *testing.T) {
	ctx := context.Background()
	contentID := uuid.Must(uuid.NewV7())

	t.Run("Success_GetContent", func(t *testing.T) {
		db, dbmock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		now := time.Now().UTC()
		rows := sqlmock.NewRows(contentColumns()).AddRow(
			contentID, "text", true, 2, []byte(nil), []byte("ciphertext"),
			[]byte("nonce"), []byte("wrapped"), []byte("wrap-nonce"), "v1",
			"aes-gcm", []byte("hash"), "", now, now,
		)

		dbmock.ExpectQuery(`SELECT (.+) FROM contents WHERE id = \$1`).
			WithArgs(contentID).
			WillReturnRows(rows)

		repo := NewPostgreSQLContentRepository(db)
		content, err := repo.Get(ctx, contentID)

		require.NoError(t, err)
		assert.Equal(t, contentID, content.ID)
		assert.Equal(t, contentDomain.KindText, content.Kind)
		assert.True(t, content.Premium)
		assert.Equal(t, uint(2), content.Version)
		assert.Equal(t, cryptoDomain.AESGCM, content.Envelope.Algorithm)
		assert.Equal(t, "v1", content.Envelope.KeyVersion)
	})

	t.Run("Error_ContentNotFound", func(t *testing.T) {
		db, dbmock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dbmock.ExpectQuery(`SELECT (.+) FROM contents WHERE id = \$1`).
			WithArgs(contentID).
			WillReturnRows(sqlmock.NewRows(contentColumns()))

		repo := NewPostgreSQLContentRepository(db)
		_, err = repo.Get(ctx, contentID)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLContentRepository_IsPremium(t *testing.T) {
	ctx := context.Background()
	contentID := uuid.Must(uuid.NewV7())

	t.Run("Success_PremiumContent", func(t *testing.T) {
		db, dbmock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dbmock.ExpectQuery(`SELECT premium FROM contents WHERE id = \$1`).
			WithArgs(contentID).
			WillReturnRows(sqlmock.NewRows([]string{"premium"}).AddRow(true))

		repo := NewPostgreSQLContentRepository(db)
		premium, err := repo.IsPremium(ctx, contentID)

		require.NoError(t, err)
		assert.True(t, premium)
	})

	t.Run("Error_UnknownContent", func(t *testing.T) {
		db, dbmock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dbmock.ExpectQuery(`SELECT premium FROM contents WHERE id = \$1`).
			WithArgs(contentID).
			WillReturnRows(sqlmock.NewRows([]string{"premium"}))

		repo := NewPostgreSQLContentRepository(db)
		_, err = repo.IsPremium(ctx, contentID)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
