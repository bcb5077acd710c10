package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	contentDomain "github.com/prepdeck/contentguard/internal/content/domain"
	cryptoDomain "github.com/prepdeck/contentguard/internal/crypto/domain"
	"github.com/prepdeck/contentguard/internal/database"
	apperrors "github.com/prepdeck/contentguard/internal/errors"
)

// MySQLContentRepository implements content persistence for MySQL.
// UUIDs are stored as CHAR(36) strings and envelope components as BLOB columns.
type MySQLContentRepository struct {
	db *sql.DB
}

// Upsert inserts the content or, when the ID exists, replaces the payload
// and increments the stored version. The caller's Version field is ignored;
// the database owns version numbering.
func (m *MySQLContentRepository) Upsert(ctx context.Context, content *contentDomain.Content) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO contents
			  (id, kind, premium, version, body, ciphertext, nonce, wrapped_key,
			   wrap_nonce, key_version, algorithm, content_hash, media_path,
			   created_at, updated_at)
			  VALUES (?, ?, ?, 1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			    kind = VALUES(kind),
			    premium = VALUES(premium),
			    version = version + 1,
			    body = VALUES(body),
			    ciphertext = VALUES(ciphertext),
			    nonce = VALUES(nonce),
			    wrapped_key = VALUES(wrapped_key),
			    wrap_nonce = VALUES(wrap_nonce),
			    key_version = VALUES(key_version),
			    algorithm = VALUES(algorithm),
			    content_hash = VALUES(content_hash),
			    media_path = VALUES(media_path),
			    updated_at = VALUES(updated_at)`

	_, err := querier.ExecContext(
		ctx,
		query,
		content.ID.String(),
		content.Kind,
		content.Premium,
		content.Body,
		content.Envelope.Ciphertext,
		content.Envelope.Nonce,
		content.Envelope.WrappedKey,
		content.Envelope.WrapNonce,
		content.Envelope.KeyVersion,
		content.Envelope.Algorithm,
		content.ContentHash,
		content.MediaPath,
		content.UpdatedAt,
		content.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert content")
	}

	return nil
}

// Get retrieves a content item by ID. Returns an error wrapping ErrNotFound
// when the content does not exist.
func (m *MySQLContentRepository) Get(ctx context.Context, contentID uuid.UUID) (*contentDomain.Content, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, kind, premium, version, body, ciphertext, nonce,
			  wrapped_key, wrap_nonce, key_version, algorithm, content_hash,
			  media_path, created_at, updated_at
			  FROM contents WHERE id = ?`

	var content contentDomain.Content
	var id string
	var algorithm string

	err := querier.QueryRowContext(ctx, query, contentID.String()).Scan(
		&id,
		&content.Kind,
		&content.Premium,
		&content.Version,
		&content.Body,
		&content.Envelope.Ciphertext,
		&content.Envelope.Nonce,
		&content.Envelope.WrappedKey,
		&content.Envelope.WrapNonce,
		&content.Envelope.KeyVersion,
		&algorithm,
		&content.ContentHash,
		&content.MediaPath,
		&content.CreatedAt,
		&content.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "content not found")
		}
		return nil, apperrors.Wrap(err, "failed to get content")
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse content id")
	}
	content.ID = parsedID
	content.Envelope.Algorithm = cryptoDomain.Algorithm(algorithm)

	return &content, nil
}

// IsPremium reports whether the content requires an active subscription.
func (m *MySQLContentRepository) IsPremium(ctx context.Context, contentID uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT premium FROM contents WHERE id = ?`

	var premium bool

	err := querier.QueryRowContext(ctx, query, contentID.String()).Scan(&premium)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, apperrors.Wrap(apperrors.ErrNotFound, "content not found")
		}
		return false, apperrors.Wrap(err, "failed to check content premium flag")
	}

	return premium, nil
}

// NewMySQLContentRepository creates a new MySQL content repository.
func NewMySQLContentRepository(db *sql.DB) *MySQLContentRepository {
	return &MySQLContentRepository{db: db}
}
