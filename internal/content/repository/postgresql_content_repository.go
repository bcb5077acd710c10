// Package repository implements content persistence for PostgreSQL and MySQL.
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

// PostgreSQLContentRepository implements content persistence for PostgreSQL.
// Envelope components are stored as BYTEA columns on the content row; a save
// to an existing ID bumps the version in place.
type PostgreSQLContentRepository struct {
	db *sql.DB
}

// Upsert inserts the content or, when the ID exists, replaces the payload
// and increments the stored version. The caller's Version field is ignored;
// the database owns version numbering.
func (p *PostgreSQLContentRepository) Upsert(ctx context.Context, content *contentDomain.Content) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO contents
			  (id, kind, premium, version, body, ciphertext, nonce, wrapped_key,
			   wrap_nonce, key_version, algorithm, content_hash, media_path,
			   created_at, updated_at)
			  VALUES ($1, $2, $3, 1, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
			  ON CONFLICT (id) DO UPDATE SET
			    kind = EXCLUDED.kind,
			    premium = EXCLUDED.premium,
			    version = contents.version + 1,
			    body = EXCLUDED.body,
			    ciphertext = EXCLUDED.ciphertext,
			    nonce = EXCLUDED.nonce,
			    wrapped_key = EXCLUDED.wrapped_key,
			    wrap_nonce = EXCLUDED.wrap_nonce,
			    key_version = EXCLUDED.key_version,
			    algorithm = EXCLUDED.algorithm,
			    content_hash = EXCLUDED.content_hash,
			    media_path = EXCLUDED.media_path,
			    updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		content.ID,
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
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert content")
	}

	return nil
}

// Get retrieves a content item by ID. Returns an error wrapping ErrNotFound
// when the content does not exist.
func (p *PostgreSQLContentRepository) Get(ctx context.Context, contentID uuid.UUID) (*contentDomain.Content, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, kind, premium, version, body, ciphertext, nonce,
			  wrapped_key, wrap_nonce, key_version, algorithm, content_hash,
			  media_path, created_at, updated_at
			  FROM contents WHERE id = $1`

	var content contentDomain.Content
	var algorithm string

	err := querier.QueryRowContext(ctx, query, contentID).Scan(
		&content.ID,
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

	content.Envelope.Algorithm = cryptoDomain.Algorithm(algorithm)

	return &content, nil
}

// IsPremium reports whether the content requires an active subscription.
// Implements the entitlement oracle's catalog interface without loading the
// payload.
func (p *PostgreSQLContentRepository) IsPremium(ctx context.Context, contentID uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT premium FROM contents WHERE id = $1`

	var premium bool

	err := querier.QueryRowContext(ctx, query, contentID).Scan(&premium)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, apperrors.Wrap(apperrors.ErrNotFound, "content not found")
		}
		return false, apperrors.Wrap(err, "failed to check content premium flag")
	}

	return premium, nil
}

// NewPostgreSQLContentRepository creates a new PostgreSQL content repository.
func NewPostgreSQLContentRepository(db *sql.DB) *PostgreSQLContentRepository {
	return &PostgreSQLContentRepository{db: db}
}
