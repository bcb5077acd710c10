// Package repository implements playback token persistence on Badger.
//
// Tokens are short-lived (minutes) and high-churn, so they live in an
// embedded Badger store with native TTL expiry instead of the relational
// database. Badger reclaims expired entries on its own; the periodic GC in
// RunValueLogGC keeps the value log compact.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	apperrors "github.com/prepdeck/contentguard/internal/errors"
	playbackDomain "github.com/prepdeck/contentguard/internal/playback/domain"
)

const tokenKeyPrefix = "token:"

// BadgerTokenRepository stores playback tokens keyed by their SHA-256 hash.
type BadgerTokenRepository struct {
	db *badger.DB
}

// Create persists a token with a TTL matching its expiry. Badger drops the
// entry after the TTL, so expired tokens vanish without a sweeper.
func (b *BadgerTokenRepository) Create(ctx context.Context, token *playbackDomain.Token) error {
	payload, err := json.Marshal(token)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token")
	}

	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "token already expired")
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(tokenKeyPrefix+token.TokenHash), payload).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to store token")
	}

	return nil
}

// GetByHash retrieves a token by its SHA-256 hash. Returns ErrTokenNotFound
// for unknown or already-expired tokens.
func (b *BadgerTokenRepository) GetByHash(ctx context.Context, tokenHash string) (*playbackDomain.Token, error) {
	var token playbackDomain.Token

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(tokenKeyPrefix + tokenHash))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &token)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, playbackDomain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get token")
	}

	return &token, nil
}

// Delete removes a token by its hash. Deleting an absent token is not an error.
func (b *BadgerTokenRepository) Delete(ctx context.Context, tokenHash string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(tokenKeyPrefix + tokenHash))
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to delete token")
	}
	return nil
}

// RunValueLogGC triggers one round of Badger value log garbage collection.
// Returns badger.ErrNoRewrite when there was nothing to reclaim.
func (b *BadgerTokenRepository) RunValueLogGC() error {
	return b.db.RunValueLogGC(0.5)
}

// Close closes the underlying Badger database.
func (b *BadgerTokenRepository) Close() error {
	return b.db.Close()
}

// OpenBadgerTokenRepository opens (or creates) the token store at the given
// path. An empty path opens an in-memory store, used in tests.
func OpenBadgerTokenRepository(path string) (*BadgerTokenRepository, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open token store")
	}

	return &BadgerTokenRepository{db: db}, nil
}
