package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"sync"
)

// MasterKey is the root of the envelope encryption hierarchy. It wraps
// per-content keys and never leaves server memory. The Version string is
// what gets persisted in envelopes as KeyVersion.
type MasterKey struct {
	Version   string
	Algorithm Algorithm
	Key       []byte
}

// KMSKeeper decrypts master key material that was encrypted with an external
// KMS before being placed in the environment. *secrets.Keeper from
// gocloud.dev implements it.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// MasterKeyChain holds all master key versions with one designated active.
//
// The active version wraps new content keys; retired versions stay in the
// chain so existing envelopes keep decrypting. Lookup by version is the
// decrypt path's key-rotation mechanism: an envelope whose KeyVersion is
// missing from the chain fails with ErrUnsupportedKeyVersion upstream.
//
// Thread safety: uses sync.Map internally, read-mostly after initialization.
type MasterKeyChain struct {
	activeVersion string
	keys          sync.Map
}

// ActiveVersion returns the version string of the currently active master key.
func (m *MasterKeyChain) ActiveVersion() string {
	return m.activeVersion
}

// Get retrieves a master key by its version string.
func (m *MasterKeyChain) Get(version string) (*MasterKey, bool) {
	if masterKey, ok := m.keys.Load(version); ok {
		return masterKey.(*MasterKey), ok
	}

	return nil, false
}

// Close zeroes all key material and resets the chain. Call on shutdown.
func (m *MasterKeyChain) Close() {
	m.keys.Range(func(key, value any) bool {
		if mk, ok := value.(*MasterKey); ok {
			Zero(mk.Key)
		}
		return true
	})
	m.activeVersion = ""
	m.keys.Clear()
}

// Master key chain configuration errors.
var (
	ErrMasterKeysNotSet        = fmt.Errorf("MASTER_KEYS environment variable is not set")
	ErrActiveKeyVersionNotSet  = fmt.Errorf("ACTIVE_MASTER_KEY_ID environment variable is not set")
	ErrInvalidMasterKeysFormat = fmt.Errorf("invalid MASTER_KEYS format, expected \"version:base64key\" entries")
	ErrInvalidMasterKeyBase64  = fmt.Errorf("invalid base64 in MASTER_KEYS entry")
	ErrActiveKeyVersionMissing = fmt.Errorf("active master key version not present in MASTER_KEYS")
)

// LoadMasterKeyChainFromEnv builds a MasterKeyChain from environment variables.
//
//	MASTER_KEYS="v1:<base64 32-byte key>,v2:<base64 32-byte key>"
//	ACTIVE_MASTER_KEY_ID="v2"
//
// When keeper is non-nil the base64 payloads are treated as KMS ciphertext
// and decrypted through the keeper before use, so plaintext master keys
// never appear in the environment. Temporary buffers are zeroed; on any
// error the partially built chain is closed.
func LoadMasterKeyChainFromEnv(ctx context.Context, keeper KMSKeeper) (*MasterKeyChain, error) {
	raw := os.Getenv("MASTER_KEYS")
	if raw == "" {
		return nil, ErrMasterKeysNotSet
	}

	active := os.Getenv("ACTIVE_MASTER_KEY_ID")
	if active == "" {
		return nil, ErrActiveKeyVersionNotSet
	}

	mkc := &MasterKeyChain{activeVersion: active}

	for part := range strings.SplitSeq(raw, ",") {
		p := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(p) != 2 {
			mkc.Close()
			return nil, fmt.Errorf("%w: %q", ErrInvalidMasterKeysFormat, part)
		}
		version := p[0]

		key, err := base64.StdEncoding.DecodeString(p[1])
		if err != nil {
			mkc.Close()
			return nil, fmt.Errorf("%w for %s: %v", ErrInvalidMasterKeyBase64, version, err)
		}

		if keeper != nil {
			plain, err := keeper.Decrypt(ctx, key)
			Zero(key)
			if err != nil {
				mkc.Close()
				return nil, fmt.Errorf("failed to decrypt master key %s with KMS: %w", version, err)
			}
			key = plain
		}

		if len(key) != KeySize {
			Zero(key)
			mkc.Close()
			return nil, fmt.Errorf(
				"%w: master key %s must be %d bytes, got %d",
				ErrInvalidKeySize,
				version,
				KeySize,
				len(key),
			)
		}

		stored := make([]byte, KeySize)
		copy(stored, key)
		Zero(key)
		mkc.keys.Store(version, &MasterKey{Version: version, Algorithm: AESGCM, Key: stored})
	}

	if _, ok := mkc.Get(active); !ok {
		mkc.Close()
		return nil, fmt.Errorf("%w: ACTIVE_MASTER_KEY_ID=%s", ErrActiveKeyVersionMissing, active)
	}

	return mkc, nil
}

// NewMasterKeyChain builds a chain from in-memory keys, with the given
// version active. Intended for tests and embedded use.
func NewMasterKeyChain(active string, keys ...*MasterKey) *MasterKeyChain {
	mkc := &MasterKeyChain{activeVersion: active}
	for _, mk := range keys {
		mkc.keys.Store(mk.Version, mk)
	}
	return mkc
}
