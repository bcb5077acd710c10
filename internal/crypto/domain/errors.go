package domain

import (
	"github.com/prepdeck/contentguard/internal/errors"
)

// Cryptographic operation error definitions.
//
// All cryptographic failures fail closed: no partial plaintext is ever
// returned and the precise cause is not disclosed to clients.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrIntegrity indicates authenticated decryption failed: a wrong key,
	// a tampered ciphertext, a tampered wrapped key, or a corrupted nonce.
	// Handlers map this to a generic "content error" response; the detail
	// stays in server logs only.
	ErrIntegrity = errors.Wrap(errors.ErrInternal, "integrity check failed")

	// ErrUnsupportedKeyVersion indicates an envelope references a master key
	// version that is not present in the key chain. Decryption is not
	// attempted for unknown versions.
	ErrUnsupportedKeyVersion = errors.Wrap(errors.ErrInternal, "unsupported key version")
)
