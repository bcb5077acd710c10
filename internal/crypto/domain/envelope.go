// Package domain defines the cryptographic domain model for envelope
// encryption of premium lesson content.
//
// The hierarchy is two-tier: a master key (identified by a version string)
// wraps a fresh per-content key, and the per-content key encrypts the
// content itself. Rotating the master key never requires re-encrypting
// content, only re-wrapping content keys.
package domain

// Envelope holds every component required to store and later decrypt a
// piece of premium content. All fields are persisted alongside the parent
// content record; none of them is secret on its own.
type Envelope struct {
	// Ciphertext is the AEAD output over the plaintext, tag appended.
	Ciphertext []byte
	// Nonce is the 12-byte nonce used for the content encryption. It is
	// freshly random per operation; reusing a (key, nonce) pair breaks the
	// AEAD confidentiality guarantee, so it is never derived or counted.
	Nonce []byte
	// WrappedKey is the per-content key encrypted under the master key.
	WrappedKey []byte
	// WrapNonce is the nonce used when wrapping the content key.
	WrapNonce []byte
	// KeyVersion identifies the master key that produced WrappedKey,
	// enabling rotation: old envelopes keep decrypting with retired keys.
	KeyVersion string
	// Algorithm is the AEAD algorithm for both wrap and content encryption.
	Algorithm Algorithm
	// ContentHash is the SHA-256 digest of the plaintext, usable for
	// integrity verification without decrypting.
	ContentHash []byte
}
