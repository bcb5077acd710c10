// Package service implements the envelope encryption of lesson content:
// AEAD ciphers (AES-256-GCM, ChaCha20-Poly1305), per-content key wrapping
// under a versioned master key, and plaintext integrity hashing.
package service

import (
	cryptoDomain "github.com/prepdeck/contentguard/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager creates AEAD cipher instances for a key and algorithm.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// Sealer performs envelope encryption of content payloads.
//
// Seal generates a fresh content key and nonce per call, so sealing the same
// plaintext twice yields different ciphertexts and different nonces. Open
// fails closed: tampered ciphertext, tampered wrapped key, or an unknown
// key version never yields partial plaintext.
type Sealer interface {
	// Seal encrypts plaintext and wraps the content key under the active
	// master key. The returned envelope carries everything needed to
	// decrypt later plus the plaintext SHA-256 hash.
	Seal(plaintext []byte) (cryptoDomain.Envelope, error)

	// Open unwraps the content key identified by the envelope's KeyVersion
	// and decrypts the ciphertext. Returns ErrUnsupportedKeyVersion for
	// unknown versions and ErrIntegrity for any authentication failure.
	Open(envelope cryptoDomain.Envelope) ([]byte, error)
}
