package service

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	cryptoDomain "github.com/prepdeck/contentguard/internal/crypto/domain"
)

// EnvelopeSealer implements the Sealer interface over a master key chain.
//
// Seal path: generate a random 32-byte content key, encrypt the plaintext
// with it, wrap the content key under the active master key (its own fresh
// nonce), record the master key version and the plaintext hash. The content
// key exists only transiently in memory and is zeroed before returning.
//
// Open path: resolve the master key by the envelope's KeyVersion, unwrap,
// decrypt. Both AEAD operations fail closed on any tag mismatch.
type EnvelopeSealer struct {
	keyChain    *cryptoDomain.MasterKeyChain
	aeadManager AEADManager
}

// NewEnvelopeSealer creates an EnvelopeSealer bound to a master key chain.
func NewEnvelopeSealer(keyChain *cryptoDomain.MasterKeyChain, aeadManager AEADManager) *EnvelopeSealer {
	return &EnvelopeSealer{
		keyChain:    keyChain,
		aeadManager: aeadManager,
	}
}

// Seal envelope-encrypts plaintext under the active master key version.
func (s *EnvelopeSealer) Seal(plaintext []byte) (cryptoDomain.Envelope, error) {
	masterKey, found := s.keyChain.Get(s.keyChain.ActiveVersion())
	if !found {
		return cryptoDomain.Envelope{}, cryptoDomain.ErrUnsupportedKeyVersion
	}

	// Fresh random content key per seal operation.
	contentKey := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(contentKey); err != nil {
		return cryptoDomain.Envelope{}, fmt.Errorf("failed to generate content key: %w", err)
	}
	defer cryptoDomain.Zero(contentKey)

	contentCipher, err := s.aeadManager.CreateCipher(contentKey, masterKey.Algorithm)
	if err != nil {
		return cryptoDomain.Envelope{}, err
	}

	ciphertext, nonce, err := contentCipher.Encrypt(plaintext, nil)
	if err != nil {
		return cryptoDomain.Envelope{}, fmt.Errorf("failed to encrypt content: %w", err)
	}

	wrapCipher, err := s.aeadManager.CreateCipher(masterKey.Key, masterKey.Algorithm)
	if err != nil {
		return cryptoDomain.Envelope{}, err
	}

	wrappedKey, wrapNonce, err := wrapCipher.Encrypt(contentKey, nil)
	if err != nil {
		return cryptoDomain.Envelope{}, fmt.Errorf("failed to wrap content key: %w", err)
	}

	return cryptoDomain.Envelope{
		Ciphertext:  ciphertext,
		Nonce:       nonce,
		WrappedKey:  wrappedKey,
		WrapNonce:   wrapNonce,
		KeyVersion:  masterKey.Version,
		Algorithm:   masterKey.Algorithm,
		ContentHash: HashContent(plaintext),
	}, nil
}

// Open decrypts an envelope produced by Seal.
//
// Unknown key versions return ErrUnsupportedKeyVersion without attempting
// decryption. Any authentication failure, on the wrapped key or on the
// content, returns ErrIntegrity and no plaintext.
func (s *EnvelopeSealer) Open(envelope cryptoDomain.Envelope) ([]byte, error) {
	masterKey, found := s.keyChain.Get(envelope.KeyVersion)
	if !found {
		return nil, cryptoDomain.ErrUnsupportedKeyVersion
	}

	wrapCipher, err := s.aeadManager.CreateCipher(masterKey.Key, envelope.Algorithm)
	if err != nil {
		return nil, err
	}

	contentKey, err := wrapCipher.Decrypt(envelope.WrappedKey, envelope.WrapNonce, nil)
	if err != nil {
		return nil, cryptoDomain.ErrIntegrity
	}
	defer cryptoDomain.Zero(contentKey)

	contentCipher, err := s.aeadManager.CreateCipher(contentKey, envelope.Algorithm)
	if err != nil {
		return nil, err
	}

	plaintext, err := contentCipher.Decrypt(envelope.Ciphertext, envelope.Nonce, nil)
	if err != nil {
		return nil, cryptoDomain.ErrIntegrity
	}

	return plaintext, nil
}

// HashContent returns the SHA-256 digest of plaintext. Every stored content
// record carries this hash, including free content stored without
// encryption, so out-of-band copies can be verified against the canonical
// source without key material.
func HashContent(plaintext []byte) []byte {
	sum := sha256.Sum256(plaintext)
	return sum[:]
}
