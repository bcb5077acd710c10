package service

import (
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/prepdeck/contentguard/internal/crypto/domain"
)

func newTestSealer(t *testing.T) *EnvelopeSealer {
	t.Helper()

	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	chain := cryptoDomain.NewMasterKeyChain("v1", &cryptoDomain.MasterKey{
		Version:   "v1",
		Algorithm: cryptoDomain.AESGCM,
		Key:       key,
	})

	return NewEnvelopeSealer(chain, NewAEADManager())
}

func TestEnvelopeSealer_Seal(t *testing.T) {
	t.Run("Success_RoundTrip", func(t *testing.T) {
		sealer := newTestSealer(t)
		plaintext := []byte("premium lesson body: two pointers, sliding window")

		envelope, err := sealer.Seal(plaintext)
		require.NoError(t, err)

		decrypted, err := sealer.Open(envelope)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("Success_FreshNonceAndCiphertextPerSeal", func(t *testing.T) {
		sealer := newTestSealer(t)
		plaintext := []byte("same plaintext sealed twice")

		first, err := sealer.Seal(plaintext)
		require.NoError(t, err)
		second, err := sealer.Seal(plaintext)
		require.NoError(t, err)

		assert.NotEqual(t, first.Nonce, second.Nonce)
		assert.NotEqual(t, first.WrapNonce, second.WrapNonce)
		assert.NotEqual(t, first.Ciphertext, second.Ciphertext)
		assert.NotEqual(t, first.WrappedKey, second.WrappedKey)
	})

	t.Run("Success_RecordsActiveKeyVersionAndHash", func(t *testing.T) {
		sealer := newTestSealer(t)
		plaintext := []byte("hash me")

		envelope, err := sealer.Seal(plaintext)
		require.NoError(t, err)

		expected := sha256.Sum256(plaintext)
		assert.Equal(t, "v1", envelope.KeyVersion)
		assert.Equal(t, expected[:], envelope.ContentHash)
	})

	t.Run("Error_NoActiveKeyVersion", func(t *testing.T) {
		chain := cryptoDomain.NewMasterKeyChain("missing")
		sealer := NewEnvelopeSealer(chain, NewAEADManager())

		_, err := sealer.Seal([]byte("anything"))
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedKeyVersion)
	})
}

func TestEnvelopeSealer_Open(t *testing.T) {
	t.Run("Error_TamperedCiphertext", func(t *testing.T) {
		sealer := newTestSealer(t)
		envelope, err := sealer.Seal([]byte("integrity matters"))
		require.NoError(t, err)

		envelope.Ciphertext[0] ^= 0x01

		plaintext, err := sealer.Open(envelope)
		assert.ErrorIs(t, err, cryptoDomain.ErrIntegrity)
		assert.Nil(t, plaintext)
	})

	t.Run("Error_TamperedAuthTag", func(t *testing.T) {
		sealer := newTestSealer(t)
		envelope, err := sealer.Seal([]byte("integrity matters"))
		require.NoError(t, err)

		// The GCM tag occupies the final 16 bytes of the ciphertext.
		envelope.Ciphertext[len(envelope.Ciphertext)-1] ^= 0x01

		plaintext, err := sealer.Open(envelope)
		assert.ErrorIs(t, err, cryptoDomain.ErrIntegrity)
		assert.Nil(t, plaintext)
	})

	t.Run("Error_TamperedWrappedKey", func(t *testing.T) {
		sealer := newTestSealer(t)
		envelope, err := sealer.Seal([]byte("integrity matters"))
		require.NoError(t, err)

		envelope.WrappedKey[3] ^= 0x01

		plaintext, err := sealer.Open(envelope)
		assert.ErrorIs(t, err, cryptoDomain.ErrIntegrity)
		assert.Nil(t, plaintext)
	})

	t.Run("Error_UnknownKeyVersion", func(t *testing.T) {
		sealer := newTestSealer(t)
		envelope, err := sealer.Seal([]byte("rotated away"))
		require.NoError(t, err)

		envelope.KeyVersion = "v99"

		plaintext, err := sealer.Open(envelope)
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedKeyVersion)
		assert.Nil(t, plaintext)
	})

	t.Run("Success_RetiredKeyVersionStillDecrypts", func(t *testing.T) {
		oldKey := make([]byte, cryptoDomain.KeySize)
		newKey := make([]byte, cryptoDomain.KeySize)
		_, err := rand.Read(oldKey)
		require.NoError(t, err)
		_, err = rand.Read(newKey)
		require.NoError(t, err)

		oldChain := cryptoDomain.NewMasterKeyChain("v1", &cryptoDomain.MasterKey{
			Version: "v1", Algorithm: cryptoDomain.AESGCM, Key: oldKey,
		})
		envelope, err := NewEnvelopeSealer(oldChain, NewAEADManager()).Seal([]byte("old premium content"))
		require.NoError(t, err)

		// After rotation v2 is active but v1 stays in the chain.
		rotated := cryptoDomain.NewMasterKeyChain("v2",
			&cryptoDomain.MasterKey{Version: "v1", Algorithm: cryptoDomain.AESGCM, Key: oldKey},
			&cryptoDomain.MasterKey{Version: "v2", Algorithm: cryptoDomain.AESGCM, Key: newKey},
		)

		plaintext, err := NewEnvelopeSealer(rotated, NewAEADManager()).Open(envelope)
		require.NoError(t, err)
		assert.Equal(t, []byte("old premium content"), plaintext)
	})
}

func TestHashContent(t *testing.T) {
	t.Run("Success_MatchesSHA256", func(t *testing.T) {
		body := []byte("free lesson body still gets a hash")
		expected := sha256.Sum256(body)

		assert.Equal(t, expected[:], HashContent(body))
	})

	t.Run("Success_DifferentInputsDiffer", func(t *testing.T) {
		assert.NotEqual(t, HashContent([]byte("a")), HashContent([]byte("b")))
	})
}
