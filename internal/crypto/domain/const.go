package domain

// Algorithm represents the AEAD algorithm used for encryption.
//
// Both supported algorithms provide Authenticated Encryption with Associated
// Data: confidentiality and tamper-evidence in a single pass. Tag
// verification happens inside the cipher implementation and is constant-time.
type Algorithm string

const (
	// AESGCM is AES-256-GCM: 256-bit key, 12-byte nonce, 16-byte tag.
	// Preferred on CPUs with AES-NI acceleration.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 is ChaCha20-Poly1305: 256-bit key, 12-byte nonce, 16-byte tag.
	// Preferred on platforms without AES hardware support.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// KeySize is the required key length in bytes for all algorithms.
const KeySize = 32
