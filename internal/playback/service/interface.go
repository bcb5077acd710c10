// Package service provides playback token generation and hashing.
package service

// TokenService generates opaque playback tokens and hashes them for storage.
// Only the hash is ever persisted; the plain token exists solely in the
// response to the client that requested it.
type TokenService interface {
	GenerateToken() (plainToken string, tokenHash string, error error)
	HashToken(plainToken string) string
}
