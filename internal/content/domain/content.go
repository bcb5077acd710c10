// Package domain defines the protected content model. Premium content is
// stored envelope-encrypted; free content is stored in plaintext but still
// carries an integrity hash. Each save creates a new version number on the
// same row.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/prepdeck/contentguard/internal/crypto/domain"
)

// Kind distinguishes text lessons from video lessons. The kind determines
// which delivery path applies: text is returned decrypted in the API
// response, video is streamed through the tokenized media endpoint.
type Kind string

const (
	KindText  Kind = "text"
	KindVideo Kind = "video"
)

// Content is a protected lesson item.
type Content struct {
	// ID is the stable content identifier.
	ID uuid.UUID
	// Kind is text or video.
	Kind Kind
	// Premium content requires an active subscription and is stored encrypted.
	Premium bool
	// Version increments on every save.
	Version uint
	// Body holds the plaintext for free content; empty for premium content.
	Body []byte
	// Envelope holds the encrypted payload for premium content; zero-valued
	// for free content.
	Envelope cryptoDomain.Envelope
	// ContentHash is the SHA-256 digest of the plaintext, stored for all
	// content regardless of protection level.
	ContentHash []byte
	// MediaPath locates the media file for video content, relative to the
	// configured media root.
	MediaPath string
	// CreatedAt is the UTC timestamp of the first version.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the latest version.
	UpdatedAt time.Time
}

// TextResult is what the text delivery path returns: the plaintext plus an
// opaque correlation ID tying the access to its audit trail. The ID is not
// an access credential; entitlement was already checked on this request.
type TextResult struct {
	Content     *Content
	Plaintext   []byte
	AccessToken string
}
