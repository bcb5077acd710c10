package dto

import (
	"time"

	contentDomain "github.com/prepdeck/contentguard/internal/content/domain"
	playbackDomain "github.com/prepdeck/contentguard/internal/playback/domain"
)

// ContentMetadataResponse represents content metadata in API responses.
// The body is never echoed back on save.
type ContentMetadataResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Premium   bool      `json:"premium"`
	Version   uint      `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TextContentResponse is the delivery payload for a text content item.
type TextContentResponse struct {
	ID            string `json:"id"`
	Kind          string `json:"kind"`
	Premium       bool   `json:"premium"`
	Body          []byte `json:"body"`
	AccessGranted bool   `json:"access_granted"`
	AccessToken   string `json:"access_token"`
}

// PlaybackTokenResponse is returned after a successful token issuance.
type PlaybackTokenResponse struct {
	Token       string    `json:"token"`
	PlaybackURL string    `json:"playback_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// MapContentToMetadataResponse converts a domain content item to its
// metadata-only representation.
func MapContentToMetadataResponse(content *contentDomain.Content) ContentMetadataResponse {
	return ContentMetadataResponse{
		ID:        content.ID.String(),
		Kind:      string(content.Kind),
		Premium:   content.Premium,
		Version:   content.Version,
		UpdatedAt: content.UpdatedAt,
	}
}

// MapTextResultToResponse converts a text delivery result to an API response.
func MapTextResultToResponse(result *contentDomain.TextResult) TextContentResponse {
	return TextContentResponse{
		ID:            result.Content.ID.String(),
		Kind:          string(result.Content.Kind),
		Premium:       result.Content.Premium,
		Body:          result.Plaintext,
		AccessGranted: true,
		AccessToken:   result.AccessToken,
	}
}

// MapIssueOutputToResponse converts a playback issuance to an API response.
func MapIssueOutputToResponse(output *playbackDomain.IssueOutput) PlaybackTokenResponse {
	return PlaybackTokenResponse{
		Token:       output.PlainToken,
		PlaybackURL: output.PlaybackURL,
		ExpiresAt:   output.ExpiresAt,
	}
}
