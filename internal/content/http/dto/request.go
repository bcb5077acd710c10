// Package dto provides data transfer objects for content HTTP handlers.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/prepdeck/contentguard/internal/validation"
)

// SaveContentRequest contains the parameters for creating or updating a
// content item. The content ID comes from the URL parameter.
type SaveContentRequest struct {
	Kind      string `json:"kind"`
	Premium   bool   `json:"premium"`
	Body      []byte `json:"body"`
	MediaPath string `json:"media_path"`
}

// Validate checks if the save content request is valid.
func (r *SaveContentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Kind,
			validation.Required,
			validation.In("text", "video"),
		),
		validation.Field(&r.Body,
			validation.Required.When(r.Kind == "text"),
		),
		validation.Field(&r.MediaPath,
			validation.Required.When(r.Kind == "video"),
			validation.Length(0, 512),
		),
	)
}

// PlaybackTokenRequest contains the parameters for requesting a playback
// token. Identity comes from the session, so the whole body is optional; the
// fingerprint is a best-effort device hint.
type PlaybackTokenRequest struct {
	DeviceFingerprint string `json:"device_fingerprint"`
}

// Validate checks if the playback token request is valid.
func (r *PlaybackTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DeviceFingerprint,
			customValidation.DeviceFingerprint,
		),
	)
}
