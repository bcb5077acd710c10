package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/prepdeck/contentguard/internal/errors"
)

// sessionResponse is the session service's wire format for the current user.
type sessionResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Subscription string `json:"subscription"`
}

// httpProvider resolves sessions against the platform's session service.
type httpProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider creates a Provider backed by the session service at
// baseURL. A nil client gets a 5 second timeout default.
func NewHTTPProvider(baseURL string, client *http.Client) Provider {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &httpProvider{
		baseURL: baseURL,
		client:  client,
	}
}

// CurrentUser resolves the bearer session token via the session service.
// Any non-200 response maps to ErrUnauthorized; transport failures map to
// ErrInternal so callers can distinguish an outage from a bad session.
func (p *httpProvider) CurrentUser(ctx context.Context, sessionToken string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v1/sessions/current", nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, "failed to build session request")
	}
	req.Header.Set("Authorization", "Bearer "+sessionToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, "session service unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "session not recognized")
	}

	var payload sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, "invalid session service response")
	}

	userID, err := uuid.Parse(payload.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, fmt.Sprintf("invalid user id %q", payload.ID))
	}

	return &User{
		ID:           userID,
		Email:        payload.Email,
		Role:         Role(payload.Role),
		Subscription: SubscriptionStatus(payload.Subscription),
	}, nil
}
