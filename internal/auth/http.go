package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// HTTPVerifier verifies bearer tokens against the auth provider's user
// endpoint (GET {endpoint}/auth/v1/user with the token as credential).
type HTTPVerifier struct {
	endpoint string
	apiKey   string
	client   *http.Client
	log      zerolog.Logger
}

// NewHTTPVerifier creates a verifier for the given auth endpoint.
func NewHTTPVerifier(endpoint, apiKey string, log zerolog.Logger) *HTTPVerifier {
	return &HTTPVerifier{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}
}

type authUserResponse struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	EmailConfirmedAt string `json:"email_confirmed_at"`
	UserMetadata     struct {
		FullName string `json:"full_name"`
	} `json:"user_metadata"`
}

// Verify calls the auth provider with the supplied token. Any provider
// rejection or transport failure maps to ErrInvalidToken; the handshake
// treats them all as an unauthorized connection.
func (v *HTTPVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrInvalidToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.endpoint+"/auth/v1/user", nil)
	if err != nil {
		return Identity{}, fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if v.apiKey != "" {
		req.Header.Set("apikey", v.apiKey)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		v.log.Warn().Err(err).Msg("Auth provider unreachable")
		return Identity{}, ErrInvalidToken
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.log.Debug().Int("status", resp.StatusCode).Msg("Token rejected by auth provider")
		return Identity{}, ErrInvalidToken
	}

	var user authUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return Identity{}, ErrInvalidToken
	}
	if user.ID == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{
		ID:            user.ID,
		Email:         user.Email,
		FullName:      user.UserMetadata.FullName,
		EmailVerified: user.EmailConfirmedAt != "",
	}, nil
}
