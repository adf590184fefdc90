package auth

import "context"

// StaticVerifier accepts a single fixed token and returns a fixed
// identity. Used for local development and tests, where no auth
// provider is reachable.
type StaticVerifier struct {
	Token    string
	Identity Identity
}

// NewStaticVerifier creates a verifier accepting only the given token.
func NewStaticVerifier(token string) *StaticVerifier {
	return &StaticVerifier{
		Token: token,
		Identity: Identity{
			ID:            "dev-user",
			Email:         "dev@localhost",
			EmailVerified: true,
		},
	}
}

// Verify compares the token against the configured one.
func (v *StaticVerifier) Verify(_ context.Context, token string) (Identity, error) {
	if token == "" || token != v.Token {
		return Identity{}, ErrInvalidToken
	}
	return v.Identity, nil
}
