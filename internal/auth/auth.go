// Package auth defines the token verifier boundary for the connection
// handshake. The service never stores credentials itself; it hands the
// bearer token to an external auth provider and consumes the identity
// it returns.
package auth

import (
	"context"
	"errors"
)

// Identity is the verified subject behind a bearer token.
type Identity struct {
	ID            string
	Email         string
	FullName      string
	EmailVerified bool
}

// ErrInvalidToken is returned when a token is missing, malformed,
// expired, or rejected by the auth provider.
var ErrInvalidToken = errors.New("invalid or expired token")

// Verifier resolves a bearer token to an identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}
