// Package auth implements the identity collaborator: HS256 access tokens
// that yield a stable username, plus the echo middleware that enforces them.
package auth

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// Authenticator issues and verifies HS256 access tokens.
type Authenticator struct {
	secret []byte
}

// New creates an Authenticator with the given signing secret.
func New(secret string) (*Authenticator, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret must not be empty")
	}
	return &Authenticator{secret: []byte(secret)}, nil
}

// Issue creates a signed token carrying username as the subject. A zero ttl
// produces a token without expiration (development tokens).
func (a *Authenticator) Issue(username string, ttl time.Duration) (string, error) {
	builder := jwt.NewBuilder().
		Subject(username).
		IssuedAt(time.Now())
	if ttl > 0 {
		builder = builder.Expiration(time.Now().Add(ttl))
	}
	tok, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256(), a.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(signed), nil
}

// Verify validates a token and returns its subject.
func (a *Authenticator) Verify(raw string) (string, error) {
	tok, err := jwt.Parse([]byte(raw), jwt.WithKey(jwa.HS256(), a.secret), jwt.WithValidate(true))
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	sub, ok := tok.Subject()
	if !ok || sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}
