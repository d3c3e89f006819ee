package authenticator

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrEmptyToken is returned when there is no token to decode
	ErrEmptyToken = errors.New("empty token")
	// ErrMissingSubject is returned when a valid token carries no subject claim
	ErrMissingSubject = errors.New("token has no subject claim")
)

// Config holds bearer token verification configuration
type Config struct {
	// Secret verifies HS256 tokens issued by the admin login
	Secret string
	// IssuerURL and ClientID switch verification to an OpenID Connect issuer
	IssuerURL string
	ClientID  string
}

// TokenDecoder verifies a bearer token and returns its subject
type TokenDecoder interface {
	Subject(ctx context.Context, token string) (string, error)
}

// NewDecoder picks the decoder matching the configuration
func NewDecoder(ctx context.Context, cfg Config) (TokenDecoder, error) {
	if cfg.IssuerURL != "" {
		return NewOpenIDDecoder(ctx, OpenIDConfig{
			IssuerURL: cfg.IssuerURL,
			ClientID:  cfg.ClientID,
		})
	}
	return NewHMACDecoder(cfg.Secret)
}

// ExtractToken strips the configured prefix from a credential header value.
// A header without the prefix is taken as the raw token.
func ExtractToken(headerValue, prefix string) string {
	token := strings.TrimSpace(headerValue)
	if prefix != "" {
		trimmed := strings.TrimSpace(prefix)
		if len(token) >= len(trimmed) && strings.EqualFold(token[:len(trimmed)], trimmed) {
			token = token[len(trimmed):]
		}
	}
	return strings.TrimSpace(token)
}
