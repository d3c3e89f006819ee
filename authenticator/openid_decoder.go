package authenticator

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// OpenIDDecoder verifies ID tokens issued by an OpenID Connect provider
type OpenIDDecoder struct {
	verifier *oidc.IDTokenVerifier
}

// OpenIDConfig holds OpenID Connect verification configuration
type OpenIDConfig struct {
	IssuerURL string
	ClientID  string
}

// NewOpenIDDecoder discovers the issuer and builds a verifier from its key set
func NewOpenIDDecoder(ctx context.Context, cfg OpenIDConfig) (*OpenIDDecoder, error) {
	if cfg.IssuerURL == "" {
		return nil, errors.New("issuer URL is required")
	}
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}

	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to discover issuer %s: %w", cfg.IssuerURL, err)
	}

	return &OpenIDDecoder{
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

// NewOpenIDDecoderWithKeySet builds a verifier from a known key set without discovery
func NewOpenIDDecoderWithKeySet(cfg OpenIDConfig, keySet oidc.KeySet) *OpenIDDecoder {
	return &OpenIDDecoder{
		verifier: oidc.NewVerifier(cfg.IssuerURL, keySet, &oidc.Config{ClientID: cfg.ClientID}),
	}
}

// Subject verifies the ID token and returns its subject
func (d *OpenIDDecoder) Subject(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrEmptyToken
	}

	idToken, err := d.verifier.Verify(ctx, token)
	if err != nil {
		return "", fmt.Errorf("failed to verify id token: %w", err)
	}

	if idToken.Subject == "" {
		return "", ErrMissingSubject
	}
	return idToken.Subject, nil
}
