package authenticator

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// HMACDecoder verifies HS256-signed tokens with a shared secret
type HMACDecoder struct {
	secret []byte
	parser *jwt.Parser
}

// NewHMACDecoder creates a decoder for tokens signed with secret
func NewHMACDecoder(secret string) (*HMACDecoder, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}

	return &HMACDecoder{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS512.Alg()}),
		),
	}, nil
}

// Subject validates the token and returns its "sub" claim
func (d *HMACDecoder) Subject(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrEmptyToken
	}

	var claims jwt.RegisteredClaims
	parsed, err := d.parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return d.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !parsed.Valid {
		return "", errors.New("invalid token")
	}

	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}
