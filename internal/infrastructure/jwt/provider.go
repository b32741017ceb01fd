package jwtinfra

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"os"

	"github.com/go-med-reminder/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the JWT payload fields of a trigger token.
type Claims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// Provider verifies RS256 JWTs presented by the scheduler.
type Provider struct {
	publicKey *rsa.PublicKey
	audience  string
}

// NewProvider loads the PEM public key at path. audience is optional.
func NewProvider(path, audience string) (*Provider, error) {
	pubBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return NewProviderFromKey(pubKey, audience), nil
}

func NewProviderFromKey(pub *rsa.PublicKey, audience string) *Provider {
	return &Provider{publicKey: pub, audience: audience}
}

func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if p.audience != "" {
		opts = append(opts, jwt.WithAudience(p.audience))
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.publicKey, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// VerifyBearer implements the trigger auth contract and returns the subject.
func (p *Provider) VerifyBearer(_ context.Context, token string) (string, error) {
	claims, err := p.Verify(token)
	if err != nil {
		return "", fmt.Errorf("jwt: %v: %w", err, domain.ErrUnauthorized)
	}
	return claims.Subject, nil
}
