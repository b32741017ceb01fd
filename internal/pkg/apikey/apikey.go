package apikey

import (
	"context"
	"fmt"

	"github.com/go-med-reminder/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Verifier checks a presented key against a bcrypt hash, so the plaintext
// key never has to live in configuration.
type Verifier struct {
	hash []byte
}

func NewVerifier(hash string) *Verifier {
	return &Verifier{hash: []byte(hash)}
}

// Hash returns the bcrypt hash of key, for provisioning TRIGGER_API_KEY_HASH.
func Hash(key string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (v *Verifier) VerifyBearer(_ context.Context, key string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(v.hash, []byte(key)); err != nil {
		return "", fmt.Errorf("api key mismatch: %w", domain.ErrUnauthorized)
	}
	return "api-key", nil
}
