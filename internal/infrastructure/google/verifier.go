package google

import (
	"context"
	"fmt"

	"github.com/go-med-reminder/internal/domain"
	"google.golang.org/api/idtoken"
)

// Verifier validates Google-signed OIDC tokens, such as those attached by
// Cloud Scheduler to HTTP targets, against a fixed audience.
type Verifier struct {
	audience string
}

func NewVerifier(audience string) *Verifier {
	return &Verifier{audience: audience}
}

// VerifyBearer validates the token and returns the caller's email when present,
// otherwise its subject.
func (v *Verifier) VerifyBearer(ctx context.Context, token string) (string, error) {
	p, err := idtoken.Validate(ctx, token, v.audience)
	if err != nil {
		return "", fmt.Errorf("invalid google token: %w", domain.ErrUnauthorized)
	}
	if email, _ := p.Claims["email"].(string); email != "" {
		return email, nil
	}
	return p.Subject, nil
}
