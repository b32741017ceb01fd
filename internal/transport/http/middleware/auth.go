package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const CallerKey contextKey = "caller"

// Verifier validates a presented credential and returns the caller identity.
type Verifier interface {
	VerifyBearer(ctx context.Context, credential string) (string, error)
}

// TriggerAuth guards the dispatch trigger. Bearer tokens are offered to each
// bearer verifier in order; "ApiKey <key>" or an X-Api-Key header goes to
// apiKey. A nil verifier disables its scheme.
type TriggerAuth struct {
	Bearer []Verifier
	APIKey Verifier
}

// Enabled reports whether any scheme is configured.
func (a TriggerAuth) Enabled() bool {
	return len(a.Bearer) > 0 || a.APIKey != nil
}

// Auth returns middleware that authenticates the caller and injects its
// identity into the request context.
func Auth(a TriggerAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := a.authenticate(r)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "missing or invalid credentials")
				return
			}
			ctx := context.WithValue(r.Context(), CallerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (a TriggerAuth) authenticate(r *http.Request) (string, bool) {
	ctx := r.Context()
	authHeader := r.Header.Get("Authorization")

	if tok, ok := strings.CutPrefix(authHeader, "Bearer "); ok && tok != "" {
		for _, v := range a.Bearer {
			if caller, err := v.VerifyBearer(ctx, tok); err == nil {
				return caller, true
			}
		}
		return "", false
	}

	key, ok := strings.CutPrefix(authHeader, "ApiKey ")
	if !ok {
		key = r.Header.Get("X-Api-Key")
	}
	if key == "" || a.APIKey == nil {
		return "", false
	}
	caller, err := a.APIKey.VerifyBearer(ctx, key)
	if err != nil {
		return "", false
	}
	return caller, true
}

// CallerFromContext returns the authenticated caller identity.
func CallerFromContext(ctx context.Context) (string, bool) {
	c, ok := ctx.Value(CallerKey).(string)
	return c, ok
}
