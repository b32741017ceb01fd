package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-med-reminder/internal/config"
	"github.com/go-med-reminder/internal/domain"
	appmiddleware "github.com/go-med-reminder/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
)

type stubDispatcher struct{ runs int }

func (s *stubDispatcher) Run(context.Context) (*domain.RunSummary, error) {
	s.runs++
	return &domain.RunSummary{RunID: "r1"}, nil
}

func (s *stubDispatcher) LastRun() (*domain.RunSummary, bool) { return nil, false }

type keyVerifier string

func (k keyVerifier) VerifyBearer(_ context.Context, credential string) (string, error) {
	if credential != string(k) {
		return "", errors.New("no")
	}
	return "tester", nil
}

func testConfig() *config.Config {
	return &config.Config{
		AllowedOrigins: []string{"*"},
		Trigger:        config.Trigger{RatePerSec: 100, RateBurst: 100},
	}
}

func TestRouter_HealthCheck(t *testing.T) {
	h := NewRouter(testConfig(), &Deps{Dispatcher: &stubDispatcher{}})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/health-check/ping", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "pong")

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/health-check/other", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_TriggerRequiresAuthWhenConfigured(t *testing.T) {
	d := &stubDispatcher{}
	h := NewRouter(testConfig(), &Deps{
		Dispatcher: d,
		Auth:       appmiddleware.TriggerAuth{Bearer: []appmiddleware.Verifier{keyVerifier("tok")}},
	})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/dispatch/run", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, 0, d.runs)

	req := httptest.NewRequest(http.MethodPost, "/v1/dispatch/run", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, d.runs)
}

func TestRouter_TriggerOpenWithoutVerifiers(t *testing.T) {
	d := &stubDispatcher{}
	h := NewRouter(testConfig(), &Deps{Dispatcher: d})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/dispatch/run", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/dispatch/last", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
