package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-med-reminder/internal/domain"
	"github.com/go-med-reminder/internal/transport/http/middleware"
)

type dispatchService interface {
	Run(ctx context.Context) (*domain.RunSummary, error)
	LastRun() (*domain.RunSummary, bool)
}

// DispatchHandler exposes the reminder pass to external schedulers.
type DispatchHandler struct {
	svc     dispatchService
	logger  *slog.Logger
	running sync.Mutex
}

func NewDispatchHandler(svc dispatchService, logger *slog.Logger) *DispatchHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DispatchHandler{svc: svc, logger: logger}
}

// Run executes one pass synchronously. Overlapping triggers on the same
// instance are refused rather than queued.
func (h *DispatchHandler) Run(w http.ResponseWriter, r *http.Request) {
	if !h.running.TryLock() {
		writeError(w, http.StatusConflict, "dispatch already running")
		return
	}
	defer h.running.Unlock()

	caller, _ := middleware.CallerFromContext(r.Context())
	summary, err := h.svc.Run(r.Context())
	if err != nil {
		h.logger.Error("triggered dispatch failed", "caller", caller, "err", err)
		writeError(w, http.StatusInternalServerError, "dispatch failed")
		return
	}
	writeJSON(w, http.StatusOK, RunEnvelope{Summary: summary, Caller: caller})
}

func (h *DispatchHandler) Last(w http.ResponseWriter, _ *http.Request) {
	summary, ok := h.svc.LastRun()
	if !ok {
		writeError(w, http.StatusNotFound, "no run completed yet")
		return
	}
	writeJSON(w, http.StatusOK, RunEnvelope{Summary: summary})
}
