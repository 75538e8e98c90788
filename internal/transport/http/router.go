package httptransport

//go:generate mockgen -source=router.go -destination=mocks/service-mocks.go -package=mocks Service

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"ocdm/internal/cdm/models"
	"ocdm/internal/platform/middleware"
	"ocdm/pkg/ocdm"
)

// Service is the part of the accessor the diagnostics surface reads.
type Service interface {
	Sessions() []ocdm.SessionInfo
	Waiters() int
	WaitForKey(ctx context.Context, sys *ocdm.System, keyID []byte, status ocdm.KeyStatus, timeout time.Duration) (string, bool)
}

// Handler serves read-only diagnostics. It never creates or releases sessions.
type Handler struct {
	svc     Service
	systems map[string]*ocdm.System
	logger  *slog.Logger

	defaultWait time.Duration
	maxWait     time.Duration

	checks map[string]HealthCheck
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Option func(*Handler)

// WithSystems enables key_system scoping for key waits.
func WithSystems(systems map[string]*ocdm.System) Option {
	return func(h *Handler) { h.systems = systems }
}

// WithWaitBounds sets the wait used when timeout_ms is absent and the upper
// bound applied to requested waits.
func WithWaitBounds(defaultWait, maxWait time.Duration) Option {
	return func(h *Handler) {
		h.defaultWait = defaultWait
		h.maxWait = maxWait
	}
}

// WithHealthCheck adds a dependency probed by /healthz.
func WithHealthCheck(name string, check HealthCheck) Option {
	return func(h *Handler) {
		if h.checks == nil {
			h.checks = make(map[string]HealthCheck)
		}
		h.checks[name] = check
	}
}

func NewHandler(svc Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		svc:         svc,
		logger:      logger,
		defaultWait: 2 * time.Second,
		maxWait:     30 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the /v1 routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/sessions", h.handleSessions)
		r.Get("/keys/{keyID}/wait", h.handleWaitForKey)
	})
}

// NewRouter wires health, metrics and the diagnostics routes.
func NewRouter(h *Handler, metrics http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.Logger(h.logger))

	r.Get("/healthz", h.handleHealth)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	h.Register(r)
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	status := http.StatusOK
	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
	}
	for name, check := range h.checks {
		if err := check(r.Context()); err != nil {
			h.logger.WarnContext(r.Context(), "health check failed", "check", name, "error", err)
			resp.Checks[name] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	writeJSON(w, status, resp)
}

type sessionsResponse struct {
	Sessions []ocdm.SessionInfo `json:"sessions"`
	Waiters  int                `json:"waiters"`
}

func (h *Handler) handleSessions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, sessionsResponse{
		Sessions: h.svc.Sessions(),
		Waiters:  h.svc.Waiters(),
	})
}

type waitResponse struct {
	KeyID     string `json:"key_id"`
	Status    string `json:"status"`
	Found     bool   `json:"found"`
	SessionID string `json:"session_id,omitempty"`
}

func (h *Handler) handleWaitForKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	keyID, err := models.ParseKeyID(chi.URLParam(r, "keyID"))
	if err != nil || len(keyID) == 0 || len(keyID) > ocdm.MaxKeyIDLength {
		writeError(w, http.StatusBadRequest, "invalid_key_id", "key id must be 1 to 255 hex encoded bytes")
		return
	}

	status := ocdm.Usable
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err = models.ParseKeyStatus(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_status", err.Error())
			return
		}
	}

	timeout := h.defaultWait
	if raw := r.URL.Query().Get("timeout_ms"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ms < 0 {
			writeError(w, http.StatusBadRequest, "invalid_timeout", "timeout_ms must be a non-negative integer")
			return
		}
		timeout = time.Duration(ms) * time.Millisecond
	}
	timeout = min(timeout, h.maxWait)

	var sys *ocdm.System
	if name := r.URL.Query().Get("key_system"); name != "" {
		var ok bool
		if sys, ok = h.systems[name]; !ok {
			writeError(w, http.StatusNotFound, "unknown_key_system", "key system is not served")
			return
		}
	}

	id, found := h.svc.WaitForKey(ctx, sys, keyID, status, timeout)
	if ctx.Err() != nil {
		h.logger.DebugContext(ctx, "key wait abandoned by client", "key_id", keyID.String())
		return
	}
	writeJSON(w, http.StatusOK, waitResponse{
		KeyID:     keyID.String(),
		Status:    status.String(),
		Found:     found,
		SessionID: id,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}
