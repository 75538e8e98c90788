package session

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"ocdm/internal/cdm/metrics"
	"ocdm/internal/cdm/ports"
	"ocdm/pkg/platform/audit"
)

const tracerName = "ocdm/internal/cdm/session"

// Registry tracks live sessions by id and wakes key waiters whenever a
// session is added or one of its key statuses changes.
//
// Lock order is registry then session. Session writers drop their own lock
// before calling into the registry.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	wake     chan struct{}

	// waiters counts goroutines parked in WaitForKey. It is incremented under
	// mu so a broadcast that sees zero cannot miss a waiter.
	waiters atomic.Int32

	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor ports.AuditPublisher
	tracer  trace.Tracer
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// WithAuditPublisher enables audit events for registration, duplicates,
// destruction and systems destructed with live sessions.
func WithAuditPublisher(p ports.AuditPublisher) Option {
	return func(r *Registry) {
		r.auditor = p
	}
}

// WithTracer overrides the tracer used for key waits.
func WithTracer(t trace.Tracer) Option {
	return func(r *Registry) {
		if t != nil {
			r.tracer = t
		}
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		sessions: make(map[string]*Session),
		wake:     make(chan struct{}),
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add registers s under its session id. When the id is already taken the
// existing session is kept and s is not registered; this is logged, counted
// and audited but not reported to the caller.
func (r *Registry) Add(ctx context.Context, s *Session) {
	r.mu.Lock()
	if existing, ok := r.sessions[s.id]; ok {
		r.mu.Unlock()
		if existing == s {
			return
		}
		r.logger.Warn("session id already registered, keeping existing session",
			"session_id", s.id,
			"key_system", s.KeySystem(),
		)
		r.metrics.IncSessionsDuplicate()
		r.emit(ctx, audit.EventSessionDuplicate, s, "duplicate session id")
		return
	}
	r.sessions[s.id] = s
	r.broadcastLocked()
	r.mu.Unlock()

	r.metrics.IncSessionsRegistered()
	r.emit(ctx, audit.EventSessionRegistered, s, "")
}

// Remove drops the session registered under id. A missing id is not an error.
func (r *Registry) Remove(ctx context.Context, id string) {
	r.mu.Lock()
	_, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if !ok {
		r.logger.DebugContext(ctx, "remove of unregistered session", "session_id", id)
		return
	}
	r.metrics.DecSessionsRegistered()
}

// unregister removes s only if s itself owns its id in the table, so the
// final release of a rejected duplicate leaves the original in place.
func (r *Registry) unregister(s *Session) {
	r.mu.Lock()
	current, ok := r.sessions[s.id]
	removed := ok && current == s
	if removed {
		delete(r.sessions, s.id)
	}
	r.mu.Unlock()

	if removed {
		r.metrics.DecSessionsRegistered()
	}
}

// Find returns the session registered under id with a new reference taken.
// The caller must Release it. Sessions already released to zero are absent.
func (r *Registry) Find(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || !s.tryAddRef() {
		return nil, false
	}
	return s, true
}

// AuditOnSystemDestruction reports sessions still scoped to owner while it is
// being torn down. Sessions are left untouched; the count is returned.
func (r *Registry) AuditOnSystemDestruction(ctx context.Context, owner Owner) int {
	r.mu.Lock()
	var alive []*Session
	for _, s := range r.sessions {
		if s.refs.Load() > 0 && s.BelongsTo(owner) {
			alive = append(alive, s)
		}
	}
	r.mu.Unlock()

	if len(alive) == 0 {
		return 0
	}
	for _, s := range alive {
		r.logger.WarnContext(ctx, "system destructed while session still alive",
			"session_id", s.id,
			"key_system", owner.KeySystem(),
			"refs", s.refs.Load(),
		)
	}
	r.metrics.AddSessionsOrphaned(len(alive))
	if r.auditor != nil {
		_ = r.auditor.Emit(ctx, audit.Event{
			Action:    string(audit.EventSystemDestructedWithSessions),
			KeySystem: owner.KeySystem(),
			Count:     len(alive),
		})
	}
	return len(alive)
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Interested returns the number of goroutines waiting for a key.
func (r *Registry) Interested() int {
	return int(r.waiters.Load())
}

// KeyInfo describes one key of a session for diagnostics.
type KeyInfo struct {
	KeyID  string `json:"key_id"`
	Status string `json:"status"`
	Error  uint32 `json:"error,omitempty"`
}

// Info describes one registered session for diagnostics.
type Info struct {
	SessionID string    `json:"session_id"`
	BufferID  string    `json:"buffer_id,omitempty"`
	KeySystem string    `json:"key_system,omitempty"`
	RefCount  int32     `json:"ref_count"`
	Keys      []KeyInfo `json:"keys"`
}

// Snapshot returns a point-in-time view of every registered session, ordered
// by session id.
func (r *Registry) Snapshot() []Info {
	r.mu.Lock()
	out := make([]Info, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, Info{
			SessionID: s.id,
			BufferID:  s.bufferID,
			KeySystem: s.KeySystem(),
			RefCount:  s.refs.Load(),
			Keys:      s.keySnapshot(),
		})
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].SessionID < out[j].SessionID })
	return out
}

// broadcast wakes every waiter. Callers must not hold a session lock.
func (r *Registry) broadcast() {
	r.mu.Lock()
	r.broadcastLocked()
	r.mu.Unlock()
}

func (r *Registry) broadcastLocked() {
	if r.waiters.Load() == 0 {
		return
	}
	close(r.wake)
	r.wake = make(chan struct{})
}

func (r *Registry) emit(ctx context.Context, action audit.AuditEvent, s *Session, reason string) {
	if r.auditor == nil {
		return
	}
	err := r.auditor.Emit(ctx, audit.Event{
		Action:    string(action),
		SessionID: s.id,
		KeySystem: s.KeySystem(),
		Reason:    reason,
	})
	if err != nil {
		r.logger.DebugContext(ctx, "audit emit failed", "action", action, "error", err)
	}
}
