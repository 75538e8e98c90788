// Package ocdm is the flat entry point surface of the coordination layer.
//
// An Accessor owns the session registry and the registered adapters. Systems
// and sessions are opaque handles; every entry point accepts nil handles and
// reports ErrorInvalidAccessor or ErrorInvalidSession instead of faulting.
package ocdm

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"ocdm/internal/cdm/metrics"
	"ocdm/internal/cdm/models"
	"ocdm/internal/cdm/session"
	"ocdm/internal/cdm/store/certificate"
	"ocdm/internal/cdm/system"
)

// Accessor coordinates systems and sessions for a set of adapters.
type Accessor struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor AuditPublisher
	certs   CertificateStore
	tracer  trace.Tracer

	registry *session.Registry

	mu       sync.RWMutex
	adapters map[string]Adapter
	systems  map[*system.System]struct{}
	disposed bool
}

type Option func(*Accessor)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Accessor) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics registers the coordination layer collectors with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(a *Accessor) { a.metrics = metrics.New(reg) }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(a *Accessor) { a.auditor = p }
}

// WithCertificateStore replaces the in-memory server certificate store.
func WithCertificateStore(store CertificateStore) Option {
	return func(a *Accessor) {
		if store != nil {
			a.certs = store
		}
	}
}

// WithAdapter registers adapter at construction time. A stored server
// certificate is replayed to it as in RegisterAdapter.
func WithAdapter(adapter Adapter) Option {
	return func(a *Accessor) { a.adapters[adapter.KeySystem()] = adapter }
}

func WithTracer(t trace.Tracer) Option {
	return func(a *Accessor) { a.tracer = t }
}

func New(opts ...Option) *Accessor {
	a := &Accessor{
		logger:   slog.Default(),
		certs:    certificate.NewInMemoryStore(),
		adapters: make(map[string]Adapter),
		systems:  make(map[*system.System]struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	regOpts := []session.Option{
		session.WithLogger(a.logger),
		session.WithMetrics(a.metrics),
		session.WithTracer(a.tracer),
	}
	if a.auditor != nil {
		regOpts = append(regOpts, session.WithAuditPublisher(a.auditor))
	}
	a.registry = session.NewRegistry(regOpts...)

	for _, adapter := range a.adapters {
		if err := a.newSystem(adapter).RestoreServerCertificate(context.Background()); err != nil {
			a.logger.Warn("server certificate replay failed", "key_system", adapter.KeySystem(), "error", err)
		}
	}
	return a
}

func (a *Accessor) newSystem(adapter Adapter) *system.System {
	opts := []system.Option{
		system.WithLogger(a.logger),
		system.WithCertificateStore(a.certs),
	}
	if a.auditor != nil {
		opts = append(opts, system.WithAuditPublisher(a.auditor))
	}
	return system.New(adapter, a.registry, opts...)
}

// RegisterAdapter makes adapter's key system available, replacing any adapter
// registered for the same key system, and replays a stored server certificate.
func (a *Accessor) RegisterAdapter(ctx context.Context, adapter Adapter) Error {
	if adapter == nil {
		return ErrorInvalidArg
	}
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return ErrorInvalidAccessor
	}
	a.adapters[adapter.KeySystem()] = adapter
	a.mu.Unlock()

	if err := a.newSystem(adapter).RestoreServerCertificate(ctx); err != nil {
		a.logger.WarnContext(ctx, "server certificate replay failed",
			"key_system", adapter.KeySystem(),
			"error", err,
		)
		return models.CodeOf(err)
	}
	a.logger.InfoContext(ctx, "adapter registered", "key_system", adapter.KeySystem())
	return ErrorNone
}

func (a *Accessor) adapter(keySystem string) (Adapter, Error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.disposed {
		return nil, ErrorInvalidAccessor
	}
	adapter, ok := a.adapters[keySystem]
	if !ok {
		return nil, ErrorKeySystemNotSupported
	}
	return adapter, ErrorNone
}

// IsTypeSupported reports whether keySystem is served and accepts mimeType.
func (a *Accessor) IsTypeSupported(keySystem, mimeType string) Error {
	adapter, code := a.adapter(keySystem)
	if code != ErrorNone {
		return code
	}
	if !adapter.IsTypeSupported(mimeType) {
		return ErrorKeySystemNotSupported
	}
	return ErrorNone
}

// CreateSystem returns a new handle for keySystem.
func (a *Accessor) CreateSystem(keySystem string) (*System, Error) {
	adapter, code := a.adapter(keySystem)
	if code != ErrorNone {
		return nil, code
	}
	sys := a.newSystem(adapter)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disposed {
		return nil, ErrorInvalidAccessor
	}
	a.systems[sys] = struct{}{}
	return &System{sys: sys}, ErrorNone
}

// DestructSystem tears sys down. Sessions still scoped to it are reported
// and stay valid until released.
func (a *Accessor) DestructSystem(ctx context.Context, sys *System) Error {
	if sys == nil || sys.sys == nil {
		return ErrorInvalidAccessor
	}
	a.mu.Lock()
	delete(a.systems, sys.sys)
	a.mu.Unlock()

	if err := sys.sys.Destruct(ctx); err != nil {
		return ErrorInvalidAccessor
	}
	return ErrorNone
}

// SystemSetServerCertificate stores and applies a system-wide server
// certificate.
func (a *Accessor) SystemSetServerCertificate(ctx context.Context, sys *System, cert []byte) Error {
	if sys == nil || sys.sys == nil {
		return ErrorInvalidAccessor
	}
	if a.isDisposed() {
		return ErrorInvalidAccessor
	}
	return models.CodeOf(sys.sys.SetServerCertificate(ctx, cert))
}

// ConstructSession creates a license session under sys. The returned handle
// carries one reference; release it with DestructSession.
func (a *Accessor) ConstructSession(ctx context.Context, sys *System, req SessionRequest) (*Session, Error) {
	if sys == nil || sys.sys == nil || a.isDisposed() {
		return nil, ErrorInvalidAccessor
	}
	s, err := sys.sys.CreateSession(ctx, req)
	if err != nil {
		return nil, models.CodeOf(err)
	}
	return &Session{s: s}, ErrorNone
}

// GetSession waits up to wait for any session to report keyID usable and
// returns it with a new reference. The session can be released between the
// wait and the lookup, in which case nil is returned.
func (a *Accessor) GetSession(ctx context.Context, keyID []byte, wait time.Duration) *Session {
	return a.getSession(ctx, nil, keyID, wait)
}

// GetSystemSession is GetSession restricted to sessions created under sys.
func (a *Accessor) GetSystemSession(ctx context.Context, sys *System, keyID []byte, wait time.Duration) *Session {
	if sys == nil || sys.sys == nil {
		return nil
	}
	return a.getSession(ctx, sys.sys, keyID, wait)
}

func (a *Accessor) getSession(ctx context.Context, scope session.Owner, keyID []byte, wait time.Duration) *Session {
	if a.isDisposed() || len(keyID) == 0 || len(keyID) > MaxKeyIDLength {
		return nil
	}
	id, found := a.registry.WaitForKey(ctx, session.WaitRequest{
		KeyID:   keyID,
		Status:  Usable,
		Scope:   scope,
		Timeout: wait,
	})
	if !found {
		return nil
	}
	s, ok := a.registry.Find(id)
	if !ok {
		return nil
	}
	return &Session{s: s}
}

// WaitForKey waits for a session, optionally scoped to sys, to report status
// for keyID and returns its id.
func (a *Accessor) WaitForKey(ctx context.Context, sys *System, keyID []byte, status KeyStatus, timeout time.Duration) (string, bool) {
	if a.isDisposed() || len(keyID) > MaxKeyIDLength {
		return "", false
	}
	req := session.WaitRequest{KeyID: keyID, Status: status, Timeout: timeout}
	if sys != nil && sys.sys != nil {
		req.Scope = sys.sys
	}
	return a.registry.WaitForKey(ctx, req)
}

// Sessions returns a diagnostic snapshot of the registered sessions.
func (a *Accessor) Sessions() []SessionInfo {
	return a.registry.Snapshot()
}

// Waiters returns the number of goroutines currently waiting for a key.
func (a *Accessor) Waiters() int {
	return a.registry.Interested()
}

// Dispose destructs every system still held and drops the adapters. Later
// accessor calls report ErrorInvalidAccessor. Session handles already handed
// out stay usable until released.
func (a *Accessor) Dispose(ctx context.Context) Error {
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return ErrorInvalidAccessor
	}
	a.disposed = true
	systems := make([]*system.System, 0, len(a.systems))
	for sys := range a.systems {
		systems = append(systems, sys)
	}
	clear(a.systems)
	clear(a.adapters)
	a.mu.Unlock()

	for _, sys := range systems {
		_ = sys.Destruct(ctx)
	}
	a.logger.InfoContext(ctx, "accessor disposed",
		"systems", len(systems),
		"sessions", a.registry.Len(),
	)
	return ErrorNone
}

func (a *Accessor) isDisposed() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.disposed
}
