// Package system implements the per key-system handle. A System owns no
// sessions; sessions point back at it for scoping only.
package system

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"ocdm/internal/cdm/models"
	"ocdm/internal/cdm/ports"
	"ocdm/internal/cdm/session"
	"ocdm/pkg/platform/audit"
	"ocdm/pkg/platform/sentinel"
)

// MaxCertificateSize is the largest server certificate accepted.
const MaxCertificateSize = 0xffff

// System is a handle to one key system served by an adapter.
type System struct {
	adapter  ports.Adapter
	registry *session.Registry

	certs   ports.CertificateStore
	auditor ports.AuditPublisher
	logger  *slog.Logger

	destructed atomic.Bool
}

type Option func(*System)

func WithLogger(logger *slog.Logger) Option {
	return func(s *System) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCertificateStore persists server certificates per key system.
func WithCertificateStore(store ports.CertificateStore) Option {
	return func(s *System) { s.certs = store }
}

func WithAuditPublisher(p ports.AuditPublisher) Option {
	return func(s *System) { s.auditor = p }
}

func New(adapter ports.Adapter, registry *session.Registry, opts ...Option) *System {
	s := &System{
		adapter:  adapter,
		registry: registry,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *System) KeySystem() string { return s.adapter.KeySystem() }
func (s *System) Metadata() string  { return s.adapter.Metadata() }

func (s *System) SupportsServerCertificate() bool {
	return s.adapter.SupportsServerCertificate()
}

func (s *System) checkAlive() error {
	if s.destructed.Load() {
		return fmt.Errorf("system %s destructed: %w", s.KeySystem(), sentinel.ErrInvalidState)
	}
	return nil
}

// SetServerCertificate stores cert for the key system and applies it to the
// adapter, so it covers every session of this key system.
func (s *System) SetServerCertificate(ctx context.Context, cert []byte) error {
	if err := s.checkAlive(); err != nil {
		return err
	}
	if len(cert) == 0 || len(cert) > MaxCertificateSize {
		return fmt.Errorf("server certificate of %d bytes: %w", len(cert), models.CodeInvalidArg)
	}
	if !s.adapter.SupportsServerCertificate() {
		s.logger.DebugContext(ctx, "server certificate ignored by key system", "key_system", s.KeySystem())
		return nil
	}
	if s.certs != nil {
		if err := s.certs.Save(ctx, s.KeySystem(), cert); err != nil {
			return fmt.Errorf("store server certificate: %w", err)
		}
	}
	if err := s.adapter.SetServerCertificate(ctx, cert); err != nil {
		return err
	}
	if s.auditor != nil {
		_ = s.auditor.Emit(ctx, audit.Event{
			Action:    string(audit.EventServerCertificateSet),
			KeySystem: s.KeySystem(),
		})
	}
	return nil
}

// RestoreServerCertificate replays a stored certificate to the adapter. A
// missing certificate is not an error.
func (s *System) RestoreServerCertificate(ctx context.Context) error {
	if s.certs == nil || !s.adapter.SupportsServerCertificate() {
		return nil
	}
	cert, err := s.certs.Find(ctx, s.KeySystem())
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load server certificate: %w", err)
	}
	s.logger.DebugContext(ctx, "restoring server certificate", "key_system", s.KeySystem(), "bytes", len(cert))
	return s.adapter.SetServerCertificate(ctx, cert)
}

// CreateSession asks the adapter for a license session scoped to this system.
// The caller owns the returned reference.
func (s *System) CreateSession(ctx context.Context, req models.SessionRequest) (*session.Session, error) {
	if err := s.checkAlive(); err != nil {
		return nil, err
	}
	return session.New(ctx, s.registry, s, func(events ports.SessionEvents) (ports.AdapterSession, error) {
		return s.adapter.CreateSession(ctx, req, events)
	})
}

// Destruct marks the system unusable. Sessions still scoped to it are reported
// but left alive; their holders must release them.
func (s *System) Destruct(ctx context.Context) error {
	if !s.destructed.CompareAndSwap(false, true) {
		return fmt.Errorf("system %s already destructed: %w", s.KeySystem(), sentinel.ErrInvalidState)
	}
	s.registry.AuditOnSystemDestruction(ctx, s)
	return nil
}

// Destructed reports whether Destruct has run.
func (s *System) Destructed() bool {
	return s.destructed.Load()
}
