// Package ports defines the collaborators the coordination layer consumes.
// Adapters implement the key-system specific work; the registry, sessions and
// systems only coordinate them.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks Adapter,AdapterSession,SessionEvents,AuditPublisher,CertificateStore

import (
	"context"

	"ocdm/internal/cdm/models"
	"ocdm/pkg/platform/audit"
)

// Adapter is a key-system back end. One Adapter serves one key system.
type Adapter interface {
	KeySystem() string
	Metadata() string
	IsTypeSupported(mimeType string) bool
	SupportsServerCertificate() bool

	// SetServerCertificate applies a certificate to every session the adapter
	// creates from now on.
	SetServerCertificate(ctx context.Context, cert []byte) error

	// CreateSession builds a license session. The adapter reports key status
	// changes through events for as long as the session lives.
	CreateSession(ctx context.Context, req models.SessionRequest, events SessionEvents) (AdapterSession, error)
}

// AdapterSession is the adapter side of one license session.
type AdapterSession interface {
	SessionID() string
	BufferID() string
	Metadata() string

	Load(ctx context.Context) error
	Update(ctx context.Context, msg []byte) error
	Remove(ctx context.Context) error
	Close(ctx context.Context) error
	ResetOutputProtection(ctx context.Context) error

	// Decrypt may rewrite req.Buffer in place.
	Decrypt(ctx context.Context, req *models.DecryptRequest) error

	// Error returns the last system level error of the session, if any.
	Error() error

	// Release frees adapter resources. It is called exactly once, after the
	// last reference to the session is dropped.
	Release()
}

// SessionEvents receives asynchronous notifications from an adapter session.
// Calls may arrive on any goroutine.
type SessionEvents interface {
	OnKeyStatusUpdate(keyID []byte, status models.KeyStatus)
	OnKeyError(keyID []byte, code uint32)
}

// AuditPublisher emits audit events for lifecycle and misuse signals.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// CertificateStore keeps the last server certificate per key system so it can
// be replayed when an adapter is (re)registered.
type CertificateStore interface {
	Save(ctx context.Context, keySystem string, cert []byte) error
	// Find returns sentinel.ErrNotFound when no certificate is stored.
	Find(ctx context.Context, keySystem string) ([]byte, error)
}
