package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"ocdm/internal/cdm/models"
	"ocdm/internal/cdm/ports"
	"ocdm/pkg/platform/audit"
	"ocdm/pkg/platform/sentinel"
)

// Owner identifies the system a session was created under. Sessions compare
// owners by identity and never keep them alive.
type Owner interface {
	KeySystem() string
}

// CreateFunc asks an adapter for a new session bound to events.
type CreateFunc func(events ports.SessionEvents) (ports.AdapterSession, error)

type keyEntry struct {
	id     models.KeyID
	status models.KeyStatus
	err    uint32
}

// Session is a reference counted handle over one adapter session.
//
// The session is registered on construction and unregistered when the last
// reference is released. Key status writes take the session lock only; the
// registry broadcast happens after it is dropped.
type Session struct {
	registry *Registry
	owner    Owner
	adapter  ports.AdapterSession

	id       string
	bufferID string

	refs atomic.Int32

	mu   sync.RWMutex
	keys []keyEntry
}

// New creates a session through create and registers it with registry.
// The caller holds the single initial reference.
//
// A duplicate session id is not an error: the registry keeps the session that
// was registered first and the returned handle stays unreachable by lookup.
func New(ctx context.Context, registry *Registry, owner Owner, create CreateFunc) (*Session, error) {
	s := &Session{registry: registry, owner: owner}
	s.refs.Store(1)

	adapterSession, err := create(sessionEvents{s})
	if err != nil {
		return nil, fmt.Errorf("create adapter session: %w", err)
	}
	if adapterSession == nil {
		return nil, fmt.Errorf("create adapter session: no session returned: %w", sentinel.ErrUnavailable)
	}
	s.adapter = adapterSession
	s.id = adapterSession.SessionID()
	s.bufferID = adapterSession.BufferID()

	registry.Add(ctx, s)
	return s, nil
}

func (s *Session) SessionID() string { return s.id }
func (s *Session) BufferID() string  { return s.bufferID }
func (s *Session) Metadata() string  { return s.adapter.Metadata() }

// KeySystem returns the key system of the owning system, or "" when the
// session was created without one.
func (s *Session) KeySystem() string {
	if s.owner == nil {
		return ""
	}
	return s.owner.KeySystem()
}

// BelongsTo reports whether owner is the system this session was created under.
func (s *Session) BelongsTo(owner Owner) bool {
	return s.owner != nil && s.owner == owner
}

// RefCount returns the current number of references.
func (s *Session) RefCount() int32 {
	return s.refs.Load()
}

// HasKeyID reports whether the adapter announced keyID for this session, in
// natural or reversed byte order.
func (s *Session) HasKeyID(keyID []byte) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(keyID) >= 0
}

// Status returns the last status reported for keyID. Unknown keys are pending.
func (s *Session) Status(keyID []byte) models.KeyStatus {
	status, _ := s.lookup(keyID)
	return status
}

// Error returns the last adapter error code reported for keyID, 0 if none.
func (s *Session) Error(keyID []byte) uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(keyID); i >= 0 {
		return s.keys[i].err
	}
	return 0
}

// SystemError returns the adapter's last session level error.
func (s *Session) SystemError() error {
	return s.adapter.Error()
}

func (s *Session) lookup(keyID []byte) (models.KeyStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(keyID); i >= 0 {
		return s.keys[i].status, true
	}
	return models.KeyStatusPending, false
}

func (s *Session) indexLocked(keyID []byte) int {
	for i := range s.keys {
		if s.keys[i].id.Matches(keyID) {
			return i
		}
	}
	return -1
}

func (s *Session) entryLocked(keyID []byte) *keyEntry {
	if i := s.indexLocked(keyID); i >= 0 {
		return &s.keys[i]
	}
	s.keys = append(s.keys, keyEntry{id: models.KeyID(keyID).Clone()})
	return &s.keys[len(s.keys)-1]
}

func (s *Session) setStatus(keyID []byte, status models.KeyStatus) {
	s.mu.Lock()
	s.entryLocked(keyID).status = status
	s.mu.Unlock()

	s.registry.broadcast()
}

func (s *Session) setError(keyID []byte, code uint32) {
	s.mu.Lock()
	s.entryLocked(keyID).err = code
	s.mu.Unlock()

	s.registry.broadcast()
}

func (s *Session) keySnapshot() []KeyInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]KeyInfo, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, KeyInfo{KeyID: k.id.String(), Status: k.status.String(), Error: k.err})
	}
	return out
}

func (s *Session) Load(ctx context.Context) error {
	return s.adapter.Load(ctx)
}

func (s *Session) Update(ctx context.Context, msg []byte) error {
	return s.adapter.Update(ctx, msg)
}

// Remove asks the adapter to remove the stored license. The handle stays
// valid and registered.
func (s *Session) Remove(ctx context.Context) error {
	return s.adapter.Remove(ctx)
}

func (s *Session) Close(ctx context.Context) error {
	return s.adapter.Close(ctx)
}

func (s *Session) ResetOutputProtection(ctx context.Context) error {
	return s.adapter.ResetOutputProtection(ctx)
}

// Decrypt hands req to the adapter, which may rewrite req.Buffer in place.
// An empty buffer succeeds without reaching the adapter.
func (s *Session) Decrypt(ctx context.Context, req *models.DecryptRequest) error {
	if req == nil {
		return models.CodeInvalidDecryptBuffer
	}
	if len(req.Buffer) == 0 {
		s.registry.metrics.ObserveDecrypt(models.CodeNone.String())
		return nil
	}
	err := s.adapter.Decrypt(ctx, req)
	s.registry.metrics.ObserveDecrypt(models.CodeOf(err).String())
	return err
}

// AddRef takes an additional reference. It fails once the session has been
// released to zero.
func (s *Session) AddRef() error {
	if !s.tryAddRef() {
		return fmt.Errorf("add reference to session %s: %w", s.id, sentinel.ErrInvalidState)
	}
	return nil
}

func (s *Session) tryAddRef() bool {
	for {
		n := s.refs.Load()
		if n <= 0 {
			return false
		}
		if s.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Release drops one reference. Dropping the last one unregisters the session
// and releases the adapter session.
func (s *Session) Release() error {
	for {
		n := s.refs.Load()
		if n <= 0 {
			return fmt.Errorf("release session %s: %w", s.id, sentinel.ErrInvalidState)
		}
		if s.refs.CompareAndSwap(n, n-1) {
			if n == 1 {
				s.destroy()
			}
			return nil
		}
	}
}

func (s *Session) destroy() {
	r := s.registry
	r.unregister(s)
	s.adapter.Release()

	r.metrics.IncSessionsDestroyed()
	r.logger.Debug("session destroyed", "session_id", s.id, "key_system", s.KeySystem())
	r.emit(context.Background(), audit.EventSessionDestroyed, s, "")
}

// sessionEvents routes adapter callbacks into the session. It keeps the
// callback methods off the exported Session surface.
type sessionEvents struct {
	s *Session
}

func (e sessionEvents) OnKeyStatusUpdate(keyID []byte, status models.KeyStatus) {
	e.s.setStatus(keyID, status)
}

func (e sessionEvents) OnKeyError(keyID []byte, code uint32) {
	e.s.setError(keyID, code)
}
