package loopback

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"ocdm/internal/cdm/models"
	"ocdm/internal/cdm/ports"
)

// licenseMessage is the Update payload:
// {"keys":[{"kid":"<hex>","status":"usable","error":0}]}.
type licenseMessage struct {
	Keys []struct {
		KID    string `json:"kid"`
		Status string `json:"status"`
		Error  uint32 `json:"error,omitempty"`
	} `json:"keys"`
}

type keyState struct {
	id     models.KeyID
	status models.KeyStatus
}

type session struct {
	id       string
	bufferID string
	events   ports.SessionEvents
	logger   *slog.Logger

	mu       sync.Mutex
	keys     []keyState
	closed   bool
	released bool
	lastErr  error
}

func (s *session) SessionID() string { return s.id }
func (s *session) BufferID() string  { return s.bufferID }

func (s *session) Metadata() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf(`{"session_id":%q,"keys":%d}`, s.id, len(s.keys))
}

// report records status locally and forwards it. The local lock is not held
// across the callback.
func (s *session) report(kid models.KeyID, status models.KeyStatus) {
	s.mu.Lock()
	found := false
	for i := range s.keys {
		if s.keys[i].id.Matches(kid) {
			s.keys[i].status = status
			found = true
			break
		}
	}
	if !found {
		s.keys = append(s.keys, keyState{id: kid.Clone(), status: status})
	}
	s.mu.Unlock()

	s.events.OnKeyStatusUpdate(kid, status)
}

func (s *session) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.CodeInvalidSession
	}
	return nil
}

func (s *session) Load(context.Context) error {
	return s.checkOpen()
}

func (s *session) Update(_ context.Context, msg []byte) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	var license licenseMessage
	if err := json.Unmarshal(msg, &license); err != nil {
		s.setErr(models.CodeInvalidArg)
		return fmt.Errorf("decode license message: %w", models.CodeInvalidArg)
	}

	type update struct {
		kid    models.KeyID
		status models.KeyStatus
		code   uint32
	}
	updates := make([]update, 0, len(license.Keys))
	for _, k := range license.Keys {
		kid, err := models.ParseKeyID(k.KID)
		if err != nil || len(kid) == 0 {
			return fmt.Errorf("decode key id %q: %w", k.KID, models.CodeInvalidArg)
		}
		status, err := models.ParseKeyStatus(k.Status)
		if err != nil {
			return fmt.Errorf("key %s: %w", k.KID, models.CodeInvalidArg)
		}
		updates = append(updates, update{kid: kid, status: status, code: k.Error})
	}

	for _, u := range updates {
		if u.code != 0 {
			s.events.OnKeyError(u.kid, u.code)
		}
		s.report(u.kid, u.status)
	}
	s.logger.Debug("loopback license applied", "session_id", s.id, "keys", len(updates))
	return nil
}

// Remove marks every key released.
func (s *session) Remove(context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.mu.Lock()
	kids := make([]models.KeyID, 0, len(s.keys))
	for _, k := range s.keys {
		kids = append(kids, k.id)
	}
	s.mu.Unlock()

	for _, kid := range kids {
		s.report(kid, models.KeyStatusReleased)
	}
	return nil
}

func (s *session) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *session) ResetOutputProtection(context.Context) error {
	return s.checkOpen()
}

// Decrypt leaves the buffer untouched and succeeds when the key is usable.
func (s *session) Decrypt(_ context.Context, req *models.DecryptRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.CodeInvalidSession
	}
	for _, k := range s.keys {
		if k.id.Matches(req.KeyID) {
			if k.status == models.KeyStatusUsable {
				return nil
			}
			break
		}
	}
	return models.CodeInvalidSession
}

func (s *session) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

func (s *session) Error() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *session) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return
	}
	s.released = true
	s.closed = true
	s.logger.Debug("loopback session released", "session_id", s.id)
}
