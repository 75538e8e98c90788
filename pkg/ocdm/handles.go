package ocdm

import (
	"context"

	"ocdm/internal/cdm/models"
	"ocdm/internal/cdm/session"
	"ocdm/internal/cdm/system"
	"ocdm/pkg/platform/buffer"
)

// System is an opaque key-system handle.
type System struct {
	sys *system.System
}

// Session is an opaque session handle. Each handle returned by the accessor
// carries one reference.
type Session struct {
	s *session.Session
}

// KeySystem returns the key system name, "" for a nil handle.
func (sys *System) KeySystem() string {
	if sys == nil || sys.sys == nil {
		return ""
	}
	return sys.sys.KeySystem()
}

// SystemMetadata copies the system metadata into dst using the size-query
// protocol: a nil dst reports the required size in *size.
func SystemMetadata(sys *System, dst []byte, size *uint16) Error {
	if sys == nil || sys.sys == nil || size == nil {
		return ErrorInvalidAccessor
	}
	return models.CodeOf(buffer.CopyString(sys.sys.Metadata(), dst, size))
}

// SystemSupportsServerCertificate reports whether the key system takes a
// system-wide server certificate.
func SystemSupportsServerCertificate(sys *System) bool {
	return sys != nil && sys.sys != nil && sys.sys.SupportsServerCertificate()
}

func valid(s *Session) bool {
	return s != nil && s.s != nil
}

// DestructSession drops the reference held by s. The handle must not be used
// afterwards.
func DestructSession(s *Session) Error {
	if !valid(s) {
		return ErrorInvalidSession
	}
	return models.CodeOf(s.s.Release())
}

// SessionAddRef takes another reference; balance it with DestructSession.
func SessionAddRef(s *Session) Error {
	if !valid(s) {
		return ErrorInvalidSession
	}
	return models.CodeOf(s.s.AddRef())
}

func SessionLoad(ctx context.Context, s *Session) Error {
	if !valid(s) {
		return ErrorInvalidSession
	}
	return models.CodeOf(s.s.Load(ctx))
}

// SessionUpdate hands a license response to the adapter.
func SessionUpdate(ctx context.Context, s *Session, msg []byte) Error {
	if !valid(s) {
		return ErrorInvalidSession
	}
	return models.CodeOf(s.s.Update(ctx, msg))
}

func SessionRemove(ctx context.Context, s *Session) Error {
	if !valid(s) {
		return ErrorInvalidSession
	}
	return models.CodeOf(s.s.Remove(ctx))
}

func SessionClose(ctx context.Context, s *Session) Error {
	if !valid(s) {
		return ErrorInvalidSession
	}
	return models.CodeOf(s.s.Close(ctx))
}

func SessionResetOutputProtection(ctx context.Context, s *Session) Error {
	if !valid(s) {
		return ErrorInvalidSession
	}
	return models.CodeOf(s.s.ResetOutputProtection(ctx))
}

// SessionDecrypt decrypts req.Buffer in place. An empty buffer succeeds
// immediately.
func SessionDecrypt(ctx context.Context, s *Session, req *DecryptRequest) Error {
	if !valid(s) {
		return ErrorInvalidSession
	}
	return models.CodeOf(s.s.Decrypt(ctx, req))
}

// SessionMetadata copies the session metadata into dst using the size-query
// protocol.
func SessionMetadata(s *Session, dst []byte, size *uint16) Error {
	if !valid(s) || size == nil {
		return ErrorInvalidSession
	}
	return models.CodeOf(buffer.CopyString(s.s.Metadata(), dst, size))
}

// SessionID returns the session id, "" for a nil handle.
func SessionID(s *Session) string {
	if !valid(s) {
		return ""
	}
	return s.s.SessionID()
}

// SessionBufferID returns the buffer id, "" for a nil handle.
func SessionBufferID(s *Session) string {
	if !valid(s) {
		return ""
	}
	return s.s.BufferID()
}

// SessionHasKeyID reports whether the session knows keyID in either byte order.
func SessionHasKeyID(s *Session, keyID []byte) bool {
	if !valid(s) || len(keyID) > MaxKeyIDLength {
		return false
	}
	return s.s.HasKeyID(keyID)
}

// SessionStatus returns the status of keyID. Nil handles report InternalError.
func SessionStatus(s *Session, keyID []byte) KeyStatus {
	if !valid(s) || len(keyID) > MaxKeyIDLength {
		return InternalError
	}
	return s.s.Status(keyID)
}

// SessionError returns the adapter error code for keyID. Nil handles report
// all bits set.
func SessionError(s *Session, keyID []byte) uint32 {
	if !valid(s) || len(keyID) > MaxKeyIDLength {
		return ^uint32(0)
	}
	return s.s.Error(keyID)
}

// SessionSystemError returns the session level adapter error as a code.
func SessionSystemError(s *Session) Error {
	if !valid(s) {
		return ErrorInvalidSession
	}
	return models.CodeOf(s.s.SystemError())
}
