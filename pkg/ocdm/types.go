package ocdm

import (
	"ocdm/internal/cdm/models"
	"ocdm/internal/cdm/ports"
	"ocdm/internal/cdm/session"
)

// Error is the closed result enumeration returned by every entry point.
// Adapter specific codes outside the named set pass through unchanged.
type Error = models.Code

const (
	ErrorNone                    = models.CodeNone
	ErrorUnknown                 = models.CodeUnknown
	ErrorMoreDataAvailable       = models.CodeMoreDataAvailable
	ErrorInterfaceNotImplemented = models.CodeInterfaceNotImplemented
	ErrorBufferTooSmall          = models.CodeBufferTooSmall
	ErrorInvalidAccessor         = models.CodeInvalidAccessor
	ErrorKeySystemNotSupported   = models.CodeKeySystemNotSupported
	ErrorInvalidSession          = models.CodeInvalidSession
	ErrorInvalidDecryptBuffer    = models.CodeInvalidDecryptBuffer
	ErrorOutOfMemory             = models.CodeOutOfMemory
	ErrorFail                    = models.CodeFail
	ErrorInvalidArg              = models.CodeInvalidArg
)

type KeyStatus = models.KeyStatus

const (
	Pending                = models.KeyStatusPending
	Usable                 = models.KeyStatusUsable
	Released               = models.KeyStatusReleased
	Expired                = models.KeyStatusExpired
	OutputRestricted       = models.KeyStatusOutputRestricted
	OutputRestrictedHDCP22 = models.KeyStatusOutputRestrictedHDCP22
	OutputDownscaled       = models.KeyStatusOutputDownscaled
	HWError                = models.KeyStatusHWError
	InternalError          = models.KeyStatusInternalError
)

type (
	SessionRequest    = models.SessionRequest
	DecryptRequest    = models.DecryptRequest
	EncryptionScheme  = models.EncryptionScheme
	EncryptionPattern = models.EncryptionPattern
	SessionInfo       = session.Info

	Adapter          = ports.Adapter
	AdapterSession   = ports.AdapterSession
	SessionEvents    = ports.SessionEvents
	AuditPublisher   = ports.AuditPublisher
	CertificateStore = ports.CertificateStore
)

// MaxKeyIDLength is the longest key id a lookup can match.
const MaxKeyIDLength = 0xff
