package models

import (
	"errors"
	"fmt"

	"ocdm/pkg/platform/buffer"
	"ocdm/pkg/platform/sentinel"
)

// Code is the stable result enumeration shared with callers of the facade.
// Adapters may return codes outside the named set; they pass through as-is.
type Code uint32

const (
	CodeNone                    Code = 0
	CodeUnknown                 Code = 1
	CodeMoreDataAvailable       Code = 2
	CodeInterfaceNotImplemented Code = 3
	CodeBufferTooSmall          Code = 4
	CodeInvalidAccessor         Code = 0x80000001
	CodeKeySystemNotSupported   Code = 0x80000002
	CodeInvalidSession          Code = 0x80000003
	CodeInvalidDecryptBuffer    Code = 0x80000004
	CodeOutOfMemory             Code = 0x80000005
	CodeFail                    Code = 0x80004005
	CodeInvalidArg              Code = 0x80070057
)

var codeNames = map[Code]string{
	CodeNone:                    "none",
	CodeUnknown:                 "unknown",
	CodeMoreDataAvailable:       "more data available",
	CodeInterfaceNotImplemented: "interface not implemented",
	CodeBufferTooSmall:          "buffer too small",
	CodeInvalidAccessor:         "invalid accessor",
	CodeKeySystemNotSupported:   "key system not supported",
	CodeInvalidSession:          "invalid session",
	CodeInvalidDecryptBuffer:    "invalid decrypt buffer",
	CodeOutOfMemory:             "out of memory",
	CodeFail:                    "fail",
	CodeInvalidArg:              "invalid argument",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("adapter code 0x%08x", uint32(c))
}

// Error lets adapters return a Code directly as an error value.
func (c Code) Error() string {
	return c.String()
}

// Err converts c to an error, mapping CodeNone to nil.
func (c Code) Err() error {
	if c == CodeNone {
		return nil
	}
	return c
}

// CodeOf maps an error from the coordination layer or an adapter onto the
// result enumeration.
func CodeOf(err error) Code {
	if err == nil {
		return CodeNone
	}
	var code Code
	if errors.As(err, &code) {
		return code
	}
	switch {
	case errors.Is(err, buffer.ErrMoreDataAvailable):
		return CodeMoreDataAvailable
	case errors.Is(err, sentinel.ErrNotFound):
		return CodeInvalidSession
	case errors.Is(err, sentinel.ErrInvalidState):
		return CodeInvalidSession
	case errors.Is(err, sentinel.ErrUnavailable):
		return CodeFail
	}
	return CodeUnknown
}
