package models

import (
	"bytes"
	"encoding/hex"
	"slices"
)

// KeyID identifies one decryption key within a session.
//
// Upstream producers disagree on the byte order of key ids, so a match is
// accepted in the natural orientation and fully byte-reversed.
type KeyID []byte

// Matches reports whether other names the same key as k in either orientation.
func (k KeyID) Matches(other []byte) bool {
	if len(k) != len(other) {
		return false
	}
	if bytes.Equal(k, other) {
		return true
	}
	for i, b := range k {
		if other[len(other)-1-i] != b {
			return false
		}
	}
	return true
}

// Reversed returns a byte-reversed copy of k.
func (k KeyID) Reversed() KeyID {
	out := slices.Clone(k)
	slices.Reverse(out)
	return out
}

// Clone returns a copy that does not alias the caller's slice.
func (k KeyID) Clone() KeyID {
	return slices.Clone(k)
}

func (k KeyID) String() string {
	return hex.EncodeToString(k)
}

// ParseKeyID decodes a hex encoded key id.
func ParseKeyID(s string) (KeyID, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return KeyID(raw), nil
}
