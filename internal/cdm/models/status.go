package models

import (
	"fmt"
	"strings"
)

// KeyStatus is the state an adapter reports for one key of one session.
type KeyStatus uint8

const (
	KeyStatusPending KeyStatus = iota
	KeyStatusUsable
	KeyStatusReleased
	KeyStatusExpired
	KeyStatusOutputRestricted
	KeyStatusOutputRestrictedHDCP22
	KeyStatusOutputDownscaled
	KeyStatusHWError
	KeyStatusInternalError
)

var keyStatusNames = [...]string{
	KeyStatusPending:                "pending",
	KeyStatusUsable:                 "usable",
	KeyStatusReleased:               "released",
	KeyStatusExpired:                "expired",
	KeyStatusOutputRestricted:       "output_restricted",
	KeyStatusOutputRestrictedHDCP22: "output_restricted_hdcp22",
	KeyStatusOutputDownscaled:       "output_downscaled",
	KeyStatusHWError:                "hw_error",
	KeyStatusInternalError:          "internal_error",
}

func (s KeyStatus) String() string {
	if s.IsValid() {
		return keyStatusNames[s]
	}
	return fmt.Sprintf("key_status(%d)", uint8(s))
}

// IsValid reports whether s is one of the enumerated statuses.
func (s KeyStatus) IsValid() bool {
	return int(s) < len(keyStatusNames)
}

// ParseKeyStatus accepts the names produced by String, case-insensitively.
func ParseKeyStatus(name string) (KeyStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range keyStatusNames {
		if candidate == normalized {
			return KeyStatus(i), nil
		}
	}
	return KeyStatusInternalError, fmt.Errorf("unknown key status %q", name)
}
