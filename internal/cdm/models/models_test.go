package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocdm/pkg/platform/buffer"
	"ocdm/pkg/platform/sentinel"
)

func TestKeyID_Matches(t *testing.T) {
	registered := KeyID{0x01, 0x02, 0x03, 0x04}

	assert.True(t, registered.Matches([]byte{0x01, 0x02, 0x03, 0x04}), "natural orientation")
	assert.True(t, registered.Matches([]byte{0x04, 0x03, 0x02, 0x01}), "byte-reversed orientation")
	assert.False(t, registered.Matches([]byte{0x05, 0x06, 0x07, 0x08}))
	assert.False(t, registered.Matches([]byte{0x01, 0x02, 0x03}), "length mismatch")
	assert.False(t, registered.Matches([]byte{0x02, 0x01, 0x04, 0x03}), "partial swaps do not match")
}

func TestKeyID_ReversedDoesNotAlias(t *testing.T) {
	k := KeyID{0x0a, 0x0b}
	r := k.Reversed()

	assert.Equal(t, KeyID{0x0b, 0x0a}, r)
	r[0] = 0xff
	assert.Equal(t, KeyID{0x0a, 0x0b}, k)
}

func TestParseKeyID(t *testing.T) {
	k, err := ParseKeyID("0a0b0c")
	require.NoError(t, err)
	assert.Equal(t, KeyID{0x0a, 0x0b, 0x0c}, k)
	assert.Equal(t, "0a0b0c", k.String())

	_, err = ParseKeyID("zz")
	require.Error(t, err)
}

func TestKeyStatus_RoundTripNames(t *testing.T) {
	for s := KeyStatusPending; s <= KeyStatusInternalError; s++ {
		parsed, err := ParseKeyStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	parsed, err := ParseKeyStatus("  Usable ")
	require.NoError(t, err)
	assert.Equal(t, KeyStatusUsable, parsed)

	_, err = ParseKeyStatus("bogus")
	require.Error(t, err)
	assert.False(t, KeyStatus(42).IsValid())
	assert.Equal(t, "key_status(42)", KeyStatus(42).String())
}

func TestCodeOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, CodeNone},
		{"bare code", CodeInvalidDecryptBuffer, CodeInvalidDecryptBuffer},
		{"wrapped code", fmt.Errorf("adapter: %w", Code(0x1234)), Code(0x1234)},
		{"more data", buffer.ErrMoreDataAvailable, CodeMoreDataAvailable},
		{"not found", sentinel.ErrNotFound, CodeInvalidSession},
		{"invalid state", fmt.Errorf("release: %w", sentinel.ErrInvalidState), CodeInvalidSession},
		{"unavailable", sentinel.ErrUnavailable, CodeFail},
		{"anything else", errors.New("boom"), CodeUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CodeOf(tc.err))
		})
	}
}

func TestCode_Err(t *testing.T) {
	assert.NoError(t, CodeNone.Err())
	assert.ErrorIs(t, CodeFail.Err(), CodeFail)
	assert.Equal(t, "adapter code 0x00001234", Code(0x1234).String())
}
