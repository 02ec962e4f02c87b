package sha2core

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBlock_HostOrder(t *testing.T) {
	t.Parallel()
	p := [BlockSize]byte{0xde, 0xad, 0xbe, 0xef}
	b := LoadBlock(&p)
	assert.Equal(t, binary.NativeEndian.Uint32(p[:]), b[0])
	assert.Equal(t, uint32(0xdeadbeef), bigEndian(b[0]))
	for _, w := range b[1:] {
		assert.Zero(t, w)
	}
}

func TestState_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t,
		"6a09e667bb67ae853c6ef372a54ff53a510e527f9b05688c1f83d9ab5be0cd19", Initial().String())

	s, err := ParseState(Initial().String())
	require.NoError(t, err)
	assert.Equal(t, Initial(), s)

	s, err = ParseState(strings.ToUpper(Initial().String()))
	require.NoError(t, err)
	assert.Equal(t, Initial(), s)
}

func TestParseState_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name, in string
		want     error
	}{
		{"empty", "", ErrStateLength},
		{"short", strings.Repeat("0", 63), ErrStateLength},
		{"long", strings.Repeat("0", 66), ErrStateLength},
		{"not hex", strings.Repeat("g", 64), ErrStateEncoding},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseState(tc.in)
			require.Error(t, err)
			assert.Equal(t, tc.want, errors.Cause(err))
		})
	}
}
