package main

import (
	"testing"

	"github.com/p7r0x7/sha2core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressAll_TwoBlocks(t *testing.T) {
	/* "abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq" after padding. */
	msg := []byte("abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq")
	p := make([]byte, 2*sha2core.BlockSize)
	copy(p, msg)
	p[len(msg)] = 0x80
	p[len(p)-2], p[len(p)-1] = 0x01, 0xc0 /* 448 bits */

	s := compressAll(p)
	assert.Equal(t, "248d6a61d20638b8e5c026930c3e6039a33ce45964ff2167f6ecedd419db06c1", s.String())
}

func TestMeanBias(t *testing.T) {
	/* Every bit set in every state is the worst possible bias. */
	all := make([]sha2core.State, 4)
	for i := range all {
		for j := range all[i] {
			all[i][j] = ^uint32(0)
		}
	}
	assert.InDelta(t, 100, meanBias(all), 1e-9)

	/* Alternating complements are perfectly balanced. */
	half := make([]sha2core.State, 4)
	for i := range half {
		for j := range half[i] {
			if i&1 == 0 {
				half[i][j] = 0x5a5a5a5a
			} else {
				half[i][j] = 0xa5a5a5a5
			}
		}
	}
	assert.Zero(t, meanBias(half))
}

func TestMakeBytes_Deterministic(t *testing.T) {
	a, b := makeBytes(256), makeBytes(256)
	require.Len(t, a, 256)
	assert.Equal(t, a, b)
	assert.NotEqual(t, make([]byte, 256), a)
}
