package sha2core

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/pkg/errors"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Fixed-size types handed to Compress, and the one place where byte order matters.

const (
	// BlockSize is the size of one message block in bytes.
	BlockSize = 64
	// StateSize is the size of a chaining value in bytes.
	StateSize = 32
)

// State is the 256-bit chaining value a..h carried from block to block.
type State [8]uint32

// Block is one 512-bit message chunk. Each word holds four message bytes in host memory order,
// exactly as they sit in the caller's buffer; Compress performs the conversion to big-endian.
type Block [16]uint32

var (
	ErrStateLength   = errors.New("sha2core: state must be 64 hexadecimal digits")
	ErrStateEncoding = errors.New("sha2core: state is not hexadecimal")
)

// Initial returns the SHA-256 initial hash value of FIPS 180-4 §5.3.3.
func Initial() State {
	return State{
		0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
		0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
	}
}

// LoadBlock packs p into words without reordering its bytes, which is what reinterpreting the
// buffer in place would give on this host.
func LoadBlock(p *[BlockSize]byte) (b Block) {
	for i := range b {
		b[i] = binary.NativeEndian.Uint32(p[i<<2:])
	}
	return b
}

// bigEndian reads the four bytes stored in w as a big-endian integer. On little-endian hosts this
// compiles to a byte swap; on big-endian hosts it is the identity.
func bigEndian(w uint32) uint32 {
	var tmp [4]byte
	binary.NativeEndian.PutUint32(tmp[:], w)
	return binary.BigEndian.Uint32(tmp[:])
}

// Bytes serializes s big-endian word by word. After the last padded block this is the digest.
func (s State) Bytes() (out [StateSize]byte) {
	for i, v := range s {
		binary.BigEndian.PutUint32(out[i<<2:], v)
	}
	return out
}

func (s State) String() string {
	b := s.Bytes()
	return hex.EncodeToString(b[:])
}

// ParseState reads the 64-digit hexadecimal form produced by State.String.
func ParseState(str string) (State, error) {
	var s State
	if len(str) != StateSize*2 {
		return s, errors.Wrapf(ErrStateLength, "got %d digits", len(str))
	}
	raw, err := hex.DecodeString(str)
	if err != nil {
		return s, errors.Wrap(ErrStateEncoding, err.Error())
	}
	for i := range s {
		s[i] = binary.BigEndian.Uint32(raw[i<<2:])
	}
	return s, nil
}
