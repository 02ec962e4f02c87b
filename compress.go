package sha2core

import "math/bits"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// The following collection of functions backend the SHA-256 compression function as published in
// FIPS 180-4 §6.2.2. Every index and every rotation below depends only on the round number, never
// on the state or the message, so control flow and memory access are the same for all inputs.

const rounds = 64

// Rotation and shift amounts of the four sigma functions, named after the word they act on.
const (
	sched0a, sched0b, sched0c = 7, 18, 3   /* σ0(w[i-15]); sched0c is a shift */
	sched1a, sched1b, sched1c = 17, 19, 10 /* σ1(w[i-2]); sched1c is a shift */
	round0a, round0b, round0c = 2, 13, 22  /* Σ0(A) */
	round1a, round1b, round1c = 6, 11, 25  /* Σ1(E) */
)

/* The first 32 bits of the fractional parts of the cube roots of the first 64 primes. */
var k = [rounds]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// Compress absorbs one 512-bit block into state. The caller owns both arguments and is
// responsible for starting from Initial() and for padding the final block; successive blocks of
// one message must be compressed in order, each call consuming the state left by the previous.
func Compress(state *State, block *Block) {
	var w [rounds]uint32
	expand(&w, block)

	v := [8]uint32(*state)
	for i := 0; i < rounds; i++ {
		step(&v, i, w[i])
	}

	/* Feed-forward. 64 rounds is a whole number of role rotations, so v[j] lines up with state[j]. */
	for j := range state {
		state[j] += v[j]
	}
}

// expand writes the 64-word message schedule of block into w.
func expand(w *[rounds]uint32, block *Block) {
	for i := 0; i < 16; i++ {
		w[i] = bigEndian(block[i])
	}
	for i := 16; i < rounds; i++ {
		w[i] = scheduleWord(w, i)
	}
}

// scheduleWord computes w[i] for 16 <= i < 64 from w[i-16], w[i-15], w[i-7] and w[i-2] alone.
func scheduleWord(w *[rounds]uint32, i int) uint32 {
	x, y := w[i-15], w[i-2]
	s0 := rotr(x, sched0a) ^ rotr(x, sched0b) ^ x>>sched0c
	s1 := rotr(y, sched1a) ^ rotr(y, sched1b) ^ y>>sched1c
	return w[i-16] + w[i-7] + s0 + s1
}

// step runs round i. Role r (A=0 … H=7) of round i lives in v[(r-i)&7], so the assignment rotates
// one position per round and only the D and H slots are written.
func step(v *[8]uint32, i int, wi uint32) {
	a, b, c := v[(0-i)&7], v[(1-i)&7], v[(2-i)&7]
	e, f, g := v[(4-i)&7], v[(5-i)&7], v[(6-i)&7]
	d, h := &v[(3-i)&7], &v[(7-i)&7]

	t1 := *h + (rotr(e, round1a) ^ rotr(e, round1b) ^ rotr(e, round1c)) + (g ^ e&(f^g)) + k[i] + wi
	*d += t1
	*h = t1 + (rotr(a, round0a) ^ rotr(a, round0b) ^ rotr(a, round0c)) + (a&(b|c) | b&c)
}

// rotr rotates x right by n bits; n is one of the constants above and always within [1,31].
func rotr(x uint32, n int) uint32 { return bits.RotateLeft32(x, -n) }
