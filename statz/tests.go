package main

import (
	"encoding/binary"
	"math/bits"

	"github.com/p7r0x7/sha2core"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const ints = uint32(5e4)

// meanBias returns the average distance, in percent of the ideal, of each output bit's one-count
// from half the sample size.
func meanBias(states []sha2core.State) float64 {
	var tally [256]int64
	for _, s := range states {
		for w, v := range s {
			for ; v != 0; v &= v - 1 {
				tally[w<<5+bits.TrailingZeros32(v)]++
			}
		}
	}
	half := int64(len(states)) >> 1
	var total int64
	for _, c := range tally {
		if c -= half; c < 0 {
			c = -c
		}
		total += c
	}
	return float64(total) / float64(len(tally)) / float64(half) * 100
}

// monobit compresses counter blocks and ChaCha20 blocks from the initial state and reports the bias
// of each population.
func monobit() (integers, random float64) {
	counters, randoms := make([]sha2core.State, ints), make([]sha2core.State, ints)
	noise := makeBytes(int(ints) * sha2core.BlockSize)
	var p [sha2core.BlockSize]byte
	for i := ints; i > 0; i-- {
		binary.BigEndian.PutUint32(p[:], i)
		blk := sha2core.LoadBlock(&p)
		counters[i-1] = sha2core.Initial()
		sha2core.Compress(&counters[i-1], &blk)

		blk = sha2core.LoadBlock((*[sha2core.BlockSize]byte)(noise[(i-1)*sha2core.BlockSize:]))
		randoms[i-1] = sha2core.Initial()
		sha2core.Compress(&randoms[i-1], &blk)
	}
	return meanBias(counters), meanBias(randoms)
}
