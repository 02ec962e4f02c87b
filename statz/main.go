package main

import (
	. "fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aead/chacha20/chacha"
	"github.com/dterei/gotsc"
	sha256simd "github.com/minio/sha256-simd"
	"github.com/p7r0x7/sha2core"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var sizes = [...]int{64, 512 << 10, 64 << 20}
var bytes, calltime = []byte(nil), gotsc.TSCOverhead()

/* Sizes are whole blocks, so the compression lane needs no padding. */
func BenchmarkCompress(b *testing.B) {
	b.SetBytes(int64(len(bytes)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		compressAll(bytes)
	}
}

func BenchmarkCompressParallel(b *testing.B) {
	lanes := runtime.NumCPU()
	b.SetBytes(int64(len(bytes)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		var g errgroup.Group
		stride := len(bytes) / sha2core.BlockSize / lanes * sha2core.BlockSize
		if stride == 0 {
			stride = len(bytes)
		}
		for off := 0; off < len(bytes); off += stride {
			lane := bytes[off:min(off+stride, len(bytes))]
			g.Go(func() error {
				compressAll(lane)
				return nil
			})
		}
		_ = g.Wait()
	}
}

func BenchmarkSHA256(b *testing.B) {
	b.SetBytes(int64(len(bytes)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		sha256simd.Sum256(bytes)
	}
}

func BenchmarkBlake3(b *testing.B) {
	b.SetBytes(int64(len(bytes)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		blake3.Sum256(bytes)
	}
}

func BenchmarkXXH3(b *testing.B) {
	b.SetBytes(int64(len(bytes)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		xxh3.Hash(bytes)
	}
}

// compressAll chains every block of p through one state, in order.
func compressAll(p []byte) sha2core.State {
	s := sha2core.Initial()
	for ; len(p) >= sha2core.BlockSize; p = p[sha2core.BlockSize:] {
		blk := sha2core.LoadBlock((*[sha2core.BlockSize]byte)(p))
		sha2core.Compress(&s, &blk)
	}
	return s
}

// makeBytes fills a buffer of the given size from a ChaCha20 key stream so every run measures the
// same input.
func makeBytes(size int) []byte {
	key, nonce := make([]byte, chacha.KeySize), make([]byte, chacha.NonceSize)
	buf := make([]byte, size)
	chacha.XORKeyStream(buf, buf, nonce, key, 20)
	return buf
}

func benchAlg(alg func(b *testing.B)) {
	const s = len(sizes)
	throughputs, speeds, usages := make([]float64, s), make([]float64, s), make([]float64, s)

	for i, v := range sizes {
		bytes = makeBytes(v)

		totalHz, polls, mut, done := uint64(0), uint64(0), &sync.Mutex{}, make(chan struct{})
		if calltime > 0 {
			go func() {
				for {
					select {
					case <-done:
						return
					default:
					}
					tsc1 := gotsc.BenchStart()
					time.Sleep(time.Millisecond)
					tsc2 := gotsc.BenchEnd()

					mut.Lock()
					totalHz += tsc2 - tsc1 - calltime
					polls++
					mut.Unlock()

					time.Sleep(time.Millisecond * 9)
				}
			}()
		}
		r := testing.Benchmark(alg)
		close(done)
		mut.Lock()
		totalHz *= 1000

		throughputs[i] = float64(r.Bytes*int64(r.N)) / r.T.Seconds() /* B/s */
		if polls > 0 {
			speeds[i] = float64(totalHz) / float64(polls) / throughputs[i]
		}
		throughputs[i] /= 1e6 /* MB/s */
		usages[i] = float64(r.AllocedBytesPerOp())
		mut.Unlock()
	}

	Println("Speed " + fmtFloats(throughputs...) + "   MB/s")
	if calltime > 0 {
		Println("      " + fmtFloats(speeds...) + "   cpb")
	}
	Println("Usage " + fmtFloats(usages...) + "   B/op\n")
}

func fmtFloats(f ...float64) string {
	var str, style string
	for _, v := range f {
		switch whole := float64(int64(v)) == v; {
		case v > 1e8 || (v < 1e-6 && !whole):
			style = "%8.3g"
		case v <= 1e1 && !whole:
			style = "%8.6f"
		case v <= 1e2 && !whole:
			style = "%8.5f"
		case v <= 1e3 && !whole:
			style = "%8.4f"
		case v <= 1e4 && !whole:
			style = "%8.3f"
		case v <= 1e5 && !whole:
			style = "%8.2f"
		case v <= 1e6 && !whole:
			style = "%8.1f"
		default:
			style = "%8.f"
		}
		str += "  " + Sprintf(style, v)
	}
	return str
}

// features names the instruction set extensions the SHA-256 baselines can take advantage of.
func features() string {
	var have []string
	switch runtime.GOARCH {
	case "amd64", "386":
		for name, ok := range map[string]bool{
			"ssse3": cpu.X86.HasSSSE3, "sse4.1": cpu.X86.HasSSE41, "avx2": cpu.X86.HasAVX2,
		} {
			if ok {
				have = append(have, name)
			}
		}
	case "arm64":
		if cpu.ARM64.HasSHA2 {
			have = append(have, "sha2")
		}
	}
	if len(have) == 0 {
		return "none"
	}
	sort.Strings(have)
	return strings.Join(have, " ")
}

func main() {
	Printf("Running Statz on %d CPUs!\n%s/%s (%s)\n\n",
		runtime.NumCPU(), runtime.GOOS, runtime.GOARCH, features())
	t := time.Now()

	integers, random := monobit()
	Printf("Counter block Monobit test:  %5.3f%%\n", integers)
	Printf("Random block Monobit test:   %5.3f%%\n\n", random)

	Println("            64B      512K       64M")
	Println("github.com/p7r0x7/sha2core")
	benchAlg(BenchmarkCompress)

	Println("github.com/p7r0x7/sha2core (parallel lanes)")
	benchAlg(BenchmarkCompressParallel)

	Println("github.com/minio/sha256-simd")
	benchAlg(BenchmarkSHA256)

	Println("github.com/zeebo/blake3")
	benchAlg(BenchmarkBlake3)

	Println("github.com/zeebo/xxh3")
	benchAlg(BenchmarkXXH3)

	Println("Finished in " + time.Since(t).Truncate(time.Millisecond).String() + ".")
}
