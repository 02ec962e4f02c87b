package main

import (
	"encoding/base64"
	"encoding/hex"
	. "fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/p7r0x7/sha2core"
	"github.com/p7r0x7/vainpath"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	. "github.com/spf13/pflag"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const n = "\n"
const success, failure, invalid = 0, 1, 2

var warnings, stdinRead = 0, false

func main() {
	configure()
	os.Exit(program())
}

// help prints a usage menu. To consistently render this menu in most terminal windows, its content
// should be no wider than 80 columns.
func help() {
	origin, err := os.Executable()
	if err != nil {
		origin = "shacomp" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	Fprint(os.Stderr, yell, "The SHA-256 compression function, one block per target.", zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "[-bct] [-S <state>] [--quiet|no-codes] [--strict] -|PATH..."+n,
		spaces, "[-bct] [-S <state>] [--quiet|no-codes] [--strict] -s STRING..."+n,
		spaces, "[-bct] [-S <state>] [--quiet|no-codes] [--strict] -x HEX..."+n+n+
			"Options:"+n)
	PrintDefaults()
	name = vainpath.Trim(origin, "…", 15)
	Fprint(os.Stderr, n+"Every target must hold exactly 64 bytes; no padding is applied. Order of"+n+
		"arguments placed after `", name, "` does not matter unless `--` is specified."+n+
		"`-` is treated as a reference to ", os.Stdin.Name(), " on this platform."+n)
}

// This program is a command-line interface for sha2core: it compresses one 512-bit block per
// target into the starting state and prints the resulting chaining value.
func program() int {
	if pHelp || NArg() == 0 {
		help()
		return success
	}

	start := sha2core.Initial()
	if pState != "" {
		s, err := sha2core.ParseState(pState)
		if err != nil {
			log.WithError(err).Error("invalid --state")
			return invalid
		}
		start = s
	}

	state := start
	for _, target := range Args() {
		if !pChain {
			state = start
		}
		begin, delta := time.Now(), ""

		block, err := readBlock(target)
		if err != nil {
			warn(target, err)
			continue
		}
		sha2core.Compress(&state, &block)

		d := time.Since(begin)
		log.WithFields(logrus.Fields{"target": target, "elapsed": d}).Debug("compressed")
		if pTime {
			if d.Microseconds() > 99 {
				d = d.Truncate(10 * time.Microsecond)
			}
			delta = " (" + d.String() + ")"
		}

		out := state.String()
		if pBase64 {
			raw := state.Bytes()
			out = base64.StdEncoding.EncodeToString(raw[:])
		}

		switch {
		case pQuiet:
			Print(out, n)
		case pString || pHex:
			Print(yell, out, zero, `  "`, target, `"`, delta, n)
		case pNoCodes:
			Print(out, `  `, filepath.Clean(target), delta, n)
		default:
			Print(yell, out, zero, `  `, und, vainpath.Simplify(target), zero, delta, n)
		}
	}

	if !pQuiet {
		if warnings == 1 {
			Fprint(os.Stderr, "1 ", purp, "target is inaccessible or is not a single block.", zero, n)
		} else if warnings > 1 {
			Fprint(os.Stderr, warnings, " ", purp, "targets are inaccessible or are not single blocks.", zero, n)
		}
	}
	if warnings > 0 {
		return failure
	}
	return success
}

// readBlock resolves target to exactly one block in the representation sha2core.Compress expects.
func readBlock(target string) (sha2core.Block, error) {
	var raw []byte
	var err error
	switch {
	case pString:
		raw = []byte(target)
	case pHex:
		if raw, err = hex.DecodeString(target); err != nil {
			return sha2core.Block{}, errors.Wrap(err, "decode hex block")
		}
	case target == "-" || target == os.Stdin.Name():
		if stdinRead {
			return sha2core.Block{}, errors.New("standard input was already read")
		}
		stdinRead = true
		/* Reading one byte past a block is enough to reject oversized input. */
		raw, err = io.ReadAll(io.LimitReader(os.Stdin, sha2core.BlockSize+1))
		go os.Stdin.Close() /* STDIN should not be reused. */
	default:
		var file *os.File
		if file, err = os.Open(target); err != nil {
			return sha2core.Block{}, errors.Wrap(err, "open")
		}
		raw, err = io.ReadAll(io.LimitReader(file, sha2core.BlockSize+1))
		go file.Close()
	}
	if err != nil {
		return sha2core.Block{}, errors.Wrap(err, "read")
	}
	if len(raw) != sha2core.BlockSize {
		return sha2core.Block{}, errors.Errorf("holds %s bytes, want %d", size(len(raw)), sha2core.BlockSize)
	}
	return sha2core.LoadBlock((*[sha2core.BlockSize]byte)(raw)), nil
}

func size(l int) string {
	if l > sha2core.BlockSize {
		return Sprint("more than ", sha2core.BlockSize)
	}
	return Sprint(l)
}

func warn(target string, err error) {
	if pStrict {
		panic(err)
	}
	log.WithField("target", target).Warn(err)
	warnings++
}
