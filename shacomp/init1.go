package main

import (
	"os"

	"github.com/sirupsen/logrus"
	. "github.com/spf13/pflag"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var pState, pNoCodesDefault = "", false
var pHelp, pBase64, pChain, pDebug, pHex, pNoCodes, pQuiet, pStrict, pString, pTime bool
var yell, purp, und, zero = "\033[33m", "\033[35m", "\033[4m", "\033[0m"

var log = logrus.New()

func init() {
	scan(os.Args[1:])

	BoolVarP(&pHelp, "help", "h", false,
		purp+"print this help menu"+zero+n)

	BoolVarP(&pBase64, "base64", "b", false,
		purp+"render states in base64"+zero+" (default hex)")

	BoolVarP(&pChain, "chain", "c", false,
		purp+"feed each resulting state into the next target"+zero)

	BoolVar(&pDebug, "debug", false,
		purp+"log per-target diagnostics to stderr"+zero)

	BoolVarP(&pHex, "hex", "x", false,
		purp+"process arguments instead as 128-digit hex blocks"+zero)

	Bool("no-codes", pNoCodesDefault,
		purp+"print to console w/o formatting codes or simplified"+zero+
			n+purp+"filepaths"+zero)

	Bool("quiet", false,
		purp+"suppress non-breaking errors and print ONLY states"+zero+
			n+"(enables --no-codes)")

	StringVarP(&pState, "state", "S", "",
		purp+"starting chaining value as 64 hex digits"+zero+
			n+"(default SHA-256 initial hash value)")

	BoolVar(&pStrict, "strict", false,
		purp+"cause shacomp to panic on any error"+zero)

	BoolVarP(&pString, "string", "s", false,
		purp+"process arguments instead as 64-byte strings"+zero)

	BoolVarP(&pTime, "time", "t", false,
		purp+"print time taken to read and compress each block"+zero)

	/* Order flags alphabetically except for help, which is hoisted to the top. */
	CommandLine.SortFlags = false
}

// scan settles quiet mode and formatting codes ahead of flag parsing, since flag usage strings
// are built with the codes already applied.
func scan(args []string) {
	pNoCodes, pQuiet = pNoCodesDefault, false
	for _, arg := range args {
		switch arg {
		case "--no-codes=false":
			pNoCodes = false
		case "--quiet", "--quiet=true":
			pNoCodes, pQuiet = true, true
		case "--no-codes", "--no-codes=true":
			pNoCodes = true
		}
	}
	yell, purp, und, zero = "\033[33m", "\033[35m", "\033[4m", "\033[0m"
	if pNoCodes {
		yell, purp, und, zero = "", "", "", ""
	}
}

// configure parses the command line and points log at stderr at the level the flags ask for.
func configure() {
	Parse()
	log.Out = os.Stderr
	log.Formatter = &logrus.TextFormatter{DisableColors: pNoCodes, DisableTimestamp: true}
	switch {
	case pDebug:
		log.Level = logrus.DebugLevel
	case pQuiet:
		log.Level = logrus.ErrorLevel
	default:
		log.Level = logrus.WarnLevel
	}
}
