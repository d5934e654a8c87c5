// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

// Package main encodes stdin to Ascii85 (-e, default) or decodes it (-d).
//
//	echo -n 'Hello, World!' | a85         # 87cURD_*#4DfTZ)+T
//	echo -n '87cURD_*#4DfTZ)+T' | a85 -d  # Hello, World!
//	a85 -c zst < big.json > big.a85       # compress, then encode
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/teal-finance/emo"

	"github.com/teal-finance/a85/a85"
	"github.com/teal-finance/a85/gg"
	"github.com/teal-finance/a85/version"
)

var log = emo.NewZone("a85")

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type config struct {
	decode   bool
	btoa     bool
	verbose  bool
	compress string
	level    int
	maxBytes int
}

// defaultMaxBytes bounds the decompressed output of -d -c.
const defaultMaxBytes = 1 << 30

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, code, ok := parseFlags(args, stdout, stderr)
	if !ok {
		return code
	}

	in, err := io.ReadAll(stdin)
	if err != nil {
		fmt.Fprintln(stderr, "a85: cannot read stdin:", err)
		return exitFailure
	}

	start := time.Now()

	var out []byte
	if cfg.decode {
		out, err = decode(in, cfg)
	} else {
		out, err = encode(in, cfg)
	}

	if err != nil {
		fmt.Fprintln(stderr, diagnostic(err))
		if cfg.verbose {
			log.Warnf("Rejected input %s", gg.Obfuscate(in))
		}
		return exitFailure
	}

	if cfg.verbose {
		log.Infof("%s => %s in %v", gg.ConvertSize(len(in)), gg.ConvertSize(len(out)), time.Since(start))
	}

	if _, err := stdout.Write(out); err != nil {
		fmt.Fprintln(stderr, "a85: cannot write stdout:", err)
		return exitFailure
	}

	return exitOK
}

// parseFlags returns ok=false when run must stop with the returned exit code.
func parseFlags(args []string, stdout, stderr io.Writer) (cfg config, code int, ok bool) {
	fs := flag.NewFlagSet("a85", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: a85 [-e | -d] [-z] [-c format [-level n] [-max bytes]] [-v] < input > output")
		fs.PrintDefaults()
	}

	encodeMode := fs.Bool("e", false, "Encode stdin to Ascii85 (default)")
	fs.BoolVar(&cfg.decode, "d", false, "Decode Ascii85 from stdin")
	fs.BoolVar(&cfg.btoa, "z", false, "Abbreviate four zero bytes as 'z' (btoa variant)")
	fs.BoolVar(&cfg.verbose, "v", false, "Log sizes and timing on stderr")
	fs.StringVar(&cfg.compress, "c", "", "Compression format: br, gz, s2, sz, zst (and bz2 to decode only)")
	fs.IntVar(&cfg.level, "level", gg.EnvInt("A85_LEVEL", 5), "Compression level")
	fs.IntVar(&cfg.maxBytes, "max", defaultMaxBytes, "Max decompressed size in bytes")

	printed := false
	version.SetFlag(fs, "", version.Version("a85", ""), stdout, func() { printed = true })

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, exitOK, false
		}
		return cfg, exitUsage, false
	}

	if printed {
		return cfg, exitOK, false
	}

	if *encodeMode && cfg.decode {
		fmt.Fprintln(stderr, "a85: -e and -d are mutually exclusive")
		fs.Usage()
		return cfg, exitUsage, false
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "a85: unexpected argument %q, the input is read from stdin\n", fs.Arg(0))
		fs.Usage()
		return cfg, exitUsage, false
	}

	if cfg.maxBytes <= 0 {
		fmt.Fprintln(stderr, "a85: -max must be positive")
		fs.Usage()
		return cfg, exitUsage, false
	}

	cfg.compress = gg.NormalizeExt(cfg.compress)
	return cfg, exitOK, true
}

func encoding(cfg config) *a85.Encoding {
	if cfg.btoa {
		return a85.BtoaEncoding
	}
	return a85.StdEncoding
}

func encode(in []byte, cfg config) ([]byte, error) {
	bin, err := gg.Compress(in, cfg.compress, cfg.level)
	if err != nil {
		return nil, err
	}
	return encoding(cfg).Encode(bin), nil
}

func decode(in []byte, cfg config) ([]byte, error) {
	bin, err := encoding(cfg).Decode(in)
	if err != nil {
		return nil, err
	}
	return gg.Decompress(bin, cfg.compress, cfg.maxBytes)
}

// diagnostic formats the single stderr line of a failure.
func diagnostic(err error) string {
	var corrupt *a85.CorruptInputError
	if errors.As(err, &corrupt) {
		return fmt.Sprintf("%v (%s)", err, corrupt.Kind())
	}
	return fmt.Sprintf("a85: %v", err)
}
