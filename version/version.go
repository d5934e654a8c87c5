// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

// Package version stamps the a85 and a85d programs.
package version

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/carlmjohnson/flagx"
	"github.com/carlmjohnson/versioninfo"
	"github.com/teal-finance/emo"
)

var log = emo.NewZone("version")

// V is set using the following link flag `-ldflags`:
//
//	v="$(git describe --tags --always --broken)"
//	go build -ldflags="-X 'github.com/teal-finance/a85/version.V=$v'" ./cmd/a85
//
//nolint:gochecknoglobals // This is set at build time
var V string

// Version format is "Program-1.2.3".
// If the program argument is empty, the format is "v1.2.3".
// If version is empty, Version uses V, then the main module version.
func Version(program, version string) string {
	if version == "" {
		version = V
		if version == "" {
			version = versioninfo.Short()
			if version == "" {
				version = "undefined-version"
			}
		}
	}

	if program != "" {
		program += "-"
		if len(version) > 1 && version[0] == 'v' {
			version = version[1:] // Skip the prefix "v"
		}
	}

	return program + version
}

// Info computes the version and (Git) commit information.
func Info(version string) []string {
	info := make([]string, 0, 3)

	if version == "" {
		version = Version("", "")
	}
	info = append(info, version)

	short := versioninfo.Short()
	if !strings.HasSuffix(version, short) {
		info = append(info, "ShortVersion: "+short)
	}

	if !versioninfo.LastCommit.IsZero() {
		ago := time.Since(versioninfo.LastCommit).Round(time.Minute)
		info = append(info, fmt.Sprint(
			"LastCommit: ", versioninfo.LastCommit.Format("2006-01-02 15:04:05"),
			" (", ago, " ago)"))
	}

	return info
}

// Log logs the version and (Git) commit information.
func Log(v string) {
	for i, line := range Info(v) {
		if i == 0 && v == "" {
			line = "Version: " + line
		}
		log.Info(line)
	}
}

// Print writes the version and (Git) commit information, one item per line.
func Print(w io.Writer, v string) {
	for _, line := range Info(v) {
		fmt.Fprintln(w, line)
	}
}

// SetFlag registers the -version flag (or flagName) in fs.
// The flag prints the version to w and then calls done,
// letting the caller decide how to exit.
func SetFlag(fs *flag.FlagSet, flagName, v string, w io.Writer, done func()) {
	if flagName == "" {
		flagName = "version" // default flag is: -version
	}

	flagx.BoolFunc(fs, flagName, "Print version and exit", func() error {
		Print(w, v)
		done()
		return nil
	})
}
