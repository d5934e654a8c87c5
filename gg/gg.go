// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

// Package gg is the A85 toolbox: configuration from environment variables,
// log-safe strings, compression formats and HTTP middleware chaining.
package gg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/teal-finance/emo"
)

var log = emo.NewZone("gg")

// EnvStr returns the value of the environment variable,
// or the fallback (default "") when the variable is unset.
func EnvStr(name string, fallback ...string) string {
	if value, ok := os.LookupEnv(name); ok {
		return value
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return ""
}

// EnvInt parses the environment variable as an integer.
// An unset or empty variable gives the fallback (default 0).
// EnvInt panics when the value is not an integer.
func EnvInt(name string, fallback ...int) int {
	if str := os.Getenv(name); str != "" {
		n, err := strconv.Atoi(str)
		if err != nil {
			log.Panicf("%s=%q is not an integer: %v", name, str, err)
		}
		return n
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return 0
}

// SplitClean splits a list separated by commas, semicolons or white spaces
// and sanitizes the items. Empty items are dropped.
func SplitClean(list string) []string {
	items := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	for i, item := range items {
		items[i] = Sanitize(item)
	}
	return items
}

// ConvertSize prints a size in bytes with a binary unit (KiB, MiB...),
// as in the -v logs and the "max" detail of a 413 response.
func ConvertSize(bytes int) string {
	if bytes < 1024 {
		return strconv.Itoa(bytes) + " B"
	}

	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len("KMGTPE") {
		size /= 1024
		unit++
	}

	return fmt.Sprintf("%.1f %ciB", size, "KMGTPE"[unit-1])
}
