// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

package gg

import (
	"encoding/base64"
	"encoding/binary"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/minio/highwayhash"
)

const (
	tofu        = '\U0010FFEE' // .notdef box: a control code was there
	replacement = utf8.RuneError
)

// Sanitize makes untrusted strings safe for a single log line:
// tabs become spaces, control codes become a tofu box
// and invalid UTF-8 becomes U+FFFD.
// Several strings are printed as "[a, b]".
func Sanitize(values ...string) string {
	if len(values) == 1 {
		return strings.Map(safeRune, values[0])
	}
	return "[" + strings.Map(safeRune, strings.Join(values, ", ")) + "]"
}

func safeRune(r rune) rune {
	switch {
	case r == '\t':
		return ' '
	case r == utf8.RuneError, utf16Surrogate(r):
		return replacement
	case unicode.IsPrint(r):
		return r
	default:
		return tofu
	}
}

func utf16Surrogate(r rune) bool { return 0xD800 <= r && r <= 0xDFFF }

// Printable returns the byte position of the first control code
// or invalid UTF-8 sequence in s, or -1 when s is clean.
func Printable(s string) int {
	for i, r := range s {
		if r < ' ' || r == 0x7F || r == utf8.RuneError || utf16Surrogate(r) {
			return i
		}
	}
	return -1
}

// fingerprintKey is constant so that fingerprints can be compared across restarts.
var fingerprintKey = []byte("A85-fingerprint-HighwayHash-key!")

// Fingerprint returns a short HighwayHash-64 digest of buf.
// Fingerprint is used for ETag values and to identify payloads in logs.
func Fingerprint(buf []byte) string {
	sum := highwayhash.Sum64(buf, fingerprintKey)

	var digest [8]byte
	binary.BigEndian.PutUint64(digest[:], sum)

	return base64.RawURLEncoding.EncodeToString(digest[:])
}

// Obfuscate logs a fingerprint instead of an untrusted payload.
// Obfuscate keeps short printable payloads readable.
func Obfuscate(buf []byte) string {
	const maxReadable = 32
	if len(buf) <= maxReadable && utf8.Valid(buf) && Printable(string(buf)) < 0 {
		return string(buf)
	}
	return ConvertSize(len(buf)) + "#" + Fingerprint(buf)
}
