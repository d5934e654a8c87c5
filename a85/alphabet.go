// #region <editor-fold desc="Preamble">
// Copyright (c) 2022 Teal.Finance contributors
//
// This file is part of Teal.Finance/A85, an Ascii85 codec and API server.
// Teal.Finance/A85 is free software: you can redistribute it
// and/or modify it under the terms of the GNU Lesser General Public License
// either version 3 or any later version, at the licensee’s option.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// Teal.Finance/A85 is distributed WITHOUT ANY WARRANTY.
// For more details, see the LICENSE file (alongside the source files)
// or online at <https://www.gnu.org/licenses/lgpl-3.0.html>
// #endregion </editor-fold>

package a85

import "log"

// btoaAlphabet is the contiguous range '!' (digit 0) to 'u' (digit 84)
// used by btoa, PostScript and PDF.
const btoaAlphabet = "!\"#$%&'()*+,-./0123456789:;<=>?@" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`" +
	"abcdefghijklmnopqrstu"

// ZeroGroup abbreviates a full group of four zero bytes in BtoaEncoding.
const ZeroGroup = 'z'

const (
	base       = 85
	maxDigit   = base - 1
	groupBytes = 4
	groupChars = 5
)

// alphabet is an optimized form of the encoding characters.
type alphabet struct {
	decode [256]int8
	encode [base]byte
}

// std is built once at startup and only read afterwards.
var std = newAlphabet(btoaAlphabet)

// newAlphabet panics if s is not 85 distinct printable ASCII characters
// (space excluded) or if s contains the ZeroGroup shorthand.
func newAlphabet(s string) *alphabet {
	if len(s) != base {
		log.Panicf("a85: alphabet must be %d bytes long, got %d", base, len(s))
	}

	a := new(alphabet)
	copy(a.encode[:], s)
	for i := range a.decode {
		a.decode[i] = -1
	}

	for i, c := range a.encode {
		switch {
		case c <= ' ' || c > '~':
			log.Panicf("a85: alphabet character #%d (0x%02x) is not printable", i, c)
		case c == ZeroGroup:
			log.Panicf("a85: alphabet must not contain the shorthand %q", ZeroGroup)
		case a.decode[c] != -1:
			log.Panicf("a85: alphabet character %q is repeated", c)
		}
		a.decode[c] = int8(i)
	}

	return a
}

// digit returns the base-85 value of c, or -1 when c is not in the alphabet.
func (a *alphabet) digit(c byte) int8 { return a.decode[c] }

// appendGroup appends the first n base-85 digits of v, most significant first.
func (a *alphabet) appendGroup(txt []byte, v uint32, n int) []byte {
	var group [groupChars]byte
	for i := groupChars - 1; i >= 0; i-- {
		group[i] = a.encode[v%base]
		v /= base
	}
	return append(txt, group[:n]...)
}
