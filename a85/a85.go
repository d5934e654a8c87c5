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

// Package a85 encodes and decodes whole buffers in Ascii85,
// using the btoa alphabet from '!' to 'u'.
//
// Four bytes are read as a big-endian uint32 and written as five base-85 digits.
// A final group of r bytes (1 ≤ r ≤ 3) is zero padded and only its first r+1
// digits are kept. The decoder pads such a group with the highest digit 'u'
// and keeps its first k-1 bytes.
//
// The decoder is strict: whitespace, delimiters such as "<~" and "~>",
// trailing groups of one character and groups above 2³²-1 are all rejected,
// and nothing is returned on failure.
package a85

import (
	"encoding/binary"
	"math"
)

// Encoding is an Ascii85 variant. Encodings are immutable and safe for concurrent use.
type Encoding struct {
	alphabet  *alphabet
	zeroGroup bool
}

var (
	// StdEncoding maps every four bytes to five characters without any shorthand.
	StdEncoding = &Encoding{alphabet: std, zeroGroup: false}

	// BtoaEncoding also abbreviates a full group of four zero bytes as 'z',
	// like the btoa tool.
	BtoaEncoding = &Encoding{alphabet: std, zeroGroup: true}
)

// Encode encodes bin using StdEncoding.
func Encode(bin []byte) []byte { return StdEncoding.Encode(bin) }

// EncodeToString encodes bin into a string using StdEncoding.
func EncodeToString(bin []byte) string { return StdEncoding.EncodeToString(bin) }

// Decode decodes txt using StdEncoding.
func Decode(txt []byte) ([]byte, error) { return StdEncoding.Decode(txt) }

// DecodeString decodes txt using StdEncoding.
func DecodeString(txt string) ([]byte, error) { return StdEncoding.DecodeString(txt) }

// EncodedLen returns the StdEncoding length of n source bytes.
func EncodedLen(n int) int {
	size := n / groupBytes * groupChars
	if r := n % groupBytes; r > 0 {
		size += r + 1
	}
	return size
}

// DecodedLen returns the number of bytes decoded from m characters in StdEncoding.
// ok is false when m ends with a trailing group of one character.
func DecodedLen(m int) (n int, ok bool) {
	n = m / groupChars * groupBytes
	switch k := m % groupChars; k {
	case 0:
		return n, true
	case 1:
		return n, false
	default:
		return n + k - 1, true
	}
}

// MaxEncodedLen returns the maximum length of an encoding of n source bytes.
func (e *Encoding) MaxEncodedLen(n int) int { return EncodedLen(n) }

// MaxDecodedLen returns the maximum number of bytes decoded from m characters.
// With the 'z' shorthand, every character may expand to four bytes.
func (e *Encoding) MaxDecodedLen(m int) int {
	if e.zeroGroup {
		return groupBytes * m
	}
	n, _ := DecodedLen(m)
	return n
}

// Encode returns the Ascii85 representation of bin.
// Encode never fails: every byte sequence has an encoding.
func (e *Encoding) Encode(bin []byte) []byte {
	txt := make([]byte, 0, e.MaxEncodedLen(len(bin)))

	for len(bin) >= groupBytes {
		v := binary.BigEndian.Uint32(bin)
		bin = bin[groupBytes:]

		if v == 0 && e.zeroGroup {
			txt = append(txt, ZeroGroup)
			continue
		}

		txt = e.alphabet.appendGroup(txt, v, groupChars)
	}

	// Zero padding only changes the dropped low digits.
	if r := len(bin); r > 0 {
		var last [groupBytes]byte
		copy(last[:], bin)
		v := binary.BigEndian.Uint32(last[:])
		txt = e.alphabet.appendGroup(txt, v, r+1)
	}

	return txt
}

// EncodeToString is like Encode but returns a string.
func (e *Encoding) EncodeToString(bin []byte) string {
	return string(e.Encode(bin))
}

// Decode returns the bytes represented by txt.
// Decode validates the whole input before converting it,
// so that it returns either all the bytes or a *CorruptInputError.
func (e *Encoding) Decode(txt []byte) ([]byte, error) {
	zeros, err := e.validate(txt)
	if err != nil {
		return nil, err
	}

	size, _ := DecodedLen(len(txt) - zeros)
	bin := make([]byte, 0, size+zeros*groupBytes)

	var digits [groupChars]byte
	n := 0 // number of pending digits

	for i, c := range txt {
		if c == ZeroGroup && e.zeroGroup {
			bin = append(bin, 0, 0, 0, 0)
			continue
		}

		digits[n] = byte(e.alphabet.digit(c))
		n++
		if n < groupChars {
			continue
		}

		v, ok := pack(digits[:])
		if !ok {
			return nil, overflow(i + 1 - groupChars)
		}
		bin = binary.BigEndian.AppendUint32(bin, v)
		n = 0
	}

	if n > 0 {
		// The highest digit keeps the top bits of the truncated group exact.
		for j := n; j < groupChars; j++ {
			digits[j] = maxDigit
		}
		v, ok := pack(digits[:])
		if !ok {
			return nil, overflow(len(txt) - n)
		}
		var last [groupBytes]byte
		binary.BigEndian.PutUint32(last[:], v)
		bin = append(bin, last[:n-1]...)
	}

	return bin, nil
}

// DecodeString is like Decode but takes a string.
func (e *Encoding) DecodeString(txt string) ([]byte, error) {
	return e.Decode([]byte(txt))
}

// validate checks the characters first and then the length of the trailing group.
// It also counts the 'z' groups so that Decode allocates the exact output size.
func (e *Encoding) validate(txt []byte) (zeros int, err error) {
	n := 0 // characters since the last group boundary

	for i, c := range txt {
		switch {
		case c == ZeroGroup && e.zeroGroup:
			if n != 0 {
				return 0, invalidChar(i, c) // 'z' inside a group
			}
			zeros++
		case e.alphabet.digit(c) < 0:
			return 0, invalidChar(i, c)
		default:
			n = (n + 1) % groupChars
		}
	}

	if n == 1 {
		return 0, invalidLength(len(txt) - 1)
	}

	return zeros, nil
}

// pack converts five base-85 digits into the group value,
// reporting false when the value does not fit in 32 bits.
func pack(digits []byte) (uint32, bool) {
	var v uint64
	for _, d := range digits {
		v = v*base + uint64(d)
	}
	if v > math.MaxUint32 {
		return 0, false
	}
	return uint32(v), true
}
