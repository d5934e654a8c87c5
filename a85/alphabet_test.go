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

import (
	"strings"
	"testing"
)

func TestAlphabetBijection(t *testing.T) {
	t.Parallel()

	members := 0
	for c := 0; c < 256; c++ {
		d := std.digit(byte(c))
		if d < 0 {
			continue
		}
		members++
		if std.encode[d] != byte(c) {
			t.Errorf("encode[decode[%q]] = %q", c, std.encode[d])
		}
	}

	if members != base {
		t.Errorf("alphabet has %d members, want %d", members, base)
	}

	for d, c := range std.encode {
		if c != byte('!'+d) {
			t.Errorf("digit %d = %q, want %q", d, c, '!'+d)
		}
	}
}

func TestNewAlphabetPanics(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		alphabet string
	}{
		{"short", btoaAlphabet[1:]},
		{"repeated", "!" + btoaAlphabet[:base-1]},
		{"space", " " + btoaAlphabet[1:]},
		{"control", "\n" + btoaAlphabet[1:]},
		{"shorthand", btoaAlphabet[:base-1] + "z"},
		{"high-bit", "\x80" + btoaAlphabet[1:]},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if r := recover(); r == nil {
					t.Errorf("newAlphabet(%q) did not panic", c.alphabet)
				}
			}()

			newAlphabet(c.alphabet)
		})
	}
}

func TestAppendGroup(t *testing.T) {
	t.Parallel()

	for n := 1; n <= groupChars; n++ {
		got := string(std.appendGroup([]byte("x"), 0xffffffff, n))
		want := "x" + "s8W-!"[:n]
		if got != want {
			t.Errorf("appendGroup(n=%d) = %q, want %q", n, got, want)
		}
	}

	if got := string(std.appendGroup(nil, 0, groupChars)); got != strings.Repeat("!", groupChars) {
		t.Errorf("appendGroup(0) = %q", got)
	}
}
