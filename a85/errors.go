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
	"errors"
	"fmt"
)

var (
	// ErrInvalidCharacter reports a byte outside the alphabet,
	// including whitespace, control codes and bytes >= 0x80.
	ErrInvalidCharacter = errors.New("invalid character")

	// ErrInvalidLength reports a trailing group of exactly one character.
	ErrInvalidLength = errors.New("invalid trailing group length")

	// ErrGroupOverflow reports a group whose value exceeds 2³²-1.
	ErrGroupOverflow = errors.New("group overflows 32 bits")
)

// CorruptInputError locates the first undecodable part of the input.
// Err is one of ErrInvalidCharacter, ErrInvalidLength or ErrGroupOverflow.
type CorruptInputError struct {
	Err    error
	Offset int  // position of the offending character or group
	Char   byte // offending character, only set with ErrInvalidCharacter
}

func (e *CorruptInputError) Error() string {
	if errors.Is(e.Err, ErrInvalidCharacter) {
		return fmt.Sprintf("a85: %v 0x%02x at input byte %d", e.Err, e.Char, e.Offset)
	}
	return fmt.Sprintf("a85: %v at input byte %d", e.Err, e.Offset)
}

func (e *CorruptInputError) Unwrap() error { return e.Err }

// Kind names the failure for logs, metrics and JSON responses.
func (e *CorruptInputError) Kind() string {
	return Kind(e)
}

// Kind returns "invalid-character", "invalid-length", "group-overflow"
// or "" when err does not come from a decoder.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCharacter):
		return "invalid-character"
	case errors.Is(err, ErrInvalidLength):
		return "invalid-length"
	case errors.Is(err, ErrGroupOverflow):
		return "group-overflow"
	}
	return ""
}

func invalidChar(offset int, c byte) error {
	return &CorruptInputError{Err: ErrInvalidCharacter, Offset: offset, Char: c}
}

func invalidLength(offset int) error {
	return &CorruptInputError{Err: ErrInvalidLength, Offset: offset}
}

func overflow(offset int) error {
	return &CorruptInputError{Err: ErrGroupOverflow, Offset: offset}
}
