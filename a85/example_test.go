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

package a85_test

import (
	"errors"
	"fmt"

	"github.com/teal-finance/a85/a85"
)

func ExampleEncodeToString() {
	fmt.Println(a85.EncodeToString([]byte("Hello, World!")))
	fmt.Println(a85.BtoaEncoding.EncodeToString([]byte{0, 0, 0, 0, 1}))
	// Output:
	// 87cURD_*#4DfTZ)+T
	// z!<
}

func ExampleDecodeString() {
	bin, err := a85.DecodeString("87cURD_*#4DfTZ)+T")
	fmt.Printf("%s %v\n", bin, err)

	_, err = a85.DecodeString("87cURD")
	fmt.Println(errors.Is(err, a85.ErrInvalidLength), err)
	// Output:
	// Hello, World! <nil>
	// true a85: invalid trailing group length at input byte 5
}
