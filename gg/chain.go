// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

package gg

import "net/http"

// Middleware wraps a handler into another one.
type Middleware func(http.Handler) http.Handler

// Chain lists middleware in request order: the first one sees the request first.
type Chain []Middleware

// NewChain copies the middleware list.
func NewChain(middleware ...Middleware) Chain {
	return append(Chain(nil), middleware...)
}

// Append returns a new Chain, leaving c unchanged
// even when c has spare capacity.
func (c Chain) Append(middleware ...Middleware) Chain {
	chain := make(Chain, 0, len(c)+len(middleware))
	chain = append(chain, c...)
	return append(chain, middleware...)
}

// Then wraps h so that NewChain(m1, m2).Then(h) is m1(m2(h)).
// Nil middleware are skipped.
func (c Chain) Then(h http.Handler) http.Handler {
	for i := len(c) - 1; i >= 0; i-- {
		if c[i] != nil {
			h = c[i](h)
		}
	}
	return h
}
