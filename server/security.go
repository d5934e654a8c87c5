// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

package server

import (
	"net/http"
	"strconv"

	"github.com/teal-finance/a85/gg"
)

// MiddlewareRejectUnprintableURI replies 400 when the URI contains
// a control code (as CR or LF) or invalid UTF-8,
// so that the request log stays one line per request.
func (gw Writer) MiddlewareRejectUnprintableURI(next http.Handler) http.Handler {
	log.Info("Middleware rejects the URIs with control codes")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if pos := gg.Printable(r.RequestURI); pos >= 0 {
			log.Warn("Reject URI with control code at ", pos, ": ", gg.Sanitize(r.RequestURI))
			gw.WriteErr(w, r, http.StatusBadRequest, "Invalid URI with non-printable symbol", "position", strconv.Itoa(pos))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// MiddlewareSecureHTTPHeader forbids the browsers to sniff
// a decoded payload as HTML or script.
// HSTS is only sent when secure (not on http://localhost).
func MiddlewareSecureHTTPHeader(secure bool) Middleware {
	log.Info("Middleware sets nosniff, HSTS=", secure)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			if secure {
				h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}
