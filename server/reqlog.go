// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

package server

import (
	"net/http"
	"time"

	"github.com/teal-finance/a85/gg"
)

// statusRecorder remembers the response status for the request log and the traffic metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// MiddlewareLogDuration logs one line per request:
// status, client address, method, sanitized URI and handling time.
func MiddlewareLogDuration(next http.Handler) http.Handler {
	log.Info("Middleware logs status, client, method, URI and duration of each request")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start).Round(time.Microsecond)

		log.Printf("%d %s %s %s %v", rec.status, r.RemoteAddr, r.Method, gg.Sanitize(r.RequestURI), elapsed)
	})
}

// ServerHeader announces the program and its version in every response.
func ServerHeader(version string) Middleware {
	log.Info("Middleware sets the response header Server: ", version)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Server", version)
			next.ServeHTTP(w, r)
		})
	}
}
