// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

package server

import (
	"github.com/teal-finance/a85/gg"
	"github.com/teal-finance/a85/version"
)

// Option configures the Server built by New.
type Option func(*Server)

// WithDocURL adds the documentation URL to the JSON errors.
func WithDocURL(docURL string) Option {
	return func(s *Server) {
		s.Writer = NewWriter(docURL)
	}
}

// WithDev enables the dev mode (no argument or true): local CORS origins,
// doubled rate limits and no HSTS header.
func WithDev(enable ...bool) Option {
	devMode := true
	if len(enable) > 0 {
		devMode = enable[0]

		if len(enable) >= 2 {
			log.Panic("server.WithDev() must be called with zero or one argument")
		}
	}

	return func(s *Server) {
		s.devMode = devMode
	}
}

// WithPProf serves /debug/pprof/ on localhost:port, 0 disables it.
func WithPProf(port int) Option {
	return func(s *Server) {
		s.pprofPort = port
	}
}

// WithProm enables the Prometheus export server on port.
// The namespace prefixes all the metric names.
func WithProm(port int, namespace string) Option {
	return func(s *Server) {
		s.expPort = port
		if namespace != "" {
			s.namespace = namespace
		}
	}
}

// WithLimiter sets the burst and the number of requests per minute, per client IP.
// Default is 20 requests per burst and 4×burst per minute.
// A zero rate per minute disables the limiter.
func WithLimiter(values ...int) Option {
	var burst, perMinute int

	switch len(values) {
	case 0:
		burst = 20
		perMinute = 4 * burst
	case 1:
		burst = values[0]
		perMinute = 4 * burst
	case 2:
		burst = values[0]
		perMinute = values[1]
	default:
		log.Panic("server.WithLimiter() must be called with less than three arguments")
	}

	return func(s *Server) {
		s.reqBurst = burst
		s.reqMinute = perMinute
	}
}

// WithServerHeader sets the HTTP Server header to "program-version".
func WithServerHeader(program string) Option {
	return func(s *Server) {
		s.version = version.Version(program, "")
	}
}

// WithOrigins enables CORS for the origins,
// each one may be a prefix such as "http://localhost:".
func WithOrigins(origins ...string) Option {
	return func(s *Server) {
		for _, o := range origins {
			s.origins = append(s.origins, gg.SplitClean(o)...)
		}
	}
}

// WithMaxBytes limits the request body size.
func WithMaxBytes(maxBytes int) Option {
	if maxBytes <= 0 {
		log.Panicf("server.WithMaxBytes(%d) wants a positive size", maxBytes)
	}

	return func(s *Server) {
		s.maxBytes = maxBytes
	}
}
