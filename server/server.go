// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

// Package server exposes the Ascii85 encoder and decoder as an HTTP API
// with rate limiting, CORS, request logs, Prometheus metrics and PProf.
package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/teal-finance/emo"

	"github.com/teal-finance/a85/gg"
)

var log = emo.NewZone("server")

// DefaultMaxBytes limits the request bodies to 16 MiB.
const DefaultMaxBytes = 16 << 20

// Middleware wraps the API handler, see gg.Chain.
type Middleware = gg.Middleware

// ErrorBody is the JSON response of a rejected Ascii85 input.
// Offset is -1 when the failure is not located in the input.
//
//easyjson:json
type ErrorBody struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Offset  int    `json:"offset"`
	Path    string `json:"path"`
	Doc     string `json:"doc,omitempty"`
}

// Server is the Ascii85 HTTP API. Build it with New.
type Server struct {
	Writer Writer

	metrics *Metrics
	handler http.Handler

	namespace string
	version   string
	origins   []string

	pprofPort int
	expPort   int
	reqBurst  int
	reqMinute int
	maxBytes  int
	devMode   bool
}

// New builds the router and its middleware chain once.
// A nil option is ignored.
func New(opts ...Option) *Server {
	s := &Server{
		Writer:    NewWriter(""),
		namespace: "a85",
		maxBytes:  DefaultMaxBytes,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if s.devMode {
		s.origins = append(s.origins, DevOrigins...)
	}

	s.metrics = NewMetrics(s.namespace)
	s.handler = s.middlewares().Then(s.router())

	return s
}

// Handler returns the API with all its middleware.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Metrics gives access to the Prometheus registry, even when the export server is disabled.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Post("/encode", s.encode)
	r.Post("/decode", s.decode)
	r.Get("/version", s.serveVersion)
	r.NotFound(s.Writer.InvalidPath)
	r.MethodNotAllowed(s.Writer.MethodNotAllowed)
	return r
}

func (s *Server) middlewares() gg.Chain {
	chain := gg.NewChain()

	if s.expPort > 0 {
		chain = chain.Append(s.metrics.MiddlewareExportTrafficMetrics())
	}

	chain = chain.Append(
		s.Writer.MiddlewareRejectUnprintableURI,
		MiddlewareLogDuration,
		MiddlewareSecureHTTPHeader(!s.devMode))

	if s.reqMinute > 0 {
		chain = chain.Append(NewReqLimiter(s.reqBurst, s.reqMinute, s.devMode, s.Writer).LimitRate)
	}

	if s.version != "" {
		chain = chain.Append(ServerHeader(s.version))
	}

	if len(s.origins) > 0 {
		chain = chain.Append(MiddlewareCORS(s.origins, s.devMode))
	}

	return chain
}

// Run starts the PProf and Prometheus servers in background
// and runs the API server in foreground.
func (s *Server) Run(port int) error {
	StartPProfServer(s.pprofPort)
	connState := s.metrics.StartServer(s.expPort)

	server := http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           s.handler,
		TLSConfig:         nil,
		ReadTimeout:       30 * time.Second, // large payloads
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       10 * time.Second,
		MaxHeaderBytes:    4 << 10,
		TLSNextProto:      nil,
		ConnState:         connState,
		ErrorLog:          nil,
		BaseContext:       nil,
		ConnContext:       nil,
	}

	log.Info("Server listening on http://localhost", server.Addr)

	err := server.ListenAndServe()

	log.Error("Install ncat and ss: sudo apt install ncat iproute2")
	log.Errorf("Try to listen port %v: sudo ncat -l %v", port, port)
	log.Errorf("Get the process using port %v: sudo ss -pan | grep %v", port, port)

	return err
}
