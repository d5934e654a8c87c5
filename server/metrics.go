// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

package server

import (
	"net"
	"net/http"
	"regexp"
	"strconv"
	"time"
	"unicode"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its own registry so that several servers
// (and the tests) can live in the same process.
type Metrics struct {
	registry  *prometheus.Registry
	namespace string

	// codec
	ops      *prometheus.CounterVec
	bytes    *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewMetrics registers the Go, process and codec collectors.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)

	namespace = PromNamespace(namespace)
	factory := promauto.With(reg)

	return &Metrics{
		registry:  reg,
		namespace: namespace,
		ops: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "operations_total",
			Help:      "Encode and decode operations by result",
		}, []string{"op", "result"}),
		bytes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "input_bytes_total",
			Help:      "Bytes received by the encoder and the decoder",
		}, []string{"op"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "codec",
			Name:      "decode_failures_total",
			Help:      "Rejected Ascii85 inputs by failure kind",
		}, []string{"kind"}),
	}
}

// PromNamespace keeps [a-zA-Z0-9_] and verifies Prom naming rules:
// valid namespace = [a-zA-Z][a-zA-Z0-9_]*
// https://prometheus.io/docs/concepts/data_model/#metric-names-and-labels
func PromNamespace(str string) string {
	re := regexp.MustCompile(`[^a-zA-Z0-9_]`)
	str = re.ReplaceAllLiteralString(str, "")
	if str == "" || !unicode.IsLetter(rune(str[0])) {
		str = "a" + str
	}
	return str
}

func (m *Metrics) countOK(op string, inputLen int) {
	m.ops.WithLabelValues(op, "ok").Inc()
	m.bytes.WithLabelValues(op).Add(float64(inputLen))
}

func (m *Metrics) countFailure(op, kind string, inputLen int) {
	m.ops.WithLabelValues(op, "error").Inc()
	m.bytes.WithLabelValues(op).Add(float64(inputLen))
	if kind != "" {
		m.failures.WithLabelValues(kind).Inc()
	}
}

// Registry gathers all the metrics of the server.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exports the metrics on the "/metrics" endpoint.
func (m *Metrics) Handler() http.Handler {
	handler := chi.NewRouter()
	handler.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	return handler
}

// StartServer starts the Prometheus export server in background
// and returns the connection hook of the main server.
func (m *Metrics) StartServer(port int) func(net.Conn, http.ConnState) {
	if port <= 0 {
		log.Info("No Prometheus export")
		return nil
	}

	addr := ":" + strconv.Itoa(port)

	go func() {
		err := http.ListenAndServe(addr, m.Handler())
		log.Error("Prometheus export stopped: ", err)
	}()

	log.Info("Prometheus export http://localhost" + addr + "/metrics namespace=" + m.namespace)

	return m.updateHTTPMetrics()
}

// updateHTTPMetrics counts the connection state transitions
// and tracks the open connections.
func (m *Metrics) updateHTTPMetrics() func(net.Conn, http.ConnState) {
	factory := promauto.With(m.registry)

	open := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "http",
		Name: "open_connections", Help: "Connections currently open",
	})
	transitions := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "http",
		Name: "connection_states_total", Help: "Connection state transitions by state",
	}, []string{"state"})

	return func(_ net.Conn, state http.ConnState) {
		transitions.WithLabelValues(state.String()).Inc()

		switch state {
		case http.StateNew:
			open.Inc()
		case http.StateHijacked, http.StateClosed:
			open.Dec()
		}
	}
}

// MiddlewareExportTrafficMetrics measures the time to handle a request.
func (m *Metrics) MiddlewareExportTrafficMetrics() Middleware {
	summary := promauto.With(m.registry).NewSummaryVec(prometheus.SummaryOpts{
		Namespace:  m.namespace,
		Subsystem:  "http",
		Name:       "request_duration_seconds",
		Help:       "Time to handle a client request",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		MaxAge:     24 * time.Hour,
	}, []string{"code", "route"})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			record := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			start := time.Now()
			next.ServeHTTP(record, r)
			duration := time.Since(start)

			// the path, not the URI, keeps the label cardinality bounded
			summary.WithLabelValues(strconv.Itoa(record.status), route(r)).Observe(duration.Seconds())
		})
	}
}

func route(r *http.Request) string {
	switch r.URL.Path {
	case "/encode", "/decode", "/version":
		return r.URL.Path
	}
	return "other"
}
