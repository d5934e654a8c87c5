// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

package server

import (
	"net"
	"net/http"
	"net/http/pprof"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/profile"
)

// ProbeCPU writes cpu.pprof in the working directory when Stop is called:
//
//	defer server.ProbeCPU().Stop()
func ProbeCPU() interface{ Stop() } {
	log.Info("CPU profiling until exit, then: go tool pprof -http=: cpu.pprof")
	return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)
}

// StartPProfServer serves /debug/pprof/ in background, on localhost only.
// A port ≤ 0 disables it.
func StartPProfServer(port int) {
	if port <= 0 {
		return
	}

	addr := net.JoinHostPort("localhost", strconv.Itoa(port))

	go func() {
		log.Info("PProf on http://" + addr + "/debug/pprof/")
		err := http.ListenAndServe(addr, pprofRouter())
		log.Error("PProf server stopped: ", err)
	}()
}

func pprofRouter() http.Handler {
	r := chi.NewRouter()
	r.Route("/debug/pprof", func(r chi.Router) {
		r.Get("/", pprof.Index)
		r.Get("/cmdline", pprof.Cmdline)
		r.Get("/profile", pprof.Profile)
		r.Get("/symbol", pprof.Symbol)
		r.Post("/symbol", pprof.Symbol)
		r.Get("/trace", pprof.Trace)
		r.Get("/{name}", pprof.Index) // allocs, block, goroutine, heap, mutex, threadcreate
	})
	return r
}
