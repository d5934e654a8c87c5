// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

// Package main serves the Ascii85 codec over HTTP.
//
//	curl --data-binary 'Hello, World!' localhost:8085/encode
//	curl --data-binary '87cURD_*#4DfTZ)+T' localhost:8085/decode
package main

import (
	"flag"
	"os"

	"github.com/teal-finance/emo"

	"github.com/teal-finance/a85/gg"
	"github.com/teal-finance/a85/server"
	"github.com/teal-finance/a85/version"
)

var log = emo.NewZone("a85d")

func main() {
	version.SetFlag(nil, "", version.Version("a85d", ""), os.Stdout, func() { os.Exit(0) })

	port := flag.Int("port", gg.EnvInt("PORT", 8085), "API server port")
	expPort := flag.Int("exp", gg.EnvInt("EXP_PORT", 9095), "Prometheus export port, 0 disables it")
	pprofPort := flag.Int("pprof", gg.EnvInt("PPROF_PORT", 0), "PProf port on localhost, 0 disables it")
	burst := flag.Int("burst", gg.EnvInt("REQ_BURST", 20), "Max requests during a burst, per client IP")
	perMinute := flag.Int("rate", gg.EnvInt("REQ_MINUTE", 80), "Max requests per minute, per client IP, 0 disables the limiter")
	origins := flag.String("origins", gg.EnvStr("ORIGINS"), "CORS origins (or prefixes) separated by commas")
	maxBytes := flag.Int("max", gg.EnvInt("MAX_BYTES", server.DefaultMaxBytes), "Max request body size in bytes")
	doc := flag.String("doc", gg.EnvStr("DOC_URL"), "Documentation URL in the JSON error responses")
	dev := flag.Bool("dev", false, "Development mode: local CORS origins, doubled rate limits")
	cpu := flag.Bool("cpu", false, "Write the CPU profile to cpu.pprof on exit")
	flag.Parse()

	if *cpu {
		defer server.ProbeCPU().Stop()
	}

	version.Log(version.Version("a85d", ""))

	s := server.New(
		server.WithDev(*dev),
		server.WithDocURL(*doc),
		server.WithProm(*expPort, "a85"),
		server.WithPProf(*pprofPort),
		server.WithLimiter(*burst, *perMinute),
		server.WithServerHeader("a85d"),
		server.WithOrigins(*origins),
		server.WithMaxBytes(*maxBytes),
	)

	err := s.Run(*port)
	log.Error("Server stopped: ", err)
}
