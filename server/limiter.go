// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/teal-finance/a85/gg"
)

// ReqLimiter limits the request rate per client IP.
// Idle visitors are forgotten while looking up another one,
// at most once per sweepPeriod, so no background goroutine is needed.
type ReqLimiter struct {
	visitors  map[string]*visitor
	lastSweep time.Time
	limit     rate.Limit
	burst     int
	mu        sync.Mutex
	gw        Writer
}

const (
	sweepPeriod = time.Minute
	idleTimeout = 3 * time.Minute
)

type visitor struct {
	lastSeen time.Time
	limiter  *rate.Limiter
}

// NewReqLimiter doubles the burst and the rate in dev mode.
func NewReqLimiter(burst, perMinute int, devMode bool, gw Writer) *ReqLimiter {
	if devMode {
		burst *= 2
		perMinute *= 2
	}

	return &ReqLimiter{
		visitors:  make(map[string]*visitor),
		lastSweep: time.Now(),
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     burst,
		mu:        sync.Mutex{},
		gw:        gw,
	}
}

// LimitRate waits for the next token of the client IP
// and replies 429 when the wait would outlast the request deadline.
func (rl *ReqLimiter) LimitRate(next http.Handler) http.Handler {
	log.Infof("Middleware limits each client IP to a burst of %d then %.2f req/s", rl.burst, float64(rl.limit))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			log.Error("Bad RemoteAddr ", gg.Sanitize(r.RemoteAddr), ": ", err)
			rl.gw.WriteErr(w, r, http.StatusInternalServerError, "Cannot identify the client", "addr", r.RemoteAddr)
			return
		}

		err = rl.getVisitor(host, time.Now()).Wait(r.Context())
		switch {
		case err == nil:
			next.ServeHTTP(w, r)
		case r.Context().Err() != nil:
			log.Warn("Client ", host, " gone while throttled: ", err)
		default:
			log.Warn("Throttle ", host, " ", r.Method, " ", gg.Sanitize(r.RequestURI), ": ", err)
			rl.gw.WriteErr(w, r, http.StatusTooManyRequests, "Too Many Requests",
				"advice", "Please slow down or batch your payloads")
		}
	})
}

func (rl *ReqLimiter) getVisitor(ip string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) >= sweepPeriod {
		rl.forgetIdleVisitors(now)
	}

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{
			limiter:  rate.NewLimiter(rl.limit, rl.burst),
			lastSeen: now,
		}
		rl.visitors[ip] = v
	}

	v.lastSeen = now

	return v.limiter
}

// forgetIdleVisitors must be called with rl.mu locked.
func (rl *ReqLimiter) forgetIdleVisitors(now time.Time) {
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > idleTimeout {
			delete(rl.visitors, ip)
		}
	}
	rl.lastSweep = now
}
