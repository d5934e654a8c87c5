// Copyright 2022 Teal.Finance contributors
// This file is part of Teal.Finance/A85,
// an Ascii85 codec and API server under the MIT License.
// SPDX-License-Identifier: MIT

package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterForgetsIdleVisitors(t *testing.T) {
	t.Parallel()

	rl := NewReqLimiter(5, 60, false, NewWriter(""))
	start := rl.lastSweep

	first := rl.getVisitor("192.0.2.1", start)
	rl.getVisitor("192.0.2.2", start.Add(2*time.Minute))
	assert.Len(t, rl.visitors, 2)

	// same visitor, same limiter
	assert.Same(t, first, rl.getVisitor("192.0.2.1", start.Add(30*time.Second)))

	// 192.0.2.1 has been idle for more than three minutes
	rl.getVisitor("192.0.2.3", start.Add(4*time.Minute))
	assert.Len(t, rl.visitors, 2)
	assert.NotContains(t, rl.visitors, "192.0.2.1")
	assert.Contains(t, rl.visitors, "192.0.2.2")

	// each visitor has its own limiter
	assert.NotSame(t, rl.getVisitor("192.0.2.2", start.Add(4*time.Minute)), rl.getVisitor("192.0.2.3", start.Add(4*time.Minute)))
}

func TestLimiterSweepsAtMostOncePerPeriod(t *testing.T) {
	t.Parallel()

	rl := NewReqLimiter(5, 60, false, NewWriter(""))
	start := rl.lastSweep

	rl.getVisitor("192.0.2.1", start.Add(-10*time.Minute))
	rl.getVisitor("192.0.2.2", start.Add(30*time.Second))
	assert.Contains(t, rl.visitors, "192.0.2.1", "no sweep before one minute")

	rl.getVisitor("192.0.2.2", start.Add(time.Minute))
	assert.NotContains(t, rl.visitors, "192.0.2.1")
	assert.Equal(t, start.Add(time.Minute), rl.lastSweep)
}
