// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/momeni/sitetrack/pkg/core/log"
	"golang.org/x/time/rate"
)

// maxLimiters bounds the number of tracked callers. When it is reached,
// all limiters are dropped and callers start with a full burst again.
const maxLimiters = 10000

// RateLimiter keeps one token bucket per authenticated caller.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewRateLimiter creates a RateLimiter which allows perSecond requests
// per second for each caller, with the given burst size.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether one more request of the key caller may be
// served right now.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	l, ok := rl.limiters[key]
	if !ok {
		if len(rl.limiters) >= maxLimiters {
			clear(rl.limiters)
		}
		l = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[key] = l
	}
	rl.mu.Unlock()
	return l.Allow()
}

// Handler returns a middleware which rejects requests of callers who
// exceeded their rate with the 429 status code. It must be installed
// after Authenticate, since callers are identified by their grants.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		g := GrantOf(c)
		if rl.Allow(g.Subject) {
			c.Next()
			return
		}
		log.Warn(c, "rate limit exceeded", log.Worker(g.Subject))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"detail": "too many requests",
		})
	}
}
