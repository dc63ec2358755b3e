// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// attemptLog holds the admin attempts seen from one client inside the window.
type attemptLog struct {
	mu       sync.Mutex
	attempts []time.Time
}

// prune drops attempts at or before cutoff and reports how many remain.
// Callers hold l.mu.
func (l *attemptLog) prune(cutoff time.Time) int {
	kept := l.attempts[:0]
	for _, ts := range l.attempts {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	l.attempts = kept
	return len(kept)
}

// RateLimiter throttles admin callers per client address using a sliding
// window. It sits in front of the admin key check, so failed key guesses
// count against the same budget as accepted calls.
type RateLimiter struct {
	mu      sync.RWMutex
	clients map[string]*attemptLog
	limit   int           // max attempts per window
	window  time.Duration // sliding window duration
	now     func() time.Time
	stopCh  chan struct{}
	once    sync.Once
}

// NewRateLimiter creates a limiter allowing limit attempts per window. A
// background goroutine drops idle clients until Stop is called.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*attemptLog),
		limit:   limit,
		window:  window,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.cleanup()
			case <-rl.stopCh:
				return
			}
		}
	}()

	return rl
}

// Stop terminates the background cleanup goroutine. Safe to call twice.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimiter) logFor(key string) *attemptLog {
	rl.mu.RLock()
	l, ok := rl.clients[key]
	rl.mu.RUnlock()
	if ok {
		return l
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if l, ok = rl.clients[key]; !ok {
		l = &attemptLog{}
		rl.clients[key] = l
	}
	return l
}

// allow records an attempt for key. When the budget is spent it returns
// false and the time until the oldest attempt leaves the window.
func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	l := rl.logFor(key)
	now := rl.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.prune(now.Add(-rl.window)) >= rl.limit {
		return false, l.attempts[0].Add(rl.window).Sub(now)
	}
	l.attempts = append(l.attempts, now)
	return true, 0
}

// cleanup removes clients with no attempt inside the window.
func (rl *RateLimiter) cleanup() {
	cutoff := rl.now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, l := range rl.clients {
		l.mu.Lock()
		remaining := l.prune(cutoff)
		l.mu.Unlock()

		if remaining == 0 {
			delete(rl.clients, key)
		}
	}
}

// Middleware rate-limits by client address. Rejected requests get a JSON
// 429 with Retry-After rounded up to whole seconds.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		ok, wait := rl.allow(ip)
		if !ok {
			slog.Warn("admin rate limit exceeded",
				"remote", ip,
				"path", r.URL.Path,
				"request_id", chimw.GetReqID(r.Context()),
			)
			w.Header().Set("Retry-After", retryAfterSeconds(wait))
			writeDetail(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func retryAfterSeconds(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// clientIP returns the host part of RemoteAddr. Forwarding headers are not
// read here; behind a trusted proxy the router installs chi's RealIP, which
// rewrites RemoteAddr before this runs.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
