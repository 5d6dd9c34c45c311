// Package ratelimit provides a fixed-window in-memory request limiter for
// the public API surface.
package ratelimit

import (
	"sync"
	"time"
)

// maxClients bounds the tracking table so unauthenticated traffic cannot
// grow it without limit.
const maxClients = 10000

type window struct {
	count   int
	resetAt time.Time
}

// Limiter counts requests per client within fixed windows. Safe for
// concurrent use.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	period  time.Duration

	now func() time.Time
}

// New creates a limiter allowing limit requests per period per client.
func New(limit int, period time.Duration) *Limiter {
	return &Limiter{
		clients: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

// Allow records a request for client and reports whether it is within the
// limit, along with the remaining quota and the window reset time.
func (l *Limiter) Allow(client string) (allowed bool, remaining int, resetAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	w, ok := l.clients[client]
	if !ok || now.After(w.resetAt) {
		if !ok && len(l.clients) >= maxClients {
			l.pruneLocked(now)
		}
		w = &window{resetAt: now.Add(l.period)}
		l.clients[client] = w
	}

	w.count++
	remaining = l.limit - w.count
	if remaining < 0 {
		remaining = 0
	}
	return w.count <= l.limit, remaining, w.resetAt
}

// pruneLocked drops windows that have already reset. Caller holds the lock.
func (l *Limiter) pruneLocked(now time.Time) {
	for client, w := range l.clients {
		if now.After(w.resetAt) {
			delete(l.clients, client)
		}
	}
}
