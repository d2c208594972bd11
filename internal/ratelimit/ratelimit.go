package ratelimit

import (
	"sync"
	"time"
)

// RateLimiter tracks and enforces request rate limits per client key
type RateLimiter struct {
	requestsPerMinute int
	requestsPerHour   int
	enabled           bool

	clients map[string]*window
	now     func() time.Time
	mu      sync.Mutex
}

// window holds the request times of one client
type window struct {
	minuteWindow []time.Time
	hourWindow   []time.Time
}

// NewRateLimiter creates a new rate limiter with the given limits. A limit
// of 0 is not enforced.
func NewRateLimiter(requestsPerMinute, requestsPerHour int, enabled bool) *RateLimiter {
	return &RateLimiter{
		requestsPerMinute: requestsPerMinute,
		requestsPerHour:   requestsPerHour,
		enabled:           enabled,
		clients:           make(map[string]*window),
		now:               time.Now,
	}
}

// AllowRequest checks if a request from key is allowed based on rate limits
// Returns true if allowed, false if rate limit exceeded
func (rl *RateLimiter) AllowRequest(key string) bool {
	if !rl.enabled {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w := rl.client(key)

	// Clean up old entries
	w.cleanup(now)

	// Check limits
	if rl.requestsPerMinute > 0 && len(w.minuteWindow) >= rl.requestsPerMinute {
		return false
	}
	if rl.requestsPerHour > 0 && len(w.hourWindow) >= rl.requestsPerHour {
		return false
	}

	// Record the request
	w.minuteWindow = append(w.minuteWindow, now)
	w.hourWindow = append(w.hourWindow, now)

	return true
}

func (rl *RateLimiter) client(key string) *window {
	w, ok := rl.clients[key]
	if !ok {
		w = &window{}
		rl.clients[key] = w
	}
	return w
}

// cleanup removes expired entries from the time windows
func (w *window) cleanup(now time.Time) {
	// Clean minute window (keep last 60 seconds)
	minuteAgo := now.Add(-1 * time.Minute)
	w.minuteWindow = filterTimes(w.minuteWindow, minuteAgo)

	// Clean hour window (keep last 60 minutes)
	hourAgo := now.Add(-1 * time.Hour)
	w.hourWindow = filterTimes(w.hourWindow, hourAgo)
}

// filterTimes keeps only times after the cutoff
func filterTimes(times []time.Time, cutoff time.Time) []time.Time {
	result := make([]time.Time, 0, len(times))
	for _, t := range times {
		if t.After(cutoff) {
			result = append(result, t)
		}
	}
	return result
}

// Prune forgets clients with no request in the last hour and returns how
// many were dropped
func (rl *RateLimiter) Prune() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	dropped := 0
	for key, w := range rl.clients {
		w.cleanup(now)
		if len(w.hourWindow) == 0 {
			delete(rl.clients, key)
			dropped++
		}
	}
	return dropped
}

// GetStats returns current rate limiter statistics for key
func (rl *RateLimiter) GetStats(key string) Stats {
	if !rl.enabled {
		return Stats{Enabled: false}
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// reading stats does not start tracking a client
	w, ok := rl.clients[key]
	if !ok {
		w = &window{}
	}
	w.cleanup(rl.now())

	return Stats{
		Enabled:             true,
		RequestsLastMinute:  len(w.minuteWindow),
		RequestsLastHour:    len(w.hourWindow),
		LimitPerMinute:      rl.requestsPerMinute,
		LimitPerHour:        rl.requestsPerHour,
		RemainingThisMinute: max(0, rl.requestsPerMinute-len(w.minuteWindow)),
		RemainingThisHour:   max(0, rl.requestsPerHour-len(w.hourWindow)),
		TrackedClients:      len(rl.clients),
	}
}

// Stats contains rate limiter statistics
type Stats struct {
	Enabled             bool `json:"enabled"`
	RequestsLastMinute  int  `json:"requests_last_minute"`
	RequestsLastHour    int  `json:"requests_last_hour"`
	LimitPerMinute      int  `json:"limit_per_minute"`
	LimitPerHour        int  `json:"limit_per_hour"`
	RemainingThisMinute int  `json:"remaining_this_minute"`
	RemainingThisHour   int  `json:"remaining_this_hour"`
	TrackedClients      int  `json:"tracked_clients"`
}

// Reset clears all tracked requests (useful for testing)
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.clients = make(map[string]*window)
}
