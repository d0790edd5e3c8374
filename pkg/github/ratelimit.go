package github

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// rateLimitFloor is the remaining-count low-water mark below which the
// client pauses until the advertised reset time.
const rateLimitFloor = 2

// rateState tracks the most recently observed rate-limit headers. One
// instance per Client, so independent runs never interfere. Reads may be
// slightly stale under concurrency; writes are serialized.
type rateState struct {
	mu        sync.Mutex
	remaining int
	reset     time.Time
	observed  bool
}

func newRateState() *rateState {
	return &rateState{remaining: -1}
}

// update records the rate-limit headers from a response. Responses
// without the headers (proxies, error pages) leave the state untouched.
func (r *rateState) update(h http.Header, now time.Time) {
	rem := h.Get("X-RateLimit-Remaining")
	if rem == "" {
		return
	}
	remaining, err := strconv.Atoi(rem)
	if err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.remaining = remaining
	r.observed = true

	if raw := h.Get("X-RateLimit-Reset"); raw != "" {
		if epoch, err := strconv.ParseInt(raw, 10, 64); err == nil {
			r.reset = time.Unix(epoch, 0)
		}
	}
}

// waitDuration returns how long the next request should pause before
// being issued, or zero. A one second skew covers clock drift between
// us and the API.
func (r *rateState) waitDuration(now time.Time) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.observed || r.remaining > rateLimitFloor {
		return 0
	}
	wait := r.reset.Sub(now) + time.Second
	if wait < 0 {
		return 0
	}
	return wait
}

// snapshot returns the current remaining count and reset time.
func (r *rateState) snapshot() (remaining int, reset time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining, r.reset
}
