package rate

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Local is an in-process token bucket per key. Buckets idle longer than
// maxIdle are dropped during later calls.
type Local struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	burst     int
	maxIdle   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLocal allows requests per window with bursts of up to burst requests.
// burst defaults to requests.
func NewLocal(requests int, window time.Duration, burst int) *Local {
	if burst <= 0 {
		burst = requests
	}
	limit := rate.Inf
	if requests > 0 && window > 0 {
		limit = rate.Limit(float64(requests) / window.Seconds())
	}

	maxIdle := 10 * window
	if maxIdle < time.Minute {
		maxIdle = time.Minute
	}

	return &Local{
		buckets: make(map[string]*bucket),
		limit:   limit,
		burst:   burst,
		maxIdle: maxIdle,
		now:     time.Now,
	}
}

func (l *Local) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1), nil
}

// Len returns the number of tracked keys.
func (l *Local) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Local) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.maxIdle {
		return
	}
	l.lastSweep = now
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.maxIdle {
			delete(l.buckets, key)
		}
	}
}
