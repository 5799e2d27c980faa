package leads

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter decides whether a client may submit another form.
type Limiter interface {
	Allow(key string) bool
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPLimiter is a per-key token bucket. Idle keys are pruned on access.
type IPLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	idle     time.Duration
	clock    func() time.Time
	visitors map[string]*visitor
}

// NewIPLimiter allows burst submissions per key, refilled evenly over window.
// It returns nil (no limiting) when burst or window is not positive.
func NewIPLimiter(burst int, window time.Duration, clock func() time.Time) *IPLimiter {
	if burst <= 0 || window <= 0 {
		return nil
	}
	if clock == nil {
		clock = time.Now
	}
	return &IPLimiter{
		limit:    rate.Every(window / time.Duration(burst)),
		burst:    burst,
		idle:     2 * window,
		clock:    clock,
		visitors: make(map[string]*visitor),
	}
}

func (l *IPLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = "anonymous"
	}
	now := l.clock()

	l.mu.Lock()
	defer l.mu.Unlock()
	v, ok := l.visitors[key]
	if !ok {
		l.pruneLocked(now)
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (l *IPLimiter) pruneLocked(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.idle {
			delete(l.visitors, key)
		}
	}
}
