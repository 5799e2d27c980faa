// Package status reports whether the site's dependencies are usable. The
// summary backs the /readyz probe.
package status

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// States reported for the whole site and for each component.
const (
	StateOperational = "operational"
	StateDegraded    = "degraded"
	StateDown        = "down"
)

// Summary captures the state of every registered component.
type Summary struct {
	State      string      `json:"state"`
	UpdatedAt  time.Time   `json:"updatedAt"`
	Components []Component `json:"components"`
}

// Component represents the status of an individual subsystem.
type Component struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Check probes one component. Optional checks only degrade the site when
// they fail; required ones take it down.
type Check struct {
	Name     string
	Required bool
	Probe    func(ctx context.Context) error
}

// Reporter runs the checks and caches the result for ttl so probes from a
// load balancer do not hammer Redis or SQLite.
type Reporter struct {
	checks  []Check
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time

	mu      sync.Mutex
	cached  Summary
	expires time.Time
}

// NewReporter builds a reporter. A ttl of zero disables caching.
func NewReporter(ttl time.Duration, checks ...Check) *Reporter {
	if ttl < 0 {
		ttl = 0
	}
	return &Reporter{
		checks:  checks,
		ttl:     ttl,
		timeout: 2 * time.Second,
		now:     time.Now,
	}
}

// Summary returns the cached summary or runs every check.
func (r *Reporter) Summary(ctx context.Context) Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	if r.ttl > 0 && now.Before(r.expires) {
		return cloneSummary(r.cached)
	}

	summary := Summary{State: StateOperational, UpdatedAt: now.UTC()}
	for _, c := range r.checks {
		comp := Component{Name: c.Name, Status: StateOperational}
		if err := r.probe(ctx, c); err != nil {
			comp.Error = err.Error()
			if c.Required {
				comp.Status = StateDown
				summary.State = StateDown
			} else {
				comp.Status = StateDegraded
				if summary.State == StateOperational {
					summary.State = StateDegraded
				}
			}
		}
		summary.Components = append(summary.Components, comp)
	}
	r.cached = summary
	r.expires = now.Add(r.ttl)
	return cloneSummary(summary)
}

func (r *Reporter) probe(ctx context.Context, c Check) error {
	if c.Probe == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return c.Probe(ctx)
}

// Handler serves the summary as JSON: 200 unless a required component is
// down, then 503.
func (r *Reporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		summary := r.Summary(req.Context())
		code := http.StatusOK
		if summary.State == StateDown {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(summary)
	})
}

func cloneSummary(s Summary) Summary {
	cp := s
	cp.Components = append([]Component(nil), s.Components...)
	return cp
}
