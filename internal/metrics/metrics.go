// Package metrics provides Prometheus metrics for the web server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "crown_web"

// Collector holds all Prometheus metrics for the site.
type Collector struct {
	registry prometheus.Gatherer

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	AddOnToggles *prometheus.CounterVec
	QuotesServed *prometheus.CounterVec
	Leads        *prometheus.CounterVec

	CatalogReloads      prometheus.Counter
	CatalogReloadErrors prometheus.Counter
	CatalogLastReload   prometheus.Gauge
}

// New registers the metrics on the default registry.
func New() *Collector {
	return newCollector(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewWithRegistry registers on reg. Tests use it to avoid global state.
func NewWithRegistry(reg *prometheus.Registry) *Collector {
	return newCollector(reg, reg)
}

func newCollector(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		registry: gatherer,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"method", "route"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
		),
		AddOnToggles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "addon_toggles_total",
				Help:      "Membership add-on toggles by add-on and resulting state",
			},
			[]string{"addon", "selected"},
		),
		QuotesServed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quotes_total",
				Help:      "Custom membership quotes computed",
			},
			[]string{"billing"},
		),
		Leads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "leads_total",
				Help:      "Lead submissions by form kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		CatalogReloads: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_reloads_total",
				Help:      "Successful catalog reloads",
			},
		),
		CatalogReloadErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_reload_errors_total",
				Help:      "Failed catalog reloads",
			},
		),
		CatalogLastReload: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "catalog_last_reload_timestamp_seconds",
				Help:      "Unix time of the last successful catalog reload",
			},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency keyed by chi route pattern.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		c.RequestsInFlight.Inc()
		defer c.RequestsInFlight.Dec()

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := RoutePattern(r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		c.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		c.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// RoutePattern returns the matched chi pattern, or "unmatched".
func RoutePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// AddOnToggled counts a configurator toggle.
func (c *Collector) AddOnToggled(id string, selected bool) {
	if c == nil {
		return
	}
	c.AddOnToggles.WithLabelValues(id, strconv.FormatBool(selected)).Inc()
}

// QuoteServed counts a computed quote.
func (c *Collector) QuoteServed(annual bool) {
	if c == nil {
		return
	}
	billing := "monthly"
	if annual {
		billing = "annual"
	}
	c.QuotesServed.WithLabelValues(billing).Inc()
}

// LeadSubmitted counts a lead submission attempt.
func (c *Collector) LeadSubmitted(kind, outcome string) {
	if c == nil {
		return
	}
	if kind == "" {
		kind = "unknown"
	}
	c.Leads.WithLabelValues(kind, outcome).Inc()
}

// CatalogReloaded records the result of a catalog reload.
func (c *Collector) CatalogReloaded(err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.CatalogReloadErrors.Inc()
		return
	}
	c.CatalogReloads.Inc()
	c.CatalogLastReload.SetToCurrentTime()
}
