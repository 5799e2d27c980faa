package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRecordsRoutePattern(t *testing.T) {
	t.Parallel()

	c := NewWithRegistry(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/gallery/items/{itemID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gallery/items/"+id, nil))
	}

	require.Equal(t, 3.0, testutil.ToFloat64(c.RequestsTotal.WithLabelValues("GET", "/gallery/items/{itemID}", "404")))
	require.Equal(t, 0.0, testutil.ToFloat64(c.RequestsInFlight))
}

func TestDomainCounters(t *testing.T) {
	t.Parallel()

	c := NewWithRegistry(prometheus.NewRegistry())
	c.AddOnToggled("spa-wellness", true)
	c.QuoteServed(false)
	c.LeadSubmitted("contact", "saved")
	c.LeadSubmitted("", "invalid")
	c.CatalogReloaded(nil)
	c.CatalogReloaded(errors.New("bad yaml"))

	require.Equal(t, 1.0, testutil.ToFloat64(c.AddOnToggles.WithLabelValues("spa-wellness", "true")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.QuotesServed.WithLabelValues("monthly")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.Leads.WithLabelValues("unknown", "invalid")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.CatalogReloads))
	require.Equal(t, 1.0, testutil.ToFloat64(c.CatalogReloadErrors))

	var nilCollector *Collector
	nilCollector.LeadSubmitted("contact", "saved")
}

func TestHandlerExposesRegistry(t *testing.T) {
	t.Parallel()

	c := NewWithRegistry(prometheus.NewRegistry())
	c.QuoteServed(true)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	require.True(t, strings.Contains(string(body), `crown_web_quotes_total{billing="annual"} 1`))
}
