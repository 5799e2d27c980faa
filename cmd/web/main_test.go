package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"crownwellness.az/crown-web/internal/catalog"
	"crownwellness.az/crown-web/internal/content"
	"crownwellness.az/crown-web/internal/i18n"
	"crownwellness.az/crown-web/internal/leads"
	"crownwellness.az/crown-web/internal/metrics"
	mw "crownwellness.az/crown-web/internal/middleware"
)

const sessionCookie = "CROWN_WEB_SESSION"

// newTestRouter builds the same router as main(), optionally adding extra routes.
func newTestRouter(t *testing.T, add func(r chi.Router), opts ...leads.Option) http.Handler {
	t.Helper()
	// ensure templates reparse each request and set correct paths
	devMode = true
	templatesDir = "../../templates"
	publicDir = "../../public"
	if _, err := parseTemplates(); err != nil {
		t.Fatalf("parseTemplates failed: %v", err)
	}
	var err error
	i18nBundle, err = i18n.Load("../../locales", "en", supportedLanguages)
	if err != nil {
		t.Fatalf("load i18n: %v", err)
	}
	catalogs = catalog.NewStaticHolder(catalog.Default())
	contentStore = content.NewStore("../../content", "en", 0)
	collector = metrics.NewWithRegistry(prometheus.NewRegistry())
	leadService = leads.NewService(leads.NewMemoryStore(0), append([]leads.Option{leads.WithRecorder(collector)}, opts...)...)

	sessions := mw.NewSessionStore(mw.SessionOptions{HashKey: []byte(strings.Repeat("s", 32))})
	var extra []func(chi.Router)
	if add != nil {
		extra = append(extra, add)
	}
	return newRouter(sessions, zap.NewNop(), 0, extra...)
}

// browser carries cookies between requests and sends the CSRF header on
// unsafe methods, as the layout's hx-headers does.
type browser struct {
	t       *testing.T
	srv     http.Handler
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, srv http.Handler) *browser {
	t.Helper()
	b := &browser{t: t, srv: srv, cookies: map[string]*http.Cookie{}}
	if rec := b.get("/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rec.Code)
	}
	// first page view issues the session and CSRF cookies
	if rec := b.get("/contact"); rec.Code != http.StatusOK {
		t.Fatalf("GET /contact expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	return b
}

func (b *browser) do(method, target string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	if c, ok := b.cookies["csrf_token"]; ok && method != http.MethodGet {
		req.Header.Set("X-CSRF-Token", c.Value)
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.srv.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return rec
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, target, nil, false)
}

func (b *browser) post(target string, form url.Values) *httptest.ResponseRecorder {
	return b.do(http.MethodPost, target, form, true)
}

func parseDoc(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestHealthzOK(t *testing.T) {
	srv := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "ok" {
		t.Fatalf("expected body 'ok', got %q", got)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			t.Fatalf("healthz should not issue a session cookie")
		}
	}
}

func TestHomeLocalizedNav_EN(t *testing.T) {
	srv := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, ">Trainers<") {
		t.Fatalf("expected localized nav label 'Trainers' in body; body=%s", body)
	}
}

func TestHomeLocalizedNav_AZQuery(t *testing.T) {
	srv := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/?hl=az", nil)
	req.Header.Set("Accept-Language", "ru")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Language"); got != "az" {
		t.Fatalf("expected Content-Language az, got %q", got)
	}
	doc := parseDoc(t, rec)
	if lang, _ := doc.Find("html").Attr("lang"); lang != "az" {
		t.Fatalf("expected html lang az, got %q", lang)
	}
	if !strings.Contains(rec.Body.String(), ">Məşqçilər<") {
		t.Fatalf("expected Azerbaijani nav label in body")
	}
}

func TestHomeRendersSections(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := newBrowser(t, srv).get("/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	doc := parseDoc(t, rec)
	for _, sel := range []string{"#hero", "#impressive-scale", "#experiences", "#membership", "#contact", "#membership-configurator", "#contact-form", "#splash"} {
		if doc.Find(sel).Length() == 0 {
			t.Fatalf("expected %s on the home page", sel)
		}
	}
	if n := doc.Find("#experiences .featured li").Length(); n != 3 {
		t.Fatalf("expected 3 featured gallery items, got %d", n)
	}
	headers, _ := doc.Find("body").Attr("hx-headers")
	if !strings.Contains(headers, "X-CSRF-Token") {
		t.Fatalf("expected hx-headers with the CSRF token, got %q", headers)
	}
}

func TestHTMXPostRequiresCSRF(t *testing.T) {
	srv := newTestRouter(t, func(r chi.Router) {
		r.Post("/echo", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = io.WriteString(w, "ok")
		})
	})
	b := newBrowser(t, srv)

	// POST without the header should 403 for htmx callers
	req := httptest.NewRequest(http.MethodPost, "/echo", nil)
	req.Header.Set("HX-Request", "true")
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for missing CSRF, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("expected JSON error for htmx, got %q", ct)
	}

	rec = b.post("/echo", nil)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "ok" {
		t.Fatalf("expected 200 ok with valid CSRF, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestSplashDismissPersistsInSession(t *testing.T) {
	srv := newTestRouter(t, nil)
	b := newBrowser(t, srv)

	if parseDoc(t, b.get("/")).Find("#splash").Length() != 1 {
		t.Fatalf("expected splash on first visit")
	}
	if rec := b.post("/splash/dismiss", nil); rec.Code != http.StatusOK {
		t.Fatalf("dismiss: expected 200, got %d", rec.Code)
	}
	if parseDoc(t, b.get("/")).Find("#splash").Length() != 0 {
		t.Fatalf("expected no splash after dismissal")
	}
}

func TestAboutRendersMarkdownPerLanguage(t *testing.T) {
	srv := newTestRouter(t, nil)
	b := newBrowser(t, srv)

	doc := parseDoc(t, b.get("/about"))
	if got := strings.TrimSpace(doc.Find("article.content-page h1").Text()); got != "About Crown Wellness Club" {
		t.Fatalf("unexpected about title %q", got)
	}
	if doc.Find(".prose h2#a-new-era-of-wellness").Length() != 1 {
		t.Fatalf("expected rendered markdown heading with id")
	}
	if doc.Find(".highlights li").Length() != 3 {
		t.Fatalf("expected 3 highlights")
	}

	doc = parseDoc(t, b.get("/about?hl=ru"))
	if got := strings.TrimSpace(doc.Find("article.content-page h1").Text()); got != "О Crown Wellness Club" {
		t.Fatalf("unexpected russian about title %q", got)
	}
}

func TestTrainersPageListsStaff(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := newBrowser(t, srv).get("/trainers")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	doc := parseDoc(t, rec)
	if n := doc.Find("article.trainer").Length(); n != 6 {
		t.Fatalf("expected 6 trainers, got %d", n)
	}
	if doc.Find("#trainer-aysel-mammadova").Length() != 1 {
		t.Fatalf("expected trainer anchor by id")
	}
}

func TestContactPlanQueryPreselectsInterest(t *testing.T) {
	srv := newTestRouter(t, nil)
	doc := parseDoc(t, newBrowser(t, srv).get("/contact?plan=premium"))
	if v, _ := doc.Find("select[name=interestedIn] option[selected]").Attr("value"); v != "premium" {
		t.Fatalf("expected premium preselected, got %q", v)
	}
}

func TestAssetsServedWithETag(t *testing.T) {
	srv := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("ETag") == "" {
		t.Fatalf("expected ETag header")
	}
}

func TestMetricsEndpointExposesDomainCounters(t *testing.T) {
	srv := newTestRouter(t, nil)
	b := newBrowser(t, srv)
	if rec := b.post("/membership/addons/fitness-zone/toggle", nil); rec.Code != http.StatusOK {
		t.Fatalf("toggle: %d", rec.Code)
	}
	rec := b.get("/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`crown_web_addon_toggles_total{addon="fitness-zone",selected="true"} 1`,
		`crown_web_requests_total{method="POST",route="/membership/addons/{addonID}/toggle",status="200"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in metrics output", want)
		}
	}
}

func TestReadyzReportsComponents(t *testing.T) {
	srv := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		State      string `json:"state"`
		Components []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"components"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.State != "operational" || len(body.Components) != 3 {
		t.Fatalf("unexpected summary %+v", body)
	}
}
