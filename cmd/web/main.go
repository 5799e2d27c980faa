package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"crownwellness.az/crown-web/internal/catalog"
	"crownwellness.az/crown-web/internal/config"
	"crownwellness.az/crown-web/internal/content"
	handlersPkg "crownwellness.az/crown-web/internal/handlers"
	"crownwellness.az/crown-web/internal/i18n"
	"crownwellness.az/crown-web/internal/leads"
	"crownwellness.az/crown-web/internal/metrics"
	mw "crownwellness.az/crown-web/internal/middleware"
	"crownwellness.az/crown-web/internal/observability"
	"crownwellness.az/crown-web/internal/pricing"
	"crownwellness.az/crown-web/internal/status"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	// devMode reparses templates per request, disables the content cache and
	// watches the catalog file. Set by CROWN_WEB_DEV or -dev.
	devMode   bool
	tmplCache *template.Template

	i18nBundle    *i18n.Bundle
	catalogs      = catalog.NewStaticHolder(nil)
	contentStore  *content.Store
	leadService   = leads.NewService(nil)
	collector     *metrics.Collector
	siteAnalytics handlersPkg.Analytics
)

var supportedLanguages = []string{"en", "az", "ru"}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "crown-web: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.WithArgs(os.Args[1:]))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.DevMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	templatesDir = cfg.Paths.Templates
	publicDir = cfg.Paths.Public
	devMode = cfg.DevMode

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			return fmt.Errorf("parse templates: %w", err)
		}
		tmplCache = tc
	}

	i18nBundle, err = i18n.Load(cfg.Paths.Locales, "en", supportedLanguages)
	if err != nil {
		return fmt.Errorf("load locales: %w", err)
	}

	collector = metrics.New()
	catalogs, err = catalog.NewHolder(cfg.Paths.Catalog, logger.Named("catalog"))
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	catalogs.OnChange(func(c *catalog.Catalog, err error) {
		collector.CatalogReloaded(err)
		if err == nil {
			warnLabelDrift(logger, c)
		}
	})
	warnLabelDrift(logger, catalogs.Get())

	cacheTTL := time.Duration(-1)
	if devMode {
		cacheTTL = 0
	}
	contentStore = content.NewStore(cfg.Paths.Content, i18nBundle.Fallback(), cacheTTL)

	store, closeStore, err := openLeadStore(cfg.Leads, logger)
	if err != nil {
		return err
	}
	defer closeStore()
	leadService = leads.NewService(store,
		leads.WithLimiter(leads.NewIPLimiter(cfg.Leads.RateLimitBurst, cfg.Leads.RateLimitWindow, nil)),
		leads.WithRecorder(collector),
		leads.WithLogger(logger.Named("leads")),
	)

	siteAnalytics = handlersPkg.AnalyticsFromConfig(cfg.Analytics)
	sessions := mw.NewSessionStore(mw.SessionOptions{
		HashKey:  cfg.Session.HashKey,
		BlockKey: cfg.Session.BlockKey,
		Secure:   cfg.Session.Secure,
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if devMode {
		go func() {
			if err := catalogs.Watch(ctx); err != nil {
				logger.Warn("catalog watch stopped", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(sessions, logger, cfg.Server.RequestTimeout),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening",
			zap.String("addr", cfg.Server.Addr),
			zap.Bool("dev_mode", devMode),
			zap.String("env", cfg.Env),
			zap.String("leads_driver", cfg.Leads.Driver),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newRouter wires middleware and routes. extra registers additional routes
// behind the session and CSRF middleware.
func newRouter(sessions *mw.SessionStore, logger *zap.Logger, timeout time.Duration, extra ...func(chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
	r.Use(chimw.RealIP)
	r.Use(collector.Middleware)
	r.Use(mw.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	if timeout > 0 {
		r.Use(chimw.Timeout(timeout))
	}

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/readyz", newReadiness(5*time.Second).Handler())
	r.Handle("/metrics", collector.Handler())

	// Static assets under /assets/
	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(publicDir, "assets"), devMode)))

	r.Group(func(r chi.Router) {
		r.Use(mw.HTMX)
		r.Use(sessions.Middleware)
		r.Use(mw.Locale(i18nBundle))
		r.Use(mw.CSRF)
		r.Use(mw.VaryLocale)
		routes(r)
		for _, add := range extra {
			add(r)
		}
	})
	return r
}

func routes(r chi.Router) {
	r.Get("/", HomeHandler)
	r.Get("/about", AboutHandler)
	r.Get("/trainers", TrainersHandler)
	r.Get("/gallery", GalleryHandler)
	r.Get("/contact", ContactHandler)

	r.Route("/membership", func(r chi.Router) {
		r.Post("/addons/{addonID}/toggle", MembershipToggleHandler)
		r.Post("/billing", MembershipBillingHandler)
		r.Post("/custom", MembershipCustomHandler)
		r.Get("/quote", MembershipQuoteHandler)
	})

	r.Route("/gallery", func(r chi.Router) {
		r.Get("/items", GalleryItemsFrag)
		r.Get("/items/{itemID}", GalleryModalFrag)
		r.Get("/items/{itemID}/{direction}", GalleryNavigateFrag)
		r.Post("/modal/close", GalleryModalClose)
	})

	r.Post("/contact", ContactSubmitHandler)
	r.Post("/leads", LeadSubmitHandler)
	r.Post("/splash/dismiss", SplashDismissHandler)
}

// newReadiness probes the catalog, the lead store and the about page.
func newReadiness(ttl time.Duration) *status.Reporter {
	return status.NewReporter(ttl,
		status.Check{Name: "catalog", Required: true, Probe: func(context.Context) error {
			return catalogs.Get().Validate()
		}},
		status.Check{Name: "lead_store", Required: true, Probe: func(ctx context.Context) error {
			if p, ok := leadService.Store().(interface{ Ping(context.Context) error }); ok {
				return p.Ping(ctx)
			}
			return nil
		}},
		status.Check{Name: "content", Probe: func(context.Context) error {
			if contentStore == nil {
				return errors.New("content store not configured")
			}
			_, err := contentStore.Get("pages", "about", "")
			return err
		}},
	)
}

// openLeadStore returns the configured lead store and its cleanup.
func openLeadStore(cfg config.LeadsConfig, logger *zap.Logger) (leads.Store, func(), error) {
	noop := func() {}
	switch cfg.Driver {
	case config.DriverRedis:
		rs := leads.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisKey, int64(cfg.MaxStored))
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, noop, fmt.Errorf("connect redis lead store: %w", err)
		}
		logger.Info("lead store ready", zap.String("driver", cfg.Driver), zap.String("addr", cfg.RedisAddr))
		return rs, func() { _ = rs.Close() }, nil
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, noop, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		ss, err := leads.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite lead store: %w", err)
		}
		logger.Info("lead store ready", zap.String("driver", cfg.Driver), zap.String("path", cfg.SQLitePath))
		return ss, func() { _ = ss.Close() }, nil
	default:
		logger.Info("lead store ready", zap.String("driver", config.DriverMemory))
		return leads.NewMemoryStore(cfg.MaxStored), noop, nil
	}
}

// warnLabelDrift logs authored discount labels that disagree with the prices.
func warnLabelDrift(logger *zap.Logger, c *catalog.Catalog) {
	for _, msg := range pricing.LabelDrift(c.Plans) {
		logger.Warn("discount label drift", zap.String("detail", msg))
	}
}
