// Package config loads the web server's runtime configuration from the
// environment, an optional .env file, and command-line flags.
package config

import (
	"bufio"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	envPrefix           = "CROWN_WEB_"
	defaultEnvFile      = ".env"
	defaultPort         = "8080"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	defaultReqTimeout   = 30 * time.Second
	defaultEnvironment  = "local"
	defaultLeadsDriver  = "memory"
	defaultRedisKey     = "crown:leads"
	defaultSQLitePath   = "data/leads.db"
	defaultMaxStored    = 1000
	defaultLeadBurst    = 5
	defaultLeadWindow   = 10 * time.Minute
	minProdKeyLength    = 32
)

// Lead store drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Paths     PathConfig
	Session   SessionConfig
	Leads     LeadsConfig
	Analytics AnalyticsConfig
	DevMode   bool
	// Env is local, staging or prod.
	Env string
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
}

// PathConfig points at the on-disk runtime assets.
type PathConfig struct {
	Templates string
	Public    string
	Locales   string
	Content   string
	Catalog   string
}

// SessionConfig holds the cookie codec keys.
type SessionConfig struct {
	HashKey  []byte
	BlockKey []byte
	Secure   bool
}

// LeadsConfig selects the lead store and submission limits.
type LeadsConfig struct {
	Driver          string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RedisKey        string
	SQLitePath      string
	MaxStored       int
	RateLimitBurst  int
	RateLimitWindow time.Duration
}

// AnalyticsConfig is surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string
	GTMContainerID   string
	Debug            bool
}

// IsProd reports whether the server runs in production.
func (c Config) IsProd() bool { return c.Env == "prod" }

// ValidationError aggregates invalid configuration fields.
type ValidationError struct {
	fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns the invalid field names.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
	args         []string
	parseFlags   bool
}

// WithEnvFile reads path instead of .env. An empty path skips the file.
func WithEnvFile(path string) Option { return func(o *loaderOptions) { o.envFile = path } }

// WithEnvMap overrides individual variables; it takes precedence over the system env.
func WithEnvMap(values map[string]string) Option { return func(o *loaderOptions) { o.envMap = values } }

// WithoutSystemEnv ignores os.Environ.
func WithoutSystemEnv() Option { return func(o *loaderOptions) { o.useSystemEnv = false } }

// WithArgs parses command-line flags from args.
func WithArgs(args []string) Option {
	return func(o *loaderOptions) {
		o.args = args
		o.parseFlags = true
	}
}

// Load assembles the configuration. Flags override environment values.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnv, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if v, ok := options.envMap[key]; ok {
				return v, true
			}
		}
		if options.useSystemEnv {
			if v, ok := os.LookupEnv(key); ok {
				return v, true
			}
		}
		if v, ok := dotEnv[key]; ok {
			return v, true
		}
		return "", false
	}
	env := func(name string) string { return envPrefix + name }

	// Port resolution: CROWN_WEB_PORT, then PORT, else 8080.
	port := stringWithDefault(lookup, env("PORT"), "")
	if port == "" {
		port = stringWithDefault(lookup, "PORT", defaultPort)
	}

	cfg := Config{
		Env:     strings.ToLower(stringWithDefault(lookup, env("ENV"), defaultEnvironment)),
		DevMode: boolWithDefault(lookup, env("DEV"), false) || boolWithDefault(lookup, "DEV", false),
		Server: ServerConfig{
			Addr:           ":" + port,
			ReadTimeout:    durationWithDefault(lookup, env("READ_TIMEOUT"), defaultReadTimeout),
			WriteTimeout:   durationWithDefault(lookup, env("WRITE_TIMEOUT"), defaultWriteTimeout),
			IdleTimeout:    durationWithDefault(lookup, env("IDLE_TIMEOUT"), defaultIdleTimeout),
			RequestTimeout: durationWithDefault(lookup, env("REQUEST_TIMEOUT"), defaultReqTimeout),
		},
		Paths: PathConfig{
			Templates: stringWithDefault(lookup, env("TEMPLATES_DIR"), "templates"),
			Public:    stringWithDefault(lookup, env("PUBLIC_DIR"), "public"),
			Locales:   stringWithDefault(lookup, env("LOCALES_DIR"), "locales"),
			Content:   stringWithDefault(lookup, env("CONTENT_DIR"), "content"),
			Catalog:   stringWithDefault(lookup, env("CATALOG_FILE"), "data/catalog.yaml"),
		},
		Leads: LeadsConfig{
			Driver:          strings.ToLower(stringWithDefault(lookup, env("LEADS_DRIVER"), defaultLeadsDriver)),
			RedisAddr:       stringWithDefault(lookup, env("REDIS_ADDR"), ""),
			RedisPassword:   stringWithDefault(lookup, env("REDIS_PASSWORD"), ""),
			RedisDB:         intWithDefault(lookup, env("REDIS_DB"), 0),
			RedisKey:        stringWithDefault(lookup, env("REDIS_KEY"), defaultRedisKey),
			SQLitePath:      stringWithDefault(lookup, env("SQLITE_PATH"), defaultSQLitePath),
			MaxStored:       intWithDefault(lookup, env("LEADS_MAX_STORED"), defaultMaxStored),
			RateLimitBurst:  intWithDefault(lookup, env("LEADS_RATE_BURST"), defaultLeadBurst),
			RateLimitWindow: durationWithDefault(lookup, env("LEADS_RATE_WINDOW"), defaultLeadWindow),
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: stringWithDefault(lookup, env("GA_MEASUREMENT_ID"), ""),
			GTMContainerID:   stringWithDefault(lookup, env("GTM_CONTAINER_ID"), ""),
			Debug:            boolWithDefault(lookup, env("ANALYTICS_DEBUG"), false),
		},
	}
	cfg.Session = SessionConfig{
		HashKey:  keyWithDefault(lookup, env("SESSION_HASH_KEY")),
		BlockKey: keyWithDefault(lookup, env("SESSION_BLOCK_KEY")),
		Secure:   boolWithDefault(lookup, env("SESSION_SECURE"), cfg.Env == "prod"),
	}

	if options.parseFlags {
		if err := applyFlags(&cfg, options.args); err != nil {
			return Config{}, err
		}
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("crown-web", flag.ContinueOnError)
	fs.StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "HTTP listen address")
	fs.StringVar(&cfg.Paths.Templates, "templates", cfg.Paths.Templates, "templates directory")
	fs.StringVar(&cfg.Paths.Public, "public", cfg.Paths.Public, "public assets directory")
	fs.StringVar(&cfg.Paths.Locales, "locales", cfg.Paths.Locales, "locale dictionaries directory")
	fs.StringVar(&cfg.Paths.Content, "content", cfg.Paths.Content, "markdown content directory")
	fs.StringVar(&cfg.Paths.Catalog, "catalog", cfg.Paths.Catalog, "catalog YAML file")
	fs.StringVar(&cfg.Leads.Driver, "leads-driver", cfg.Leads.Driver, "lead store: memory, redis or sqlite")
	fs.BoolVar(&cfg.DevMode, "dev", cfg.DevMode, "reparse templates per request and watch the catalog")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("config: parse flags: %w", err)
	}
	cfg.Leads.Driver = strings.ToLower(cfg.Leads.Driver)
	return nil
}

func validate(cfg Config) error {
	var fields []string
	switch cfg.Env {
	case "local", "staging", "prod":
	default:
		fields = append(fields, envPrefix+"ENV")
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		fields = append(fields, "addr")
	}
	switch cfg.Leads.Driver {
	case DriverMemory:
	case DriverRedis:
		if cfg.Leads.RedisAddr == "" {
			fields = append(fields, envPrefix+"REDIS_ADDR")
		}
	case DriverSQLite:
		if cfg.Leads.SQLitePath == "" {
			fields = append(fields, envPrefix+"SQLITE_PATH")
		}
	default:
		fields = append(fields, envPrefix+"LEADS_DRIVER")
	}
	if cfg.Leads.RateLimitBurst < 0 {
		fields = append(fields, envPrefix+"LEADS_RATE_BURST")
	}
	if n := len(cfg.Session.BlockKey); n != 0 && n != 16 && n != 24 && n != 32 {
		fields = append(fields, envPrefix+"SESSION_BLOCK_KEY")
	}
	if cfg.Env == "prod" && len(cfg.Session.HashKey) < minProdKeyLength {
		fields = append(fields, envPrefix+"SESSION_HASH_KEY")
	}
	if len(fields) > 0 {
		return &ValidationError{fields: fields}
	}
	return nil
}

// loadDotEnv reads KEY=VALUE lines. A missing file is not an error.
func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}

// keyWithDefault accepts hex, base64 or raw key material.
func keyWithDefault(lookup func(string) (string, bool), key string) []byte {
	value, ok := lookup(key)
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return nil
	}
	if b, err := hex.DecodeString(value); err == nil && len(b) > 0 {
		return b
	}
	if b, err := base64.StdEncoding.DecodeString(value); err == nil && len(b) > 0 {
		return b
	}
	return []byte(value)
}
