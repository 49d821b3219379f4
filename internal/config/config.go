// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes server timeouts,
// logging, storage, seeding, sessions, rate limiting, backups, and
// observability settings.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// BackupConfig controls scheduled collection snapshots. An empty Cron
// disables backups. Dir and S3.Bucket select the sinks; at least one must be
// set when Cron is.
type BackupConfig struct {
	Cron      string // BACKUP_CRON, e.g. "@daily" or "0 2 * * *"
	Dir       string // BACKUP_DIR
	PurgeCron string // IDEMPOTENCY_PURGE_CRON
	S3        S3Config
}

// S3Config is the S3-compatible bucket used as a backup sink.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	ShutdownTimeout   time.Duration
	MaxHeaderBytes    int    // bytes
	MaxBodyBytes      int64  // request body cap
	GinMode           string // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// Storage
	DBDriver    string // sqlite|postgres|memory
	DBPath      string // SQLite path
	DatabaseURL string // Postgres DSN

	// App
	PageSize        int    // listings per page
	SeedOnStart     bool   // seed never-written collections at startup
	SeedFile        string // optional YAML override for the embedded seed
	SessionCapacity int    // live sessions kept in memory

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Idempotency
	IdempotencyTTL time.Duration // how long a given Idempotency-Key is valid

	Backup BackupConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the configuration from the environment, fills defaults and
// validates the result. All validation problems are reported together.
func Load() (Config, error) {
	cfg := Config{
		Port:              str("PORT", "8080"),
		ReadTimeout:       env("READ_TIMEOUT", 15*time.Second, time.ParseDuration),
		ReadHeaderTimeout: env("READ_HEADER_TIMEOUT", 10*time.Second, time.ParseDuration),
		WriteTimeout:      env("WRITE_TIMEOUT", 20*time.Second, time.ParseDuration),
		IdleTimeout:       env("IDLE_TIMEOUT", 60*time.Second, time.ParseDuration),
		ShutdownTimeout:   env("SHUTDOWN_TIMEOUT", 10*time.Second, time.ParseDuration),
		MaxHeaderBytes:    env("MAX_HEADER_BYTES", 1<<20, strconv.Atoi),
		MaxBodyBytes:      env("MAX_BODY_BYTES", int64(1<<20), parseInt64),
		GinMode:           lower("GIN_MODE", "release"),

		LogLevel:       lower("LOG_LEVEL", "info"),
		LogPretty:      env("LOG_PRETTY", false, parseBool),
		SwaggerEnabled: env("SWAGGER_ENABLED", false, parseBool),
		APIBasePath:    normalizeBasePath(str("API_BASE_PATH", "/api/v1")),

		DBDriver:    lower("DB_DRIVER", "sqlite"),
		DBPath:      str("DB_PATH", "warri.db"),
		DatabaseURL: str("DATABASE_URL", ""),

		PageSize:        env("PAGE_SIZE", 12, strconv.Atoi),
		SeedOnStart:     env("SEED_ON_START", true, parseBool),
		SeedFile:        str("SEED_FILE", ""),
		SessionCapacity: env("SESSION_CAPACITY", 1024, strconv.Atoi),

		RateRPS:   env("RATE_RPS", 5.0, parseFloat),
		RateBurst: env("RATE_BURST", 10, strconv.Atoi),

		CORS: CORSConfig{AllowedOrigins: splitCSV(str("CORS_ALLOWED_ORIGINS", ""))},
		Security: SecurityConfig{
			EnableHSTS: env("ENABLE_HSTS", false, parseBool),
			HSTSMaxAge: env("HSTS_MAX_AGE", 180*24*time.Hour, time.ParseDuration),
		},

		IdempotencyTTL: env("IDEMPOTENCY_TTL", 24*time.Hour, time.ParseDuration),

		Backup: BackupConfig{
			Cron:      strings.TrimSpace(str("BACKUP_CRON", "")),
			Dir:       str("BACKUP_DIR", ""),
			PurgeCron: strings.TrimSpace(str("IDEMPOTENCY_PURGE_CRON", "@hourly")),
			S3: S3Config{
				Bucket:          str("BACKUP_S3_BUCKET", ""),
				Region:          str("BACKUP_S3_REGION", "us-east-1"),
				Endpoint:        str("BACKUP_S3_ENDPOINT", ""),
				Prefix:          str("BACKUP_S3_PREFIX", "backups"),
				AccessKeyID:     str("BACKUP_S3_ACCESS_KEY_ID", ""),
				SecretAccessKey: str("BACKUP_S3_SECRET_ACCESS_KEY", ""),
			},
		},

		OTEL: OTELConfig{
			Enabled:     env("OTEL_ENABLED", false, parseBool),
			Endpoint:    str("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    env("OTEL_EXPORTER_OTLP_INSECURE", true, parseBool),
			ServiceName: str("OTEL_SERVICE_NAME", "warri-apartment-hunt"),
			SampleRatio: env("OTEL_TRACES_SAMPLER_ARG", 1.0, parseFloat),
		},
	}
	cfg.normalize()
	return cfg, cfg.validate()
}

func (c *Config) normalize() {
	if c.LogLevel == "warning" {
		c.LogLevel = "warn"
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		c.GinMode = "release"
	}
	if c.DBDriver == "postgresql" {
		c.DBDriver = "postgres"
	}
}

func (c Config) validate() error {
	var errs []error
	check := func(bad bool, msg string) {
		if bad {
			errs = append(errs, errors.New(msg))
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		check(true, "LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	check(c.ReadTimeout <= 0 || c.ReadHeaderTimeout <= 0 || c.WriteTimeout <= 0 ||
		c.IdleTimeout <= 0 || c.ShutdownTimeout <= 0, "timeouts must be positive durations")
	check(c.MaxHeaderBytes <= 0, "MAX_HEADER_BYTES must be > 0")
	check(c.MaxBodyBytes <= 0, "MAX_BODY_BYTES must be > 0")

	switch c.DBDriver {
	case "sqlite", "memory":
	case "postgres":
		check(c.DatabaseURL == "", "DATABASE_URL is required when DB_DRIVER=postgres")
	default:
		check(true, "DB_DRIVER must be one of: sqlite, postgres, memory")
	}

	check(c.PageSize < 1, "PAGE_SIZE must be >= 1")
	check(c.SessionCapacity < 1, "SESSION_CAPACITY must be >= 1")
	check(c.RateRPS < 0, "RATE_RPS must be >= 0")
	check(c.RateBurst < 1, "RATE_BURST must be >= 1")
	check(c.Security.HSTSMaxAge < 0, "HSTS_MAX_AGE must be >= 0")
	check(c.IdempotencyTTL <= 0, "IDEMPOTENCY_TTL must be > 0")

	if b := c.Backup; b.Cron != "" {
		check(!validCron(b.Cron), "BACKUP_CRON is not a valid cron expression")
		check(b.Dir == "" && b.S3.Bucket == "", "BACKUP_CRON requires BACKUP_DIR or BACKUP_S3_BUCKET")
	}
	check(c.Backup.PurgeCron != "" && !validCron(c.Backup.PurgeCron),
		"IDEMPOTENCY_PURGE_CRON is not a valid cron expression")
	check(c.OTEL.SampleRatio < 0 || c.OTEL.SampleRatio > 1, "OTEL_TRACES_SAMPLER_ARG must be in [0,1]")

	return errors.Join(errs...)
}

func validCron(spec string) bool {
	_, err := cron.ParseStandard(spec)
	return err == nil
}

// env returns the parsed value of k, or def when k is unset, blank or does
// not parse.
func env[T any](k string, def T, parse func(string) (T, error)) T {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	out, err := parse(v)
	if err != nil {
		return def
	}
	return out
}

// str returns k verbatim, or def when k is unset or blank.
func str(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func lower(k, def string) string { return strings.ToLower(str(k, def)) }

func parseInt64(s string) (int64, error)   { return strconv.ParseInt(s, 10, 64) }
func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

var errNotBool = errors.New("not a boolean")

// parseBool accepts the usual spellings of on and off.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y", "on":
		return true, nil
	case "0", "false", "no", "n", "off":
		return false, nil
	}
	return false, errNotBool
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalizeBasePath returns p with a leading slash and no trailing slash;
// blank means "/".
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	return "/" + p
}
