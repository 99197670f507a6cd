package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Optional values fall back to sensible
// defaults; values that are required for the selected store backend are
// enforced by must() and missing ones halt startup with a fatal log.
type Config struct {
	Env          string // application environment ("dev", "prod")
	Port         string // HTTP port to listen on
	StoreBackend string // booking store backend: redis | mysql | file | memory
	StorePath    string // JSON file path for the file backend

	DBUser string // MySQL username (mysql backend only)
	DBPass string // MySQL password (optional)
	DBHost string // MySQL host
	DBPort string // MySQL port
	DBName string // MySQL database name

	BaseURL       string // public URL used in invites and calendar links
	OperatorName  string // display name for the consultation operator
	OperatorEmail string // operator address that receives booking alerts

	SMTP      SMTPConfig      // outgoing mail settings; empty host disables SMTP
	RateLimit RateLimitConfig // commit-endpoint rate limiting
}

// SMTPConfig carries the outgoing mail transport settings.  An empty Host
// means SMTP is not configured and the notifier falls back to logging.
type SMTPConfig struct {
	Host     string // SMTP server hostname
	Port     string // SMTP server port
	Username string // auth username
	Password string // auth password
	From     string // From address on outgoing mail
}

// RateLimitConfig controls the fixed-window limiter applied to the
// booking commit endpoint.
type RateLimitConfig struct {
	Enabled  bool          // feature toggle
	Requests int           // allowed requests per window per client
	Window   time.Duration // window length
	Prefix   string        // Redis key prefix
}

// Load reads configuration from environment variables and returns a
// Config.  Only the variables required by the selected store backend are
// mandatory, so the notifier worker can share this loader without
// carrying server-only settings.
func Load() Config {
	cfg := Config{
		Env:           getenv("APP_ENV", "dev"),
		Port:          getenv("APP_PORT", "8080"),
		StoreBackend:  getenv("STORE_BACKEND", "redis"),
		StorePath:     getenv("STORE_PATH", "data/bookings.json"),
		BaseURL:       getenv("BASE_URL", "https://qaxp.com"),
		OperatorName:  getenv("OPERATOR_NAME", "QAXP"),
		OperatorEmail: getenv("OPERATOR_EMAIL", "bookings@qaxp.com"),
	}

	if cfg.StoreBackend == "mysql" {
		cfg.DBUser = must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS") // empty allowed
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
	}

	cfg.SMTP = SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     getenv("SMTP_PORT", "587"),
		Username: os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASS"),
		From:     getenv("SMTP_FROM", "no-reply@qaxp.com"),
	}

	cfg.RateLimit = RateLimitConfig{
		Enabled:  getenv("RATE_LIMIT_ENABLED", "true") == "true",
		Requests: getint("RATE_LIMIT_REQUESTS", 10),
		Window:   time.Duration(getint("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		Prefix:   getenv("RATE_LIMIT_PREFIX", "qaxp:rl"),
	}

	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the variable's value or the fallback when unset/empty.
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getint is getenv for integers; an unparsable value is fatal so a typo
// never silently changes a limit.
func getint(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
