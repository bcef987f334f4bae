package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	SecretKey string // SECRET_KEY: signs session cookies; required outside dev

	DatabaseURL      string        // Optional: PostgreSQL URL; empty selects SQLite
	DatabaseFile     string        // Optional: SQLite file path (default: instance/banco.db)
	DBConnectTimeout time.Duration // Optional: bound on opening and pinging the database (default: 5s)
	DBMaxOpenConns   int           // Optional: PostgreSQL pool size (default: 25)
	DBMaxIdleConns   int           // Optional: PostgreSQL idle connections (default: 5)

	SendGridAPIKey    string        // Optional: without it reset mails are only logged
	MailDefaultSender string        // Optional: From address (default: no-reply@republic.local)
	MailTimeout       time.Duration // Optional: bound on one SendGrid call (default: 10s)
	PublicBaseURL     string        // Optional: base of reset links (default: http://localhost:<port>)

	PepperFile           string        // Optional: password pepper file (default: ./pepper)
	SessionTTL           time.Duration // Optional: session cookie lifetime (default: 24h)
	RequestTimeout       time.Duration // Optional: per-request deadline (default: 15s)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired reset token sweep interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		SecretKey:            os.Getenv("SECRET_KEY"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		DatabaseFile:         getEnvOrDefault("DATABASE_FILE", "instance/banco.db"),
		DBConnectTimeout:     getEnvDurationOrDefault("DB_CONNECT_TIMEOUT", 5*time.Second),
		DBMaxOpenConns:       getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		SendGridAPIKey:       os.Getenv("SENDGRID_API_KEY"),
		MailDefaultSender:    getEnvOrDefault("MAIL_DEFAULT_SENDER", "no-reply@republic.local"),
		MailTimeout:          getEnvDurationOrDefault("MAIL_TIMEOUT", 10*time.Second),
		PublicBaseURL:        os.Getenv("PUBLIC_BASE_URL"),
		PepperFile:           getEnvOrDefault("PEPPER_FILE", "pepper"),
		SessionTTL:           getEnvDurationOrDefault("SESSION_TTL", 24*time.Hour),
		RequestTimeout:       getEnvDurationOrDefault("REQUEST_TIMEOUT", 15*time.Second),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:" + strconv.Itoa(cfg.Port)
	}

	return cfg
}

// Validate reports settings the process cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.SecretKey == "" && !c.IsDev() {
		errs = append(errs, errors.New("SECRET_KEY is required outside dev"))
	}
	if c.SecretKey != "" && len(c.SecretKey) < 16 {
		errs = append(errs, errors.New("SECRET_KEY must be at least 16 bytes"))
	}
	if c.DatabaseURL == "" && c.DatabaseFile == "" {
		errs = append(errs, errors.New("one of DATABASE_URL or DATABASE_FILE is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, errors.New("PORT out of range"))
	}
	return errors.Join(errs...)
}

func (c Config) IsDev() bool { return c.Env == "dev" }

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// "1h", "30m", "90s"
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
