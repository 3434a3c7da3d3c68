package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/techo/internal/budget"
	"github.com/MrJamesThe3rd/techo/internal/database"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Techo"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"techo"`

		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
		Migrate         bool          `envconfig:"DB_MIGRATE" default:"true"`
	}

	// StoreBackend is "postgres" or "memory".
	StoreBackend string `envconfig:"STORE_BACKEND" default:"postgres"`

	Server struct {
		Timeout            time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Lock struct {
		// Backend is "local" for a single process or "redis" when several
		// replicas admit against the same contracts.
		Backend       string        `envconfig:"LOCK_BACKEND" default:"local"`
		TTL           time.Duration `envconfig:"LOCK_TTL" default:"10s"`
		RetryInterval time.Duration `envconfig:"LOCK_RETRY_INTERVAL" default:"50ms"`
		MaxRetries    int           `envconfig:"LOCK_MAX_RETRIES" default:"100"`
	}

	Redis struct {
		Address  string `envconfig:"REDIS_ADDRESS" default:"localhost:6379"`
		Password string `envconfig:"REDIS_PASSWORD" default:""`
		DB       int    `envconfig:"REDIS_DB" default:"0"`
	}

	Budget struct {
		MaxServicesPerDay  int     `envconfig:"MAX_SERVICES_PER_DAY" default:"5"`
		AlertPercent       float64 `envconfig:"ALERT_PERCENT" default:"80"`
		CriticalPercent    float64 `envconfig:"CRITICAL_PERCENT" default:"95"`
		ForecastWindowDays int     `envconfig:"FORECAST_WINDOW_DAYS" default:"30"`
		AdmitMaxRetries    int     `envconfig:"ADMIT_MAX_RETRIES" default:"3"`
		AlertConcurrency   int     `envconfig:"ALERT_CONCURRENCY" default:"8"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func (c *Config) Pool() database.Pool {
	return database.Pool{
		MaxOpenConns:    c.DB.MaxOpenConns,
		MaxIdleConns:    c.DB.MaxIdleConns,
		ConnMaxLifetime: c.DB.ConnMaxLifetime,
	}
}

func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.App.LogLevel))); err != nil {
		return slog.LevelInfo
	}

	return level
}

// BudgetOptions maps the global budget defaults. Clock and logger are left to
// the caller.
func (c *Config) BudgetOptions() budget.Options {
	return budget.Options{
		MaxServicesPerDay: c.Budget.MaxServicesPerDay,
		Thresholds: budget.Thresholds{
			AlertPercent:    decimal.NewFromFloat(c.Budget.AlertPercent),
			CriticalPercent: decimal.NewFromFloat(c.Budget.CriticalPercent),
		},
		ForecastWindowDays: c.Budget.ForecastWindowDays,
		MaxRetries:         c.Budget.AdmitMaxRetries,
		AlertConcurrency:   c.Budget.AlertConcurrency,
	}
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.Lock.Backend {
	case "local", "redis":
	default:
		return fmt.Errorf("unknown LOCK_BACKEND %q", c.Lock.Backend)
	}

	if c.Budget.AlertPercent > c.Budget.CriticalPercent {
		return fmt.Errorf("ALERT_PERCENT (%v) must not exceed CRITICAL_PERCENT (%v)",
			c.Budget.AlertPercent, c.Budget.CriticalPercent)
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
