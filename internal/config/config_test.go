package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/techo/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.StoreBackend)
	assert.Equal(t, "local", cfg.Lock.Backend)
	assert.Equal(t, 10*time.Second, cfg.Lock.TTL)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.Level())

	opts := cfg.BudgetOptions()
	assert.Equal(t, 5, opts.MaxServicesPerDay)
	assert.True(t, opts.Thresholds.AlertPercent.Equal(decimal.NewFromInt(80)))
	assert.True(t, opts.Thresholds.CriticalPercent.Equal(decimal.NewFromInt(95)))
	assert.Equal(t, 30, opts.ForecastWindowDays)
	assert.Equal(t, 3, opts.MaxRetries)

	pool := cfg.Pool()
	assert.Equal(t, 25, pool.MaxOpenConns)
	assert.Equal(t, 5, pool.MaxIdleConns)
	assert.Equal(t, 5*time.Minute, pool.ConnMaxLifetime)
	assert.True(t, cfg.DB.Migrate)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOCK_BACKEND", "redis")
	t.Setenv("ALERT_PERCENT", "70.5")
	t.Setenv("MAX_SERVICES_PER_DAY", "3")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, "redis", cfg.Lock.Backend)

	opts := cfg.BudgetOptions()
	assert.True(t, opts.Thresholds.AlertPercent.Equal(decimal.RequireFromString("70.5")))
	assert.Equal(t, 3, opts.MaxServicesPerDay)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "store backend", env: map[string]string{"STORE_BACKEND": "mongo"}},
		{name: "lock backend", env: map[string]string{"LOCK_BACKEND": "zookeeper"}},
		{name: "thresholds inverted", env: map[string]string{"ALERT_PERCENT": "96"}},
		{name: "not a number", env: map[string]string{"MAX_SERVICES_PER_DAY": "five"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
