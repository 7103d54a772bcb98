package config

import (
	"log/slog"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, vars map[string]string) AppConfig {
	t.Helper()
	var cfg AppConfig
	require.NoError(t, env.ParseWithOptions(&cfg, env.Options{Environment: vars}))
	cfg.Sanitize()
	return cfg
}

func TestParseServices(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    map[ServiceMode]bool
		expectError bool
	}{
		{name: "http only", input: "http", expected: map[ServiceMode]bool{ServiceModeHTTP: true}},
		{
			name:     "http and prober with spaces",
			input:    " http , prober ",
			expected: map[ServiceMode]bool{ServiceModeHTTP: true, ServiceModeProber: true},
		},
		{name: "duplicates", input: "prober,prober", expected: map[ServiceMode]bool{ServiceModeProber: true}},
		{name: "empty", input: "", expectError: true},
		{name: "only commas", input: " , ,", expectError: true},
		{name: "unknown", input: "http,scheduler", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseServices(tt.input)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAppConfigDefaults(t *testing.T) {
	cfg := parse(t, map[string]string{})

	assert.Equal(t, ":3001", cfg.HTTP.Addr)
	assert.Equal(t, "*", cfg.HTTP.AllowedOrigin)
	assert.False(t, cfg.HTTP.TLSEnabled())
	assert.EqualValues(t, 1<<20, cfg.HTTP.MaxBodyBytes)

	assert.Equal(t, 9100, cfg.Printers.Port)
	assert.Equal(t, 5*time.Second, cfg.Printers.Timeout)
	assert.Equal(t, time.Second, cfg.Printers.ProbeTimeout)
	assert.Equal(t, 30*time.Second, cfg.Printers.ProbeInterval)

	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, 500*time.Millisecond, cfg.Postgres.ReconnectInitial)
	assert.Equal(t, 30*time.Second, cfg.Postgres.ReconnectMax)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 2*time.Minute, cfg.Cache.PrinterStatusTTL)

	assert.True(t, cfg.IsHTTPServerEnabled())
	assert.True(t, cfg.IsProberEnabled())
	assert.Equal(t, slog.LevelInfo, cfg.Observability.SlogLevel())
	assert.False(t, cfg.Observability.Metrics.IsEnabled())
}

func TestAppConfigFromEnv(t *testing.T) {
	cfg := parse(t, map[string]string{
		"SERVICES":                      "http",
		"DEV":                           "true",
		"HTTP_ADDR":                     "0.0.0.0:3443",
		"HTTP_TLS_CERT_FILE":            "/certs/bridge.crt",
		"HTTP_TLS_KEY_FILE":             "/certs/bridge.key",
		"HTTP_MAX_CONNECTIONS":          "-5",
		"PRINTERS":                      "Zebra-Hala-A=10.0.0.21",
		"PRINTER_TIMEOUT":               "3s",
		"PRINTER_PROBE_INTERVAL":        "10ms",
		"LABEL_ASCII_FOLD":              "true",
		"JOB_HISTORY_ENABLED":           "true",
		"DB_HOST":                       "db",
		"DB_RECONNECT_INITIAL":          "2s",
		"DB_RECONNECT_MAX":              "1s",
		"REDIS_ENABLED":                 "true",
		"REDIS_USE_CLUSTER":             "true",
		"REDIS_CLUSTER_NODES":           " , ",
		"LOG_LEVEL":                     " DEBUG ",
		"OBSERVABILITY_METRICS_ENABLED": "true",
		"OBSERVABILITY_METRICS_TAGS":    "env:prod,site:mleczna",
	})

	assert.True(t, cfg.IsDev)
	assert.False(t, cfg.IsProberEnabled())
	assert.Equal(t, "0.0.0.0:3443", cfg.HTTP.Addr)
	assert.True(t, cfg.HTTP.TLSEnabled())
	assert.Zero(t, cfg.HTTP.MaxConnections)
	assert.Equal(t, "Zebra-Hala-A=10.0.0.21", cfg.Printers.Inline)
	assert.Equal(t, 3*time.Second, cfg.Printers.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Printers.ProbeInterval)
	assert.True(t, cfg.Label.ASCIIFold)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "db", cfg.Postgres.Host)
	assert.Equal(t, 2*time.Second, cfg.Postgres.ReconnectMax)
	assert.True(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Redis.UseCluster)
	assert.Equal(t, slog.LevelDebug, cfg.Observability.SlogLevel())
	assert.True(t, cfg.Observability.Metrics.IsEnabled())
	assert.Equal(t, map[string]string{"env": "prod", "site": "mleczna"}, cfg.Observability.Metrics.GlobalTags)
}

func TestDBConfigDSN(t *testing.T) {
	cfg := DBConfig{Host: "db", Port: 5432, User: "bridge", Password: "p@ss word", Name: "history", SSLMode: "require"}

	assert.Equal(t, "postgres://bridge:p%40ss%20word@db:5432/history?sslmode=require", cfg.DSN())
	assert.NotContains(t, cfg.String(), "p@ss")
}

func TestMetricsDisabledWithoutAddress(t *testing.T) {
	cfg := ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "  "}
	cfg.Sanitize()
	assert.False(t, cfg.IsEnabled())
	assert.Equal(t, defaultMetricsPrefix, cfg.Prefix)
}
