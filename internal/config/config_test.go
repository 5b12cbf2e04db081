package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	score "github.com/donaldgifford/laptop-compare/pkg/scorer"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: `
data:
  dir: ./testdata
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, SourceFile, cfg.Data.Source)
				assert.Equal(t, "./testdata", cfg.Data.Dir)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `{}`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, "data", cfg.Data.Dir)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 10, cfg.Database.PoolSize)
				assert.Equal(t, score.DefaultWeights(), cfg.Scoring.Weights)
				assert.Equal(t, 1.2, cfg.Scoring.ValueScale)
				assert.Equal(t, 45, cfg.Market.Thresholds.SaleWindowDays)
				assert.Equal(t, 14, cfg.Market.StaleDays)
				assert.Equal(t, 4.0, cfg.Validation.Bounds.MaxWeightKg)
				assert.Equal(t, 2026, cfg.Validation.Bounds.MaxYear)
				assert.Equal(t, 1, cfg.Validation.Workers)
				assert.Equal(t, time.Hour, cfg.Schedule.RefreshInterval)
				assert.Equal(t, 10.0, cfg.RateLimit.PerSecond)
				assert.Equal(t, 20, cfg.RateLimit.Burst)
				assert.Equal(t, "laptop-compare", cfg.Telemetry.ServiceName)
				assert.Equal(t, time.Minute, cfg.Telemetry.MetricInterval)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: `
data:
  source: postgres
database:
  host: localhost
  name: catalog
  user: lcc
  password: "${TEST_DB_PASSWORD}"
`,
			envVars: map[string]string{
				"TEST_DB_PASSWORD": "secret123",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.Database.Password)
			},
		},
		{
			name: "postgres source missing database.host",
			yaml: `
data:
  source: postgres
database:
  name: catalog
  user: lcc
`,
			wantErr: "database.host is required when source is postgres",
		},
		{
			name: "postgres source missing database.user",
			yaml: `
data:
  source: postgres
database:
  host: localhost
  name: catalog
`,
			wantErr: "database.user is required when source is postgres",
		},
		{
			name: "invalid data source",
			yaml: `
data:
  source: s3
`,
			wantErr: `data.source must be one of: file, postgres (got "s3")`,
		},
		{
			name: "weights must sum to one",
			yaml: `
scoring:
  weights:
    cpu: 0.5
    gpu: 0.2
`,
			wantErr: "scoring.weights: weights must sum to 1.0",
		},
		{
			name: "discord enabled without webhook",
			yaml: `
notifications:
  discord:
    enabled: true
`,
			wantErr: "notifications.discord.webhook_url is required when discord is enabled",
		},
		{
			name: "telemetry enabled without endpoint",
			yaml: `
telemetry:
  enabled: true
`,
			wantErr: "telemetry.endpoint is required when telemetry is enabled",
		},
		{
			name: "year bounds inverted",
			yaml: `
validation:
  bounds:
    min_year: 2030
    max_year: 2020
`,
			wantErr: "validation.bounds.min_year must not exceed max_year",
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
		{
			name: "full config with overrides",
			yaml: `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 60s
  write_timeout: 60s
data:
  source: postgres
database:
  host: db.example.com
  port: 5433
  name: catalog_prod
  user: admin
  password: pass
  sslmode: require
  pool_size: 20
scoring:
  weights:
    cpu: 0.25
    gpu: 0.25
    memory: 0.15
    display: 0.15
    connectivity: 0.10
    portability: 0.10
  value_scale: 1.5
market:
  thresholds:
    buy_now_margin: 0.03
    sale_window_days: 30
  stale_days: 7
validation:
  workers: 4
  bounds:
    max_price: 8000
schedule:
  refresh_interval: 30m
notifications:
  discord:
    enabled: true
    webhook_url: https://discord.com/api/webhooks/123
    only_on_errors: true
rate_limit:
  enabled: true
  per_second: 2
  burst: 5
telemetry:
  enabled: true
  endpoint: otel-collector:4317
  insecure: true
  metric_interval: 15s
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, SourcePostgres, cfg.Data.Source)
				assert.Equal(t, "db.example.com", cfg.Database.Host)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, 20, cfg.Database.PoolSize)
				assert.Equal(t, 0.25, cfg.Scoring.Weights.GPU)
				assert.Equal(t, 1.5, cfg.Scoring.ValueScale)
				assert.Equal(t, 0.03, cfg.Market.Thresholds.BuyNowMargin)
				assert.Equal(t, 0.10, cfg.Market.Thresholds.GoodDealDiscount)
				assert.Equal(t, 30, cfg.Market.Thresholds.SaleWindowDays)
				assert.Equal(t, 7, cfg.Market.StaleDays)
				assert.Equal(t, 4, cfg.Validation.Workers)
				assert.Equal(t, 8000.0, cfg.Validation.Bounds.MaxPrice)
				assert.Equal(t, 200, cfg.Validation.Bounds.MinNits)
				assert.Equal(t, 30*time.Minute, cfg.Schedule.RefreshInterval)
				assert.True(t, cfg.Notifications.Discord.Enabled)
				assert.True(t, cfg.Notifications.Discord.OnlyOnErrors)
				assert.Equal(t, "https://discord.com/api/webhooks/123", cfg.Notifications.Discord.WebhookURL)
				assert.True(t, cfg.RateLimit.Enabled)
				assert.Equal(t, 2.0, cfg.RateLimit.PerSecond)
				assert.Equal(t, "otel-collector:4317", cfg.Telemetry.Endpoint)
				assert.True(t, cfg.Telemetry.Insecure)
				assert.Equal(t, 15*time.Second, cfg.Telemetry.MetricInterval)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default("/srv/catalog")
	assert.Equal(t, SourceFile, cfg.Data.Source)
	assert.Equal(t, "/srv/catalog", cfg.Data.Dir)
	assert.Equal(t, score.DefaultWeights(), cfg.Scoring.Weights)
	require.NoError(t, validateConfig(cfg))
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "basic DSN",
			cfg: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				Name:     "catalog",
				User:     "lcc",
				Password: "testpass",
				SSLMode:  "disable",
				PoolSize: 10,
			},
			want: "host=localhost port=5432 dbname=catalog user=lcc password=testpass sslmode=disable pool_max_conns=10",
		},
		{
			name: "production DSN",
			cfg: DatabaseConfig{
				Host:     "db.example.com",
				Port:     5433,
				Name:     "catalog",
				User:     "admin",
				Password: "s3cret",
				SSLMode:  "require",
				PoolSize: 20,
			},
			want: "host=db.example.com port=5433 dbname=catalog user=admin password=s3cret sslmode=require pool_max_conns=20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}
