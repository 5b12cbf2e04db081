// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/laptop-compare/pkg/market"
	score "github.com/donaldgifford/laptop-compare/pkg/scorer"
	"github.com/donaldgifford/laptop-compare/pkg/validate"
)

// Catalog source kinds.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Data          DataConfig          `yaml:"data"`
	Database      DatabaseConfig      `yaml:"database"`
	Scoring       ScoringConfig       `yaml:"scoring"`
	Market        MarketConfig        `yaml:"market"`
	Validation    ValidationConfig    `yaml:"validation"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Notifications NotificationsConfig `yaml:"notifications"`
	RateLimit     RateLimitConfig     `yaml:"rate_limit"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DataConfig selects where the catalog is loaded from.
type DataConfig struct {
	Source string `yaml:"source"` // file, postgres
	Dir    string `yaml:"dir"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s pool_max_conns=%d",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode, d.PoolSize,
	)
}

// ScoringConfig defines composite weights and the value score scale.
type ScoringConfig struct {
	Weights    score.Weights `yaml:"weights"`
	ValueScale float64       `yaml:"value_scale"`
}

// MarketConfig defines buy signal thresholds and deal staleness.
type MarketConfig struct {
	Thresholds market.Thresholds `yaml:"thresholds"`
	StaleDays  int               `yaml:"stale_days"`
}

// ValidationConfig defines plausibility bounds and validation parallelism.
type ValidationConfig struct {
	Bounds  validate.Bounds `yaml:"bounds"`
	Workers int             `yaml:"workers"`
}

// ScheduleConfig defines cron intervals.
type ScheduleConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
	// OnlyOnErrors suppresses summaries for runs without error-level issues.
	OnlyOnErrors bool `yaml:"only_on_errors"`
	// StaleDeals sends a report of unverified deals after each refresh.
	StaleDeals bool `yaml:"stale_deals"`
}

// RateLimitConfig defines per-client API rate limiting.
type RateLimitConfig struct {
	Enabled   bool    `yaml:"enabled"`
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// TelemetryConfig defines OpenTelemetry trace and metric export.
type TelemetryConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Endpoint       string        `yaml:"endpoint"`
	Insecure       bool          `yaml:"insecure"`
	ServiceName    string        `yaml:"service_name"`
	SampleRatio    float64       `yaml:"sample_ratio"`
	MetricInterval time.Duration `yaml:"metric_interval"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a file-backed configuration reading from dir with every
// default applied. Used when no config file is given.
func Default(dir string) *Config {
	cfg := &Config{Data: DataConfig{Source: SourceFile, Dir: dir}}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDataDefaults(&cfg.Data)
	applyDatabaseDefaults(&cfg.Database)
	applyScoringDefaults(&cfg.Scoring)
	applyMarketDefaults(&cfg.Market)
	applyValidationDefaults(&cfg.Validation)
	applyScheduleDefaults(&cfg.Schedule)
	applyRateLimitDefaults(&cfg.RateLimit)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDataDefaults(d *DataConfig) {
	if d.Source == "" {
		d.Source = SourceFile
	}
	if d.Source == SourceFile && d.Dir == "" {
		d.Dir = "data"
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyScoringDefaults(s *ScoringConfig) {
	if s.Weights == (score.Weights{}) {
		s.Weights = score.DefaultWeights()
	}
	if s.ValueScale == 0 {
		s.ValueScale = score.DefaultValueScale
	}
}

func applyMarketDefaults(m *MarketConfig) {
	def := market.DefaultThresholds()
	if m.Thresholds.BuyNowMargin == 0 {
		m.Thresholds.BuyNowMargin = def.BuyNowMargin
	}
	if m.Thresholds.GoodDealDiscount == 0 {
		m.Thresholds.GoodDealDiscount = def.GoodDealDiscount
	}
	if m.Thresholds.HoldMargin == 0 {
		m.Thresholds.HoldMargin = def.HoldMargin
	}
	if m.Thresholds.SaleWindowDays == 0 {
		m.Thresholds.SaleWindowDays = def.SaleWindowDays
	}
	if m.StaleDays == 0 {
		m.StaleDays = market.DefaultStaleDays
	}
}

func applyValidationDefaults(v *ValidationConfig) {
	def := validate.DefaultBounds()
	b := &v.Bounds
	if b.MaxWeightKg == 0 {
		b.MaxWeightKg = def.MaxWeightKg
	}
	if b.MaxBatteryWHr == 0 {
		b.MaxBatteryWHr = def.MaxBatteryWHr
	}
	if b.MinNits == 0 {
		b.MinNits = def.MinNits
	}
	if b.MinYear == 0 {
		b.MinYear = def.MinYear
	}
	if b.MaxYear == 0 {
		b.MaxYear = def.MaxYear
	}
	if b.MaxPrice == 0 {
		b.MaxPrice = def.MaxPrice
	}
	if v.Workers == 0 {
		v.Workers = 1
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.RefreshInterval == 0 {
		s.RefreshInterval = time.Hour
	}
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 10
	}
	if r.Burst == 0 {
		r.Burst = 20
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "laptop-compare"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
	if t.MetricInterval == 0 {
		t.MetricInterval = time.Minute
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validateConfig(cfg *Config) error {
	var errs []error

	switch cfg.Data.Source {
	case SourceFile:
		if cfg.Data.Dir == "" {
			errs = append(errs, fmt.Errorf("data.dir is required when source is file"))
		}
	case SourcePostgres:
		if cfg.Database.Host == "" {
			errs = append(errs, fmt.Errorf("database.host is required when source is postgres"))
		}
		if cfg.Database.Name == "" {
			errs = append(errs, fmt.Errorf("database.name is required when source is postgres"))
		}
		if cfg.Database.User == "" {
			errs = append(errs, fmt.Errorf("database.user is required when source is postgres"))
		}
	default:
		errs = append(
			errs,
			fmt.Errorf("data.source must be one of: file, postgres (got %q)", cfg.Data.Source),
		)
	}

	if err := cfg.Scoring.Weights.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("scoring.weights: %w", err))
	}
	if cfg.Scoring.ValueScale < 0 {
		errs = append(errs, fmt.Errorf("scoring.value_scale must be > 0"))
	}
	if cfg.Market.StaleDays < 0 {
		errs = append(errs, fmt.Errorf("market.stale_days must be >= 0"))
	}
	if cfg.Validation.Workers < 0 {
		errs = append(errs, fmt.Errorf("validation.workers must be >= 0"))
	}
	if cfg.Validation.Bounds.MinYear > cfg.Validation.Bounds.MaxYear {
		errs = append(errs, fmt.Errorf("validation.bounds.min_year must not exceed max_year"))
	}
	if cfg.Schedule.RefreshInterval < 0 {
		errs = append(errs, fmt.Errorf("schedule.refresh_interval must be >= 0"))
	}
	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled"))
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("rate_limit.per_second must be > 0"))
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		errs = append(errs, fmt.Errorf("telemetry.endpoint is required when telemetry is enabled"))
	}
	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("telemetry.sample_ratio must be between 0 and 1"))
	}
	if cfg.Telemetry.MetricInterval < 0 {
		errs = append(errs, fmt.Errorf("telemetry.metric_interval must be >= 0"))
	}

	return errors.Join(errs...)
}
