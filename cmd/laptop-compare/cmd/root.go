// Package cmd implements the CLI commands for laptop-compare.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/laptop-compare/internal/catalog"
	"github.com/donaldgifford/laptop-compare/internal/config"
	"github.com/donaldgifford/laptop-compare/internal/engine"
	"github.com/donaldgifford/laptop-compare/pkg/logger"
)

// Exit codes.
const (
	ExitOK               = 0
	ExitValidationFailed = 1
	ExitFailure          = 2
)

// ErrValidationFailed is returned by validate when the catalog has
// error-level issues.
var ErrValidationFailed = errors.New("catalog validation failed")

var (
	cfgFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "laptop-compare",
	Short: "Score, compare and validate a laptop catalog",
	Long: "laptop-compare loads a laptop catalog from YAML files or PostgreSQL,\n" +
		"validates it, and derives dimension scores, value scores, the\n" +
		"price/performance frontier and buy signals. It can also serve the\n" +
		"results over HTTP with a scheduled refresh.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: built-in defaults)")
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	pf.String("source", config.SourceFile, "catalog source (file, postgres)")
	pf.String("data-dir", "data", "catalog directory for the file source")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-format", "", "log format (text, json)")

	for _, name := range []string{"source", "data-dir", "log-level", "log-format"} {
		cobra.CheckErr(viper.BindPFlag(name, pf.Lookup(name)))
	}
}

func initConfig() {
	if err := loadEnvFile(envFile); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
	viper.SetEnvPrefix("LCC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadEnvFile exports the variables of a dotenv file that are not already
// set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, ErrValidationFailed) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrValidationFailed):
		return ExitValidationFailed
	default:
		return ExitFailure
	}
}

// loadConfig reads --config when given, otherwise builds the defaults.
// Flags and LCC_* environment variables override the file.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if cfgFile != "" {
		c, err := config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = c
	} else {
		cfg = config.Default(viper.GetString("data-dir"))
	}

	if changedOrEnv("source") {
		cfg.Data.Source = viper.GetString("source")
	}
	if changedOrEnv("data-dir") {
		cfg.Data.Dir = viper.GetString("data-dir")
	}
	switch v := viper.GetString("log-level"); {
	case v != "":
		cfg.Logging.Level = v
	case cfgFile == "":
		// One-shot commands only report problems unless asked.
		cfg.Logging.Level = "warn"
	}
	if v := viper.GetString("log-format"); v != "" {
		cfg.Logging.Format = v
	}
	return cfg, nil
}

// changedOrEnv reports whether a persistent flag was set on the command
// line or through its LCC_ environment variable.
func changedOrEnv(name string) bool {
	if f := rootCmd.PersistentFlags().Lookup(name); f != nil && f.Changed {
		return true
	}
	_, ok := os.LookupEnv("LCC_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_")))
	return ok
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Logging.Level, cfg.Logging.Format)
}

// openSource returns the configured catalog source and a close func.
func openSource(ctx context.Context, cfg *config.Config, log *slog.Logger) (catalog.Source, func(), error) {
	switch cfg.Data.Source {
	case config.SourcePostgres:
		pg, err := catalog.NewPostgresSource(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		return pg, pg.Close, nil
	case config.SourceFile:
		fs := catalog.NewFileSource(cfg.Data.Dir, catalog.WithFileLogger(logger.Component(log, "catalog")))
		return fs, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", cfg.Data.Source)
	}
}

// engineOptions maps configuration onto engine options.
func engineOptions(cfg *config.Config, log *slog.Logger) []engine.Option {
	return []engine.Option{
		engine.WithLogger(logger.Component(log, "engine")),
		engine.WithSourceName(cfg.Data.Source),
		engine.WithWeights(cfg.Scoring.Weights),
		engine.WithValueScale(cfg.Scoring.ValueScale),
		engine.WithThresholds(cfg.Market.Thresholds),
		engine.WithStaleDays(cfg.Market.StaleDays),
		engine.WithBounds(cfg.Validation.Bounds),
		engine.WithWorkers(cfg.Validation.Workers),
	}
}

// loadEngine loads config, opens the source, checks it is reachable and
// performs one refresh.
// The returned close func releases the source.
func loadEngine(ctx context.Context) (*engine.Engine, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := newLogger(cfg)

	src, closeSrc, err := openSource(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	eng := engine.New(src, engineOptions(cfg, log)...)
	if err := eng.Ping(ctx); err != nil {
		closeSrc()
		return nil, nil, fmt.Errorf("catalog source unavailable: %w", err)
	}
	if _, err := eng.Refresh(ctx); err != nil {
		closeSrc()
		return nil, nil, err
	}
	return eng, closeSrc, nil
}
