// Command dashgen generates the Grafana dashboard and Prometheus rule
// files for laptop-compare under deploy/.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/laptop-compare/tools/dashgen/dashboards"
	"github.com/donaldgifford/laptop-compare/tools/dashgen/rules"
	"github.com/donaldgifford/laptop-compare/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by dashgen. DO NOT EDIT.\n"

// Output paths relative to Config.OutputDir.
var (
	dashboardPath = filepath.Join("grafana", "data", "lcc-overview.json")
	recordingPath = filepath.Join("prometheus", "lcc-recording-rules.yaml")
	alertsPath    = filepath.Join("prometheus", "lcc-alerts.yaml")
)

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// artifact is one generated file.
type artifact struct {
	path string
	data []byte
}

func run(cfg Config, validateOnly bool) error {
	arts, err := generate(cfg)
	if err != nil {
		return err
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	for _, a := range arts {
		path := filepath.Join(cfg.OutputDir, a.path)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, a.data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("dashgen: wrote %s\n", path)
	}
	return nil
}

// generate builds and validates every enabled artifact.
func generate(cfg Config) ([]artifact, error) {
	var (
		arts []artifact
		errs []error
	)

	if cfg.DashboardEnabled {
		dash, err := dashboards.BuildOverview().Build()
		if err != nil {
			return nil, fmt.Errorf("building overview dashboard: %w", err)
		}
		if res := validate.Dashboard(dash, KnownMetrics); !res.Ok() {
			errs = append(errs, fmt.Errorf("overview dashboard: %v", res.Errors))
		}
		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding overview dashboard: %w", err)
		}
		arts = append(arts, artifact{path: dashboardPath, data: append(data, '\n')})
	}

	if cfg.RulesEnabled {
		for _, r := range []struct {
			path string
			cr   rules.PrometheusRule
		}{
			{recordingPath, rules.RecordingRules()},
			{alertsPath, rules.AlertRules()},
		} {
			if res := validate.Rules(r.cr, KnownMetrics); !res.Ok() {
				errs = append(errs, fmt.Errorf("%s: %v", r.cr.Metadata.Name, res.Errors))
			}
			data, err := yaml.Marshal(r.cr)
			if err != nil {
				return nil, fmt.Errorf("encoding %s: %w", r.cr.Metadata.Name, err)
			}
			arts = append(arts, artifact{path: r.path, data: append([]byte(generatedHeader), data...)})
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return arts, nil
}
