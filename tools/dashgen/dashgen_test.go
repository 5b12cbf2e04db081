package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/laptop-compare/tools/dashgen/dashboards"
	"github.com/donaldgifford/laptop-compare/tools/dashgen/rules"
	"github.com/donaldgifford/laptop-compare/tools/dashgen/validate"
)

func TestDefaultConfigValid(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate_EmptyOutputDir(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "", DashboardEnabled: true}
	assert.Error(t, cfg.Validate())
}

func TestConfigValidate_NothingEnabled(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "/tmp", DashboardEnabled: false, RulesEnabled: false}
	assert.Error(t, cfg.Validate())
}

func TestBuildOverviewDashboard(t *testing.T) {
	t.Parallel()

	builder := dashboards.BuildOverview()
	dash, err := builder.Build()
	require.NoError(t, err)

	require.NotNil(t, dash.Uid)
	assert.Equal(t, "lcc-overview", *dash.Uid)

	require.NotNil(t, dash.Title)
	assert.Equal(t, "Laptop Compare Overview", *dash.Title)

	require.NotNil(t, dash.Templating)
	assert.Len(t, dash.Templating.List, 1)
	assert.Equal(t, "datasource", dash.Templating.List[0].Name)

	// Overview, HTTP, Catalog, Validation, Market, Notifications.
	assert.Len(t, dash.Panels, 6)

	totalPanels := 0
	for _, p := range dash.Panels {
		if p.RowPanel != nil {
			totalPanels += len(p.RowPanel.Panels)
		}
	}
	assert.Equal(t, 24, totalPanels)

	result := validate.Dashboard(dash, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
	assert.Empty(t, result.Warnings, "unexpected warnings: %v", result.Warnings)
}

func TestRecordingRules(t *testing.T) {
	t.Parallel()

	cr := rules.RecordingRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "lcc-recording-rules", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "lcc-recording", group.Name)
	require.Len(t, group.Rules, 6)

	expectedRecords := []string{
		"lcc:http_requests:rate5m",
		"lcc:http_errors:rate5m",
		"lcc:catalog_load_errors:rate5m",
		"lcc:validation_failures:increase1h",
		"lcc:notification_duration:p95_5m",
		"lcc:signals:rate1h",
	}
	for i, rule := range group.Rules {
		assert.Equal(t, expectedRecords[i], rule.Record)
		assert.True(t, KnownMetrics[rule.Record], "%s missing from KnownMetrics", rule.Record)
	}

	res := validate.Rules(cr, KnownMetrics)
	assert.True(t, res.Ok(), "validation errors: %v", res.Errors)

	data, err := yaml.Marshal(cr)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiVersion: monitoring.coreos.com/v1")
}

func TestAlertRules(t *testing.T) {
	t.Parallel()

	cr := rules.AlertRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "lcc-alerts", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "lcc-alerts", group.Name)
	require.Len(t, group.Rules, 8)

	expectedAlerts := []string{
		"LccDown",
		"LccReadinessDown",
		"LccHighErrorRate",
		"LccCatalogLoadErrors",
		"LccCatalogStale",
		"LccValidationErrors",
		"LccValidationCrashes",
		"LccNotificationFailures",
	}
	for i, rule := range group.Rules {
		assert.Equal(t, expectedAlerts[i], rule.Alert)
		assert.NotEmpty(t, rule.Labels["severity"], "alert %s missing severity", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["summary"], "alert %s missing summary", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["description"], "alert %s missing description", rule.Alert)
	}

	res := validate.Rules(cr, KnownMetrics)
	assert.True(t, res.Ok(), "validation errors: %v", res.Errors)
}

func TestRun_WritesArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := Config{OutputDir: dir, DashboardEnabled: true, RulesEnabled: true}
	require.NoError(t, run(cfg, false))

	dashData, err := os.ReadFile(filepath.Join(dir, dashboardPath))
	require.NoError(t, err)
	var dash map[string]any
	require.NoError(t, json.Unmarshal(dashData, &dash))
	assert.Equal(t, "lcc-overview", dash["uid"])

	for _, p := range []string{recordingPath, alertsPath} {
		data, err := os.ReadFile(filepath.Join(dir, p))
		require.NoError(t, err)
		assert.True(t, len(data) > len(generatedHeader))
		assert.Equal(t, generatedHeader, string(data[:len(generatedHeader)]))

		var cr rules.PrometheusRule
		require.NoError(t, yaml.Unmarshal(data, &cr), p)
		assert.Equal(t, "PrometheusRule", cr.Kind)
	}
}

func TestRun_RulesOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := Config{OutputDir: dir, RulesEnabled: true}
	require.NoError(t, run(cfg, false))

	_, err := os.Stat(filepath.Join(dir, dashboardPath))
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = os.Stat(filepath.Join(dir, alertsPath))
	assert.NoError(t, err)
}

func TestRun_ValidateOnlyWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := Config{OutputDir: dir, DashboardEnabled: true, RulesEnabled: true}
	require.NoError(t, run(cfg, true))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
