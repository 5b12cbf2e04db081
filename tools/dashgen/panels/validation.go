package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// IssuesByLevel returns a timeseries panel showing issues found by the most
// recent validation run, split by level.
func IssuesByLevel() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Issues by Level").
		Description("Validation issues in the current snapshot (error, warning, info)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`sum by (level) (lcc_validation_issues{`+J()+`})`, "{{level}}", "A")).
		FillOpacity(20).
		LineWidth(2).
		Legend(TableLegend("last", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ErrorsByCategory returns a bar gauge panel showing error level issues per
// category.
func ErrorsByCategory() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Errors by Category").
		Description("Error level validation issues per category in the current snapshot").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum by (category) (lcc_validation_issues{level="error", `+J()+`})`,
			"{{category}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds())
}

// FailedRuns returns a stat panel showing the share of validation runs with
// at least one error over the past hour.
func FailedRuns() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Failed Runs (1h)").
		Description("Validation runs that reported errors in the last hour").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(8).
		WithTarget(PromQuery(`lcc:validation_failures:increase1h`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// ValidationCrashes returns a stat panel showing per-product validation
// crashes in the past 24 hours.
func ValidationCrashes() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Validation Crashes (24h)").
		Description("Products whose checks panicked during validation").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(8).
		WithTarget(PromQuery(`sum(increase(lcc_validation_crashes_total{`+J()+`}[24h]))`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// ValidationDuration returns a stat panel showing the p95 validation pass
// duration.
func ValidationDuration() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Validation p95").
		Description("95th percentile duration of a full validation pass").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(8).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(lcc_validation_duration_seconds_bucket{`+J()+`}[1h])) by (le))`,
			"", "A",
		)).
		Unit("s").
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}
