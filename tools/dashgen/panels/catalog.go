package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// LastLoad returns a stat panel showing time since the last successful
// catalog load.
func LastLoad() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Last Catalog Load").
		Description("Time since the last successful catalog refresh").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`time() - max(lcc_catalog_last_load_timestamp_seconds{`+J()+`})`,
			"", "A",
		)).
		Unit("s").
		Thresholds(ThresholdsGreenYellowRed(7200, 86400)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// NextRefresh returns a stat panel showing time until the next scheduled
// catalog refresh.
func NextRefresh() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Next Refresh").
		Description("Time until the next scheduled catalog refresh").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`max(lcc_scheduler_next_refresh_timestamp_seconds{`+J()+`}) - time()`,
			"", "A",
		)).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// LoadErrors returns a stat panel showing failed catalog loads in the past
// 24 hours, scheduled or manual.
func LoadErrors() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Load Failures (24h)").
		Description("Failed catalog loads in the last 24 hours").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`sum(increase(lcc_catalog_load_errors_total{`+J()+`}[24h]))`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// ScheduledFailures returns a stat panel showing scheduled refreshes that
// failed in the past 24 hours.
func ScheduledFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Scheduled Failures (24h)").
		Description("Scheduled refreshes that failed to load the catalog").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`sum(increase(lcc_scheduler_refresh_failures_total{`+J()+`}[24h]))`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// LoadRate returns a timeseries panel showing successful and failed catalog
// loads per hour.
func LoadRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Catalog Loads / h").
		Description("Successful and failed catalog loads per hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(FullWidth).
		WithTarget(PromQuery(`sum(increase(lcc_catalog_loads_total{`+J()+`}[1h]))`, "loaded", "A")).
		WithTarget(PromQuery(`sum(increase(lcc_catalog_load_errors_total{`+J()+`}[1h]))`, "failed", "B")).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}
