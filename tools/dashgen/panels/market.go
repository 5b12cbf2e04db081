package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ScoreDistribution returns a bar gauge panel showing the distribution of
// composite scores served by product reports.
func ScoreDistribution() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Composite Score Distribution").
		Description("Distribution of composite scores (0-100) in product reports").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(increase(lcc_composite_score_distribution_bucket{`+J()+`}[1h])) by (le)`,
			"{{le}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// SignalsRate returns a timeseries panel showing buy signals computed per
// hour by signal.
func SignalsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Buy Signals / h").
		Description("Buy signals computed per hour, by signal").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`lcc:signals:rate1h * 3600`, "{{signal}}", "A")).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// StaleDealsStat returns a stat panel showing the number of deals past the
// staleness threshold.
func StaleDealsStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Stale Deals").
		Description("Deals not re-verified within the staleness threshold").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`max(lcc_stale_deals{`+J()+`})`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
