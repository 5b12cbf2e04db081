// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/laptop-compare/tools/dashgen/panels"
)

// UID is the stable dashboard uid used for links from alert annotations.
const UID = "lcc-overview"

// BuildOverview constructs the Laptop Compare overview dashboard with all
// metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Laptop Compare Overview").
		Uid(UID).
		Tags([]string{"lcc", "laptop-compare"}).
		Refresh("1m").
		Time("now-24h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.ProductsStat()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.RouteLatency()).
		WithPanel(panels.ErrorRate()).
		WithPanel(panels.Rejections()))

	b.WithRow(dashboard.NewRowBuilder("Catalog").
		WithPanel(panels.LastLoad()).
		WithPanel(panels.NextRefresh()).
		WithPanel(panels.LoadErrors()).
		WithPanel(panels.ScheduledFailures()).
		WithPanel(panels.LoadRate()))

	b.WithRow(dashboard.NewRowBuilder("Validation").
		WithPanel(panels.IssuesByLevel()).
		WithPanel(panels.ErrorsByCategory()).
		WithPanel(panels.FailedRuns()).
		WithPanel(panels.ValidationCrashes()).
		WithPanel(panels.ValidationDuration()))

	b.WithRow(dashboard.NewRowBuilder("Market").
		WithPanel(panels.StaleDealsStat()).
		WithPanel(panels.ScoreDistribution()).
		WithPanel(panels.SignalsRate()))

	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.NotificationLatency()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
