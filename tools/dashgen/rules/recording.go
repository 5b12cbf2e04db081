package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "lcc-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "lcc-recording",
					Rules: []Rule{
						{
							Record: "lcc:http_requests:rate5m",
							Expr:   `sum(rate(lcc_http_requests_total[5m]))`,
						},
						{
							Record: "lcc:http_errors:rate5m",
							Expr:   `sum(rate(lcc_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "lcc:catalog_load_errors:rate5m",
							Expr:   `sum(rate(lcc_catalog_load_errors_total[5m]))`,
						},
						{
							Record: "lcc:validation_failures:increase1h",
							Expr:   `sum(increase(lcc_validation_runs_total{outcome="fail"}[1h]))`,
						},
						{
							Record: "lcc:notification_duration:p95_5m",
							Expr:   `histogram_quantile(0.95, sum(rate(lcc_notification_duration_seconds_bucket[5m])) by (le))`,
						},
						{
							Record: "lcc:signals:rate1h",
							Expr:   `sum by (signal) (rate(lcc_signals_total[1h]))`,
						},
					},
				},
			},
		},
	}
}
