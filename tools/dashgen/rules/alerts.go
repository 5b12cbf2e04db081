package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// laptop-compare operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "lcc-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "lcc-alerts",
					Rules: []Rule{
						{
							Alert: "LccDown",
							Expr:  `absent(up{job="laptop-compare"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Laptop Compare is down",
								"description": "The laptop-compare job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "LccReadinessDown",
							Expr:  `lcc_readyz_up == 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Laptop Compare readiness check is failing",
								"description": "No catalog snapshot is loaded or the catalog source is unreachable.",
							},
						},
						{
							Alert: "LccHighErrorRate",
							Expr:  `lcc:http_errors:rate5m / lcc:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on Laptop Compare",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "LccCatalogLoadErrors",
							Expr:  `lcc:catalog_load_errors:rate5m > 0`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Catalog refreshes are failing",
								"description": "The catalog source has failed to load for more than 10 minutes. The previous snapshot is still served.",
							},
						},
						{
							Alert: "LccCatalogStale",
							Expr:  `time() - lcc_catalog_last_load_timestamp_seconds > 86400`,
							For:   "15m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Catalog snapshot is older than a day",
								"description": "No catalog refresh has succeeded in the last 24 hours.",
							},
						},
						{
							Alert: "LccValidationErrors",
							Expr:  `sum(lcc_validation_issues{level="error"}) > 0`,
							For:   "30m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Catalog has validation errors",
								"description": "The current catalog snapshot has error level validation issues.",
							},
						},
						{
							Alert: "LccValidationCrashes",
							Expr:  `increase(lcc_validation_crashes_total[15m]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Validation checks panicked",
								"description": "One or more products crashed a validation check and were reported as a critical issue.",
							},
						},
						{
							Alert: "LccNotificationFailures",
							Expr:  `increase(lcc_notification_failures_total[5m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Notification delivery failures detected",
								"description": "One or more validation summaries or stale deal reports (Discord webhooks) have failed to send.",
							},
						},
					},
				},
			},
		},
	}
}
