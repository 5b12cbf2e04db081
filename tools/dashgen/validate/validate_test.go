package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/laptop-compare/tools/dashgen/rules"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
		want []string
	}{
		{
			name: "plain selector",
			expr: `lcc_healthz_up`,
			want: []string{"lcc_healthz_up"},
		},
		{
			name: "histogram quantile",
			expr: `histogram_quantile(0.95, sum(rate(lcc_http_request_duration_seconds_bucket{job="x"}[5m])) by (le))`,
			want: []string{"lcc_http_request_duration_seconds_bucket"},
		},
		{
			name: "binary expression",
			expr: `lcc:http_errors:rate5m / lcc:http_requests:rate5m * 100`,
			want: []string{"lcc:http_errors:rate5m", "lcc:http_requests:rate5m"},
		},
		{
			name: "name matcher",
			expr: `{__name__="lcc_stale_deals"}`,
			want: []string{"lcc_stale_deals"},
		},
		{
			name: "function only",
			expr: `time()`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Metrics(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetrics_ParseError(t *testing.T) {
	t.Parallel()

	_, err := Metrics(`sum(rate(lcc_http_requests_total[5m])`)
	assert.Error(t, err)
}

func TestIsKnown(t *testing.T) {
	t.Parallel()

	known := map[string]bool{"lcc_validation_duration_seconds": true}

	assert.True(t, isKnown("lcc_validation_duration_seconds", known))
	assert.True(t, isKnown("lcc_validation_duration_seconds_bucket", known))
	assert.True(t, isKnown("lcc_validation_duration_seconds_count", known))
	assert.False(t, isKnown("lcc_validation_runs_total", known))
}

func TestRules(t *testing.T) {
	t.Parallel()

	cr := rules.PrometheusRule{
		Spec: rules.PrometheusRuleSpec{
			Groups: []rules.RuleGroup{{
				Name: "g",
				Rules: []rules.Rule{
					{Record: "lcc:loads:rate5m", Expr: `sum(rate(lcc_catalog_loads_total[5m]))`},
					{Alert: "Loads", Expr: `lcc:loads:rate5m == 0`},
					{Alert: "Unknown", Expr: `lcc_nope > 0`},
					{Alert: "Broken", Expr: `rate(`},
					{Expr: `up`},
				},
			}},
		},
	}

	res := Rules(cr, map[string]bool{"lcc_catalog_loads_total": true, "up": true})

	assert.False(t, res.Ok())
	require.Len(t, res.Errors, 3)
	assert.Contains(t, res.Errors[0], "unknown metric lcc_nope")
	assert.Contains(t, res.Errors[1], "rule Broken")
	assert.Contains(t, res.Errors[2], "neither record nor alert")
}
