// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and reference only known metrics.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/model/labels"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/laptop-compare/tools/dashgen/rules"
)

// histogramSuffixes are stripped when a series name is not known as is.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Result collects validation findings.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether there were no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

type panelJSON struct {
	Title   string      `json:"title"`
	Type    string      `json:"type"`
	Panels  []panelJSON `json:"panels"`
	Targets []struct {
		Expr string `json:"expr"`
	} `json:"targets"`
}

// Dashboard validates every query of every panel in dash, descending into
// rows. A panel with no queries is a warning.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.errorf("encoding dashboard: %v", err)
		return res
	}
	var doc struct {
		Panels []panelJSON `json:"panels"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		res.errorf("decoding dashboard: %v", err)
		return res
	}

	var walk func(ps []panelJSON)
	walk = func(ps []panelJSON) {
		for _, p := range ps {
			if p.Type == "row" {
				walk(p.Panels)
				continue
			}
			if len(p.Targets) == 0 {
				res.warnf("panel %q has no queries", p.Title)
			}
			for _, t := range p.Targets {
				checkExpr(&res, "panel "+p.Title, t.Expr, known)
			}
		}
	}
	walk(doc.Panels)

	return res
}

// Rules validates every rule expression in cr. Recording rule names become
// known metrics for the rules that follow them.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result

	names := make(map[string]bool, len(known))
	for k, v := range known {
		names[k] = v
	}

	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			name := r.Record
			if name == "" {
				name = r.Alert
			}
			if name == "" {
				res.errorf("group %s: rule has neither record nor alert", g.Name)
				continue
			}
			checkExpr(&res, "rule "+name, r.Expr, names)
			if r.Record != "" {
				names[r.Record] = true
			}
		}
	}

	return res
}

func checkExpr(res *Result, where, expr string, known map[string]bool) {
	if strings.TrimSpace(expr) == "" {
		res.errorf("%s: empty expression", where)
		return
	}
	metrics, err := Metrics(expr)
	if err != nil {
		res.errorf("%s: %v", where, err)
		return
	}
	for _, m := range metrics {
		if !isKnown(m, known) {
			res.errorf("%s: unknown metric %s", where, m)
		}
	}
}

// Metrics parses expr and returns the metric names it selects, in order of
// appearance.
func Metrics(expr string) ([]string, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", expr, err)
	}

	var names []string
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		name := vs.Name
		if name == "" {
			for _, m := range vs.LabelMatchers {
				if m.Name == labels.MetricName && m.Type == labels.MatchEqual {
					name = m.Value
				}
			}
		}
		if name != "" {
			names = append(names, name)
		}
		return nil
	})
	return names, nil
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}
