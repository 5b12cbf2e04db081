package score

import (
	"fmt"
	"math"

	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

// PercentileSentinel is returned when a peer group has at most one member.
const PercentileSentinel = 100

// Percentile ranks score against peers on one dimension. The result is
// round(100 * below / (n-1)) where below counts peers scoring strictly
// lower, so ties share a rank. Groups of one or fewer return
// PercentileSentinel.
func (s *Scorer) Percentile(score float64, dim Dimension, peers []*domain.Product) int {
	n := 0
	below := 0
	for _, p := range peers {
		if p == nil {
			continue
		}
		n++
		if s.Dimension(p, dim) < score {
			below++
		}
	}
	if n <= 1 {
		return PercentileSentinel
	}

	pct := math.Round(float64(below) / float64(n-1) * 100)
	return int(clamp(pct, 0, 100))
}

// PeersByLineup returns the products in a lineup, in input order.
func PeersByLineup(products []*domain.Product, l domain.Lineup) []*domain.Product {
	var out []*domain.Product
	for _, p := range products {
		if p != nil && p.Lineup == l {
			out = append(out, p)
		}
	}
	return out
}

// PeersBySeries returns the products in a lineup and series, in input order.
func PeersBySeries(products []*domain.Product, l domain.Lineup, series domain.Series) []*domain.Product {
	var out []*domain.Product
	for _, p := range products {
		if p != nil && p.Lineup == l && p.Series == series {
			out = append(out, p)
		}
	}
	return out
}

// minSeriesGroup is the smallest series that gets its own comparison group.
const minSeriesGroup = 3

// nearBand is the distance from the group average still reported as "Near".
const nearBand = 5

// Context places one product's dimension score against its group and the
// whole catalog.
type Context struct {
	Score          float64 `json:"score"`
	Average        int     `json:"average"`
	GroupLabel     string  `json:"group_label"`
	Percentile     int     `json:"percentile"`
	ComparisonText string  `json:"comparison_text"`
}

// Context compares p with its series, or its lineup when the series has
// fewer than three models. Percentile here is the share of all models
// scoring strictly lower.
func (s *Scorer) Context(dim Dimension, p *domain.Product, all []*domain.Product) Context {
	score := s.Dimension(p, dim)

	group := PeersBySeries(all, p.Lineup, p.Series)
	label := fmt.Sprintf("%s %s-series", p.Lineup, p.Series)
	if len(group) < minSeriesGroup {
		group = PeersByLineup(all, p.Lineup)
		label = fmt.Sprintf("%s lineup", p.Lineup)
	}

	avg := int(math.Round(score))
	if len(group) > 0 {
		var sum float64
		for _, g := range group {
			sum += s.Dimension(g, dim)
		}
		avg = int(math.Round(sum / float64(len(group))))
	}

	n, below := 0, 0
	for _, m := range all {
		if m == nil {
			continue
		}
		n++
		if s.Dimension(m, dim) < score {
			below++
		}
	}
	pct := 0
	if n > 0 {
		pct = int(math.Round(float64(below) / float64(n) * 100))
	}

	diff := int(math.Round(score)) - avg
	relation := "Near"
	switch {
	case diff > nearBand:
		relation = "Above"
	case diff < -nearBand:
		relation = "Below"
	}

	return Context{
		Score:      score,
		Average:    avg,
		GroupLabel: label,
		Percentile: pct,
		ComparisonText: fmt.Sprintf("%s %s avg (%d, %+d) · Top %d%% overall",
			relation, label, avg, diff, 100-pct),
	}
}
