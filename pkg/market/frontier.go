// Package market derives price/performance signals from catalog prices:
// the efficiency frontier, buy/wait recommendations and deal staleness.
package market

import (
	"cmp"
	"math"
	"slices"
)

// Point is one model on a price/performance plane.
type Point struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
	Perf  float64 `json:"perf"`
}

// EfficiencyFrontier returns the points no cheaper point matches or beats
// on performance, ordered by price ascending. Prices are unique in the
// result and performance strictly increases. Points with a NaN coordinate
// are ignored. The input is not modified.
func EfficiencyFrontier(points []Point) []Point {
	sorted := make([]Point, 0, len(points))
	for _, p := range points {
		if math.IsNaN(p.Price) || math.IsNaN(p.Perf) {
			continue
		}
		sorted = append(sorted, p)
	}

	slices.SortStableFunc(sorted, func(a, b Point) int {
		if c := cmp.Compare(a.Price, b.Price); c != 0 {
			return c
		}
		return cmp.Compare(b.Perf, a.Perf)
	})

	frontier := make([]Point, 0, len(sorted))
	best := math.Inf(-1)
	for _, p := range sorted {
		if p.Perf > best {
			frontier = append(frontier, p)
			best = p.Perf
		}
	}
	return frontier
}
