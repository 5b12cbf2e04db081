package domain

// Table is an ordered, read-only lookup keyed by a string. The first row
// for a key wins lookups; later duplicates stay visible through All.
// The zero value is an empty table.
type Table[V any] struct {
	keys []string
	rows map[string]V
	all  []V
}

// NewTable builds a table from rows, deriving each key with key.
func NewTable[V any](key func(V) string, rows ...V) Table[V] {
	t := Table[V]{
		keys: make([]string, 0, len(rows)),
		rows: make(map[string]V, len(rows)),
		all:  append([]V(nil), rows...),
	}
	for _, r := range rows {
		k := key(r)
		if _, ok := t.rows[k]; ok {
			continue
		}
		t.keys = append(t.keys, k)
		t.rows[k] = r
	}
	return t
}

// Get returns the row for k and whether it was present.
func (t Table[V]) Get(k string) (V, bool) {
	v, ok := t.rows[k]
	return v, ok
}

// Has reports whether k is present.
func (t Table[V]) Has(k string) bool {
	_, ok := t.rows[k]
	return ok
}

// Keys returns the keys in insertion order.
func (t Table[V]) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len returns the number of distinct keys.
func (t Table[V]) Len() int {
	return len(t.keys)
}

// Rows returns the number of rows supplied, duplicates included.
func (t Table[V]) Rows() int {
	return len(t.all)
}

// All returns every supplied row in input order, duplicates included.
func (t Table[V]) All() []V {
	out := make([]V, len(t.all))
	copy(out, t.all)
	return out
}

// Values returns the rows in key insertion order.
func (t Table[V]) Values() []V {
	out := make([]V, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, t.rows[k])
	}
	return out
}

// Catalog bundles every lookup table. It is loaded once and never mutated.
type Catalog struct {
	Products          []*Product
	CPUBenchmarks     Table[CPUBenchmark]
	GPUBenchmarks     Table[GPUBenchmark]
	ChassisBenchmarks Table[ChassisBenchmark]
	PriceBaselines    Table[PriceBaseline]
	PriceObservations []PriceObservation
	SaleEvents        []SaleEvent
	ComponentMarkets  []ComponentMarket
	Deals             []Deal
	Compat            Table[CompatEntry]
	Editorial         Table[EditorialEntry]
	CPUGuide          Table[GuideEntry]
	GPUGuide          Table[GuideEntry]
}

// Product returns the first product with the given id.
func (c *Catalog) Product(id string) (*Product, bool) {
	for _, p := range c.Products {
		if p != nil && p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// ObservationsFor returns every price observation for a product id.
func (c *Catalog) ObservationsFor(id string) []PriceObservation {
	var out []PriceObservation
	for i := range c.PriceObservations {
		if c.PriceObservations[i].ProductID == id {
			out = append(out, c.PriceObservations[i])
		}
	}
	return out
}

// Key functions for building catalog tables.
func CPUBenchmarkKey(b CPUBenchmark) string         { return b.Name }
func GPUBenchmarkKey(b GPUBenchmark) string         { return b.Name }
func ChassisBenchmarkKey(b ChassisBenchmark) string { return b.ProductID }
func PriceBaselineKey(b PriceBaseline) string       { return b.ProductID }
func CompatKey(e CompatEntry) string                { return e.ProductID }
func EditorialKey(e EditorialEntry) string          { return e.ProductID }
func GuideKey(e GuideEntry) string                  { return e.Name }
