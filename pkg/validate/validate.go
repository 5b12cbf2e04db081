package validate

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

// Bounds are the plausibility limits used for outlier and range checks.
type Bounds struct {
	MaxWeightKg   float64 `json:"max_weight_kg"   yaml:"max_weight_kg"`
	MaxBatteryWHr float64 `json:"max_battery_whr" yaml:"max_battery_whr"`
	MinNits       int     `json:"min_nits"        yaml:"min_nits"`
	MinYear       int     `json:"min_year"        yaml:"min_year"`
	MaxYear       int     `json:"max_year"        yaml:"max_year"`
	MaxPrice      float64 `json:"max_price"       yaml:"max_price"`
}

// DefaultBounds returns the standard plausibility limits.
func DefaultBounds() Bounds {
	return Bounds{
		MaxWeightKg:   4,
		MaxBatteryWHr: 100,
		MinNits:       200,
		MinYear:       2018,
		MaxYear:       2026,
		MaxPrice:      10000,
	}
}

type options struct {
	bounds  Bounds
	workers int
}

// Option configures Validate.
type Option func(*options)

// WithBounds overrides the plausibility limits.
func WithBounds(b Bounds) Option {
	return func(o *options) {
		o.bounds = b
	}
}

// WithWorkers checks products on up to n goroutines. The result is
// identical to a sequential run. Values below 2 run sequentially.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Validate checks every table of cat. It never panics: a crash while
// checking one product becomes a Validation Crash issue for that product,
// and any other crash becomes a single Critical issue.
func Validate(cat *domain.Catalog, opts ...Option) (res Result) {
	o := options{bounds: DefaultBounds(), workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	acc := newAccumulator()
	defer func() {
		if r := recover(); r != nil {
			acc.push(LevelError, CategoryCritical, "", "validator crashed: %v", r)
			res = acc.result()
		}
	}()

	if cat == nil || len(cat.Products) == 0 {
		acc.push(LevelError, CategoryCritical, "",
			"product table is empty, the data file may be broken or missing")
		return acc.result()
	}

	v := newRun(cat, o.bounds)
	for _, issues := range v.checkProducts(o.workers) {
		for _, is := range issues {
			acc.add(is)
		}
	}
	v.checkPrices(acc)
	v.checkOrphans(acc)
	v.checkDuplicateRows(acc)
	v.checkReferences(acc)
	v.stats(acc)

	return acc.result()
}

// run holds the read-only lookups shared by every check.
type run struct {
	cat    *domain.Catalog
	bounds Bounds

	ids      map[string]bool
	dup      []bool
	observed map[string]bool

	cpus orderedSet
	gpus orderedSet
}

func newRun(cat *domain.Catalog, b Bounds) *run {
	v := &run{
		cat:      cat,
		bounds:   b,
		ids:      make(map[string]bool, len(cat.Products)),
		dup:      make([]bool, len(cat.Products)),
		observed: make(map[string]bool, len(cat.PriceObservations)),
		cpus:     newOrderedSet(),
		gpus:     newOrderedSet(),
	}
	for i, p := range cat.Products {
		if p == nil {
			continue
		}
		if v.ids[p.ID] {
			v.dup[i] = true
		}
		v.ids[p.ID] = true
		for _, n := range p.ProcessorNames() {
			v.cpus.add(n)
		}
		for _, n := range p.GPUNames() {
			v.gpus.add(n)
		}
	}
	for i := range cat.PriceObservations {
		v.observed[cat.PriceObservations[i].ProductID] = true
	}
	return v
}

// checkProducts returns the issues of each product, indexed like
// cat.Products.
func (v *run) checkProducts(workers int) [][]Issue {
	out := make([][]Issue, len(v.cat.Products))
	if workers < 2 {
		for i := range v.cat.Products {
			out[i] = v.checkProductSafe(i)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range v.cat.Products {
		g.Go(func() error {
			out[i] = v.checkProductSafe(i)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (v *run) checkProductSafe(i int) (issues []Issue) {
	p := v.cat.Products[i]
	id := "unknown"
	if p != nil && p.ID != "" {
		id = p.ID
	}

	defer func() {
		if r := recover(); r != nil {
			issues = append(issues, newIssue(LevelError, CategoryValidationCrash, id,
				"validator crashed processing this product: %v", r))
		}
	}()

	if p == nil {
		return []Issue{newIssue(LevelError, CategoryValidationCrash, id,
			"validator crashed processing this product: entry is nil")}
	}
	return v.checkProduct(p, v.dup[i])
}

func (v *run) checkProduct(p *domain.Product, dup bool) []Issue {
	var out []Issue
	errf := func(cat Category, format string, args ...any) {
		out = append(out, newIssue(LevelError, cat, p.ID, format, args...))
	}
	warnf := func(cat Category, format string, args ...any) {
		out = append(out, newIssue(LevelWarning, cat, p.ID, format, args...))
	}

	if dup {
		errf(CategoryDuplicateID, "Duplicate product ID: %q", p.ID)
	}

	if !domain.SeriesValidFor(p.Lineup, p.Series) {
		errf(CategoryInvalidLineupSeries, "Series %q is not valid for lineup %q (valid: %s)",
			p.Series, p.Lineup, joinSeries(domain.ValidSeries(p.Lineup)))
	}

	for _, name := range p.ProcessorNames() {
		if !v.cat.CPUBenchmarks.Has(name) {
			errf(CategoryMissingCPUBenchmark,
				"CPU %q not found in CPU benchmarks, product will show CPU score 0", name)
		}
	}
	for _, name := range p.GPUNames() {
		if !v.cat.GPUBenchmarks.Has(name) {
			errf(CategoryMissingGPUBenchmark,
				"GPU %q not found in GPU benchmarks, product will show GPU score 0", name)
		}
	}

	if p.Weight <= 0 {
		errf(CategoryImpossibleSpec, "Weight is %vkg (must be > 0)", p.Weight)
	}
	if p.Battery.WHr <= 0 {
		errf(CategoryImpossibleSpec, "Battery is %vWh (must be > 0)", p.Battery.WHr)
	}
	if p.Display.Nits <= 0 {
		errf(CategoryImpossibleSpec, "Display brightness is %d nits (must be > 0)", p.Display.Nits)
	}
	if p.Processor.Cores <= 0 {
		errf(CategoryImpossibleSpec, "Processor cores is %d (must be > 0)", p.Processor.Cores)
	}
	if p.RAM.Size <= 0 {
		errf(CategoryImpossibleSpec, "RAM is %dGB (must be > 0)", p.RAM.Size)
	}
	if p.Storage.Size <= 0 {
		errf(CategoryImpossibleSpec, "Storage is %dGB (must be > 0)", p.Storage.Size)
	}

	if msg, ok := checkSpecURL(p); !ok {
		errf(CategoryInvalidSpecURL, "%s", msg)
	}

	b := v.bounds
	if p.Weight > b.MaxWeightKg {
		warnf(CategorySpecOutlier, "Weight %vkg exceeds %vkg, verify this is correct", p.Weight, b.MaxWeightKg)
	}
	if p.Battery.WHr > b.MaxBatteryWHr {
		warnf(CategorySpecOutlier, "Battery %vWh exceeds %vWh, verify this is correct", p.Battery.WHr, b.MaxBatteryWHr)
	}
	if p.Display.Nits < b.MinNits {
		warnf(CategorySpecOutlier, "Display brightness %d nits is below %d, verify this is correct",
			p.Display.Nits, b.MinNits)
	}
	if p.Year < b.MinYear || p.Year > b.MaxYear {
		warnf(CategorySpecOutlier, "Year %d is outside expected range (%d-%d)", p.Year, b.MinYear, b.MaxYear)
	}

	if !v.cat.Compat.Has(p.ID) {
		warnf(CategoryMissingLinuxCompat, "No Linux compat entry for %q", p.Name)
	}
	if !v.cat.Editorial.Has(p.ID) {
		warnf(CategoryMissingEditorial, "No editorial entry for %q", p.Name)
	}
	if !v.observed[p.ID] {
		warnf(CategoryMissingPriceObservation, "No price observations for %q", p.Name)
	}
	if !v.cat.PriceBaselines.Has(p.ID) {
		warnf(CategoryMissingPriceBaseline, "No price baseline for %q", p.Name)
	}
	if !v.cat.ChassisBenchmarks.Has(p.ID) {
		warnf(CategoryMissingChassisBenchmark, "No chassis benchmark for %q", p.Name)
	}

	return out
}

func (v *run) checkPrices(acc *accumulator) {
	for _, b := range v.cat.PriceBaselines.All() {
		if b.MSRP < b.TypicalRetail {
			acc.push(LevelError, CategoryPriceInversion, b.ProductID,
				"MSRP (%v) < typical retail (%v)", b.MSRP, b.TypicalRetail)
		}
		if b.TypicalRetail < b.HistoricalLow {
			acc.push(LevelError, CategoryPriceInversion, b.ProductID,
				"Typical retail (%v) < historical low (%v)", b.TypicalRetail, b.HistoricalLow)
		}
	}

	seen := make(map[string]bool, len(v.cat.PriceObservations))
	for _, o := range v.cat.PriceObservations {
		if !v.ids[o.ProductID] {
			acc.push(LevelError, CategoryOrphanPriceObservation, o.ProductID,
				"Price observation %q references unknown product ID %q", o.ID, o.ProductID)
		}
		if seen[o.ID] {
			acc.push(LevelError, CategoryDuplicatePriceObservation, o.ProductID,
				"Duplicate price observation ID: %q", o.ID)
		}
		seen[o.ID] = true
		if o.Price <= 0 || o.Price > v.bounds.MaxPrice || math.IsNaN(o.Price) {
			acc.push(LevelError, CategoryPriceOutOfRange, o.ProductID,
				"Price observation %q has price %v outside (0, %v]", o.ID, o.Price, v.bounds.MaxPrice)
		}
	}
}

func (v *run) checkOrphans(acc *accumulator) {
	for _, b := range v.cat.PriceBaselines.All() {
		if !v.ids[b.ProductID] {
			acc.push(LevelError, CategoryOrphanPriceBaseline, b.ProductID,
				"Price baseline references unknown product ID %q", b.ProductID)
		}
	}
	for _, e := range v.cat.Compat.All() {
		if !v.ids[e.ProductID] {
			acc.push(LevelWarning, CategoryOrphanLinuxCompat, e.ProductID,
				"Linux compat entry references unknown product ID %q", e.ProductID)
		}
	}
	for _, e := range v.cat.Editorial.All() {
		if !v.ids[e.ProductID] {
			acc.push(LevelWarning, CategoryOrphanEditorial, e.ProductID,
				"Editorial entry references unknown product ID %q", e.ProductID)
		}
	}
	for _, b := range v.cat.ChassisBenchmarks.All() {
		if !v.ids[b.ProductID] {
			acc.push(LevelWarning, CategoryOrphanChassisBenchmark, b.ProductID,
				"Chassis benchmark entry references unknown product ID %q", b.ProductID)
		}
	}
	for _, d := range v.cat.Deals {
		if !v.ids[d.ProductID] {
			acc.push(LevelWarning, CategoryOrphanDeal, d.ProductID,
				"Deal %q references unknown product ID %q", d.ID, d.ProductID)
		}
	}
}

// checkDuplicateRows reports every satellite row shadowed by an earlier
// row for the same product. Lookups only ever see the first one.
func (v *run) checkDuplicateRows(acc *accumulator) {
	dupRows(acc, "price baseline", v.cat.PriceBaselines.All(), domain.PriceBaselineKey)
	dupRows(acc, "Linux compat entry", v.cat.Compat.All(), domain.CompatKey)
	dupRows(acc, "editorial entry", v.cat.Editorial.All(), domain.EditorialKey)
	dupRows(acc, "chassis benchmark", v.cat.ChassisBenchmarks.All(), domain.ChassisBenchmarkKey)
}

func dupRows[V any](acc *accumulator, table string, rows []V, key func(V) string) {
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		k := key(r)
		if seen[k] {
			acc.push(LevelError, CategoryDuplicateRow, k,
				"Duplicate %s for product ID %q, only the first row is used", table, k)
		}
		seen[k] = true
	}
}

func (v *run) checkReferences(acc *accumulator) {
	for _, name := range v.cpus.keys {
		if !v.cat.CPUGuide.Has(name) {
			acc.push(LevelWarning, CategoryMissingCPUGuide, "", "No hardware guide entry for CPU %q", name)
		}
	}
	for _, name := range v.gpus.keys {
		if !v.cat.GPUGuide.Has(name) {
			acc.push(LevelWarning, CategoryMissingGPUGuide, "", "No hardware guide entry for GPU %q", name)
		}
	}
	for _, name := range v.cat.CPUBenchmarks.Keys() {
		if !v.cpus.has(name) {
			acc.push(LevelWarning, CategoryUnusedCPUBenchmark, "",
				"CPU benchmark %q is not referenced by any product", name)
		}
	}
	for _, name := range v.cat.GPUBenchmarks.Keys() {
		if !v.gpus.has(name) {
			acc.push(LevelWarning, CategoryUnusedGPUBenchmark, "",
				"GPU benchmark %q is not referenced by any product", name)
		}
	}
}

func (v *run) stats(acc *accumulator) {
	lineups := newOrderedSet()
	counts := make(map[string]int)
	for _, p := range v.cat.Products {
		if p == nil {
			continue
		}
		lineups.add(string(p.Lineup))
		counts[string(p.Lineup)]++
	}
	for _, l := range lineups.keys {
		acc.push(LevelInfo, CategoryModelCount, "", "%s: %d models", l, counts[l])
	}
	total := len(v.cat.Products)
	acc.push(LevelInfo, CategoryModelCount, "", "Total: %d models", total)

	acc.push(LevelInfo, CategoryBenchmarkCount, "", "CPU benchmarks: %d entries (%d referenced)",
		v.cat.CPUBenchmarks.Len(), len(v.cpus.keys))
	acc.push(LevelInfo, CategoryBenchmarkCount, "", "GPU benchmarks: %d entries (%d referenced)",
		v.cat.GPUBenchmarks.Len(), len(v.gpus.keys))

	acc.push(LevelInfo, CategoryCoverage, "", "Linux compat: %d%%", coverage(v.cat.Compat.Keys(), v.ids, total))
	acc.push(LevelInfo, CategoryCoverage, "", "Editorial: %d%%", coverage(v.cat.Editorial.Keys(), v.ids, total))
	acc.push(LevelInfo, CategoryCoverage, "", "Price observations: %d%%", coverage(mapKeys(v.observed), v.ids, total))
	acc.push(LevelInfo, CategoryCoverage, "", "Price baselines: %d%%", coverage(v.cat.PriceBaselines.Keys(), v.ids, total))
	acc.push(LevelInfo, CategoryCoverage, "", "Chassis benchmarks: %d%%",
		coverage(v.cat.ChassisBenchmarks.Keys(), v.ids, total))
}

// coverage is the share of total products with an entry among ids.
func coverage(ids []string, known map[string]bool, total int) int {
	if total == 0 {
		return 0
	}
	n := 0
	for _, id := range ids {
		if known[id] {
			n++
		}
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}

func mapKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// psrefFamily maps a lineup to the family path segment used by the
// vendor's product reference site.
var psrefFamily = map[domain.Lineup]string{
	domain.LineupThinkPad:   "ThinkPad",
	domain.LineupIdeaPadPro: "IdeaPad",
	domain.LineupLegion:     "Legion",
}

// checkSpecURL checks that a psref.lenovo.com URL points at the product's
// own family, e.g. /Product/ThinkPad/... for a ThinkPad. Other hosts and
// empty URLs pass.
func checkSpecURL(p *domain.Product) (string, bool) {
	if p.SpecURL == "" {
		return "", true
	}
	u, err := url.Parse(p.SpecURL)
	if err != nil {
		return fmt.Sprintf("Spec URL %q is not a valid URL", p.SpecURL), false
	}
	if !strings.EqualFold(u.Hostname(), "psref.lenovo.com") {
		return "", true
	}
	want, ok := psrefFamily[p.Lineup]
	if !ok {
		return "", true
	}

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) < 2 || !strings.EqualFold(segs[0], "Product") {
		return "", true
	}
	if !strings.EqualFold(segs[1], want) {
		return fmt.Sprintf("Spec URL %q points at the %s family, expected %s", p.SpecURL, segs[1], want), false
	}
	return "", true
}

func joinSeries(s []domain.Series) string {
	parts := make([]string, len(s))
	for i := range s {
		parts[i] = string(s[i])
	}
	return strings.Join(parts, ", ")
}

// orderedSet keeps insertion order.
type orderedSet struct {
	keys []string
	set  map[string]bool
}

func newOrderedSet() orderedSet {
	return orderedSet{set: make(map[string]bool)}
}

func (s *orderedSet) add(k string) {
	if s.set[k] {
		return
	}
	s.set[k] = true
	s.keys = append(s.keys, k)
}

func (s *orderedSet) has(k string) bool {
	return s.set[k]
}
