// Package validate checks a catalog for referential integrity, impossible
// values and coverage gaps. Findings are reported as issues, never as Go
// errors, and Validate never panics.
package validate

import "fmt"

// Level is the severity of an issue.
type Level string

// Level constants.
const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	switch l {
	case LevelError, LevelWarning, LevelInfo:
		return true
	default:
		return false
	}
}

// Category classifies an issue.
type Category string

// Category constants.
const (
	CategoryCritical        Category = "Critical"
	CategoryValidationCrash Category = "Validation Crash"

	CategoryDuplicateID         Category = "Duplicate ID"
	CategoryInvalidLineupSeries Category = "Invalid Lineup/Series"
	CategoryMissingCPUBenchmark Category = "Missing CPU Benchmark"
	CategoryMissingGPUBenchmark Category = "Missing GPU Benchmark"
	CategoryImpossibleSpec      Category = "Impossible Spec"
	CategoryInvalidSpecURL      Category = "Invalid Spec URL"

	CategorySpecOutlier             Category = "Spec Outlier"
	CategoryMissingLinuxCompat      Category = "Missing Linux Compat"
	CategoryMissingEditorial        Category = "Missing Editorial"
	CategoryMissingPriceObservation Category = "Missing Price Observation"
	CategoryMissingPriceBaseline    Category = "Missing Price Baseline"
	CategoryMissingChassisBenchmark Category = "Missing Chassis Benchmark"

	CategoryPriceInversion            Category = "Price Inversion"
	CategoryOrphanPriceObservation    Category = "Orphan Price Observation"
	CategoryOrphanPriceBaseline       Category = "Orphan Price Baseline"
	CategoryOrphanLinuxCompat         Category = "Orphan Linux Compat"
	CategoryOrphanEditorial           Category = "Orphan Editorial"
	CategoryOrphanChassisBenchmark    Category = "Orphan Chassis Benchmark"
	CategoryOrphanDeal                Category = "Orphan Deal"
	CategoryDuplicatePriceObservation Category = "Duplicate Price Observation ID"
	CategoryPriceOutOfRange           Category = "Price Observation Out of Range"
	CategoryDuplicateRow              Category = "Duplicate Row"

	CategoryMissingCPUGuide    Category = "Missing CPU Guide"
	CategoryMissingGPUGuide    Category = "Missing GPU Guide"
	CategoryUnusedCPUBenchmark Category = "Unused CPU Benchmark"
	CategoryUnusedGPUBenchmark Category = "Unused GPU Benchmark"
	CategoryModelCount         Category = "Model Count"
	CategoryBenchmarkCount     Category = "Benchmark Count"
	CategoryCoverage           Category = "Coverage"
)

// Categories lists every category.
var Categories = []Category{
	CategoryCritical,
	CategoryValidationCrash,
	CategoryDuplicateID,
	CategoryInvalidLineupSeries,
	CategoryMissingCPUBenchmark,
	CategoryMissingGPUBenchmark,
	CategoryImpossibleSpec,
	CategoryInvalidSpecURL,
	CategorySpecOutlier,
	CategoryMissingLinuxCompat,
	CategoryMissingEditorial,
	CategoryMissingPriceObservation,
	CategoryMissingPriceBaseline,
	CategoryMissingChassisBenchmark,
	CategoryPriceInversion,
	CategoryOrphanPriceObservation,
	CategoryOrphanPriceBaseline,
	CategoryOrphanLinuxCompat,
	CategoryOrphanEditorial,
	CategoryOrphanChassisBenchmark,
	CategoryOrphanDeal,
	CategoryDuplicatePriceObservation,
	CategoryPriceOutOfRange,
	CategoryDuplicateRow,
	CategoryMissingCPUGuide,
	CategoryMissingGPUGuide,
	CategoryUnusedCPUBenchmark,
	CategoryUnusedGPUBenchmark,
	CategoryModelCount,
	CategoryBenchmarkCount,
	CategoryCoverage,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryCritical, CategoryValidationCrash,
		CategoryDuplicateID, CategoryInvalidLineupSeries,
		CategoryMissingCPUBenchmark, CategoryMissingGPUBenchmark,
		CategoryImpossibleSpec, CategoryInvalidSpecURL,
		CategorySpecOutlier, CategoryMissingLinuxCompat, CategoryMissingEditorial,
		CategoryMissingPriceObservation, CategoryMissingPriceBaseline,
		CategoryMissingChassisBenchmark,
		CategoryPriceInversion, CategoryOrphanPriceObservation, CategoryOrphanPriceBaseline,
		CategoryOrphanLinuxCompat, CategoryOrphanEditorial, CategoryOrphanChassisBenchmark,
		CategoryOrphanDeal, CategoryDuplicatePriceObservation, CategoryPriceOutOfRange,
		CategoryDuplicateRow,
		CategoryMissingCPUGuide, CategoryMissingGPUGuide,
		CategoryUnusedCPUBenchmark, CategoryUnusedGPUBenchmark,
		CategoryModelCount, CategoryBenchmarkCount, CategoryCoverage:
		return true
	default:
		return false
	}
}

// Issue is a single validation finding.
type Issue struct {
	Level     Level    `json:"level"`
	Category  Category `json:"category"`
	ProductID string   `json:"product_id,omitempty"`
	Message   string   `json:"message"`
}

// Result holds the issues of one validation run, split by level. Each
// list is in discovery order.
type Result struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
	Info     []Issue `json:"info"`
	// CategoryOrder is every category that occurred, in first-seen order.
	CategoryOrder []Category `json:"category_order"`
}

// HasErrors reports whether any error-level issue was found.
func (r Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// All returns errors, then warnings, then info.
func (r Result) All() []Issue {
	out := make([]Issue, 0, len(r.Errors)+len(r.Warnings)+len(r.Info))
	out = append(out, r.Errors...)
	out = append(out, r.Warnings...)
	return append(out, r.Info...)
}

// accumulator collects issues and remembers category first-seen order.
type accumulator struct {
	errors   []Issue
	warnings []Issue
	info     []Issue
	order    []Category
	seen     map[Category]bool
}

func newAccumulator() *accumulator {
	return &accumulator{seen: make(map[Category]bool)}
}

func (a *accumulator) add(is Issue) {
	if !a.seen[is.Category] {
		a.seen[is.Category] = true
		a.order = append(a.order, is.Category)
	}
	switch is.Level {
	case LevelError:
		a.errors = append(a.errors, is)
	case LevelWarning:
		a.warnings = append(a.warnings, is)
	case LevelInfo:
		a.info = append(a.info, is)
	default:
		a.errors = append(a.errors, is)
	}
}

func (a *accumulator) push(level Level, cat Category, productID, format string, args ...any) {
	a.add(newIssue(level, cat, productID, format, args...))
}

func (a *accumulator) result() Result {
	return Result{
		Errors:        nonNil(a.errors),
		Warnings:      nonNil(a.warnings),
		Info:          nonNil(a.info),
		CategoryOrder: a.order,
	}
}

func newIssue(level Level, cat Category, productID, format string, args ...any) Issue {
	return Issue{
		Level:     level,
		Category:  cat,
		ProductID: productID,
		Message:   fmt.Sprintf(format, args...),
	}
}

func nonNil(issues []Issue) []Issue {
	if issues == nil {
		return []Issue{}
	}
	return issues
}
