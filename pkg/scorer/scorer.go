package score

import (
	"errors"
	"fmt"
	"math"

	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

// Dimension is one of the six comparable score axes.
type Dimension string

// Dimension constants.
const (
	DimensionCPU          Dimension = "cpu"
	DimensionGPU          Dimension = "gpu"
	DimensionMemory       Dimension = "memory"
	DimensionDisplay      Dimension = "display"
	DimensionConnectivity Dimension = "connectivity"
	DimensionPortability  Dimension = "portability"
)

// AllDimensions lists every dimension in radar-chart order.
var AllDimensions = []Dimension{
	DimensionCPU,
	DimensionGPU,
	DimensionMemory,
	DimensionPortability,
	DimensionDisplay,
	DimensionConnectivity,
}

// Valid reports whether d is a known dimension.
func (d Dimension) Valid() bool {
	switch d {
	case DimensionCPU, DimensionGPU, DimensionMemory,
		DimensionDisplay, DimensionConnectivity, DimensionPortability:
		return true
	default:
		return false
	}
}

// Benchmark ceilings. Benchmark composites are already normalized so the
// strongest part in each class sits near the ceiling.
const (
	CPUScoreCeiling = 100.0
	GPUScoreCeiling = 100.0
)

// DefaultValueScale puts a mid-range model at a typical price near 50.
const DefaultValueScale = 1.2

// Weights defines the relative importance of each dimension in the
// composite score.
type Weights struct {
	CPU          float64 `json:"cpu"          yaml:"cpu"`
	GPU          float64 `json:"gpu"          yaml:"gpu"`
	Memory       float64 `json:"memory"       yaml:"memory"`
	Display      float64 `json:"display"      yaml:"display"`
	Connectivity float64 `json:"connectivity" yaml:"connectivity"`
	Portability  float64 `json:"portability"  yaml:"portability"`
}

// DefaultWeights returns the default composite weights.
func DefaultWeights() Weights {
	return Weights{
		CPU:          0.30,
		GPU:          0.20,
		Memory:       0.15,
		Display:      0.15,
		Connectivity: 0.10,
		Portability:  0.10,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.CPU + w.GPU + w.Memory + w.Display + w.Connectivity + w.Portability
}

// Validate checks that every weight is non-negative and that they sum to 1.
func (w Weights) Validate() error {
	var errs []error
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"cpu", w.CPU},
		{"gpu", w.GPU},
		{"memory", w.Memory},
		{"display", w.Display},
		{"connectivity", w.Connectivity},
		{"portability", w.Portability},
	} {
		if f.v < 0 || math.IsNaN(f.v) {
			errs = append(errs, fmt.Errorf("weight %s must be >= 0 (got %v)", f.name, f.v))
		}
	}
	if math.Abs(w.Sum()-1) > 0.001 {
		errs = append(errs, fmt.Errorf("weights must sum to 1.0 (got %.3f)", w.Sum()))
	}
	return errors.Join(errs...)
}

// Dimensions holds the six per-dimension scores of one product.
type Dimensions struct {
	CPU          float64 `json:"cpu"`
	GPU          float64 `json:"gpu"`
	Memory       float64 `json:"memory"`
	Display      float64 `json:"display"`
	Connectivity float64 `json:"connectivity"`
	Portability  float64 `json:"portability"`
}

// Get returns the score for dim, or 0 for an unknown dimension.
func (d Dimensions) Get(dim Dimension) float64 {
	switch dim {
	case DimensionCPU:
		return d.CPU
	case DimensionGPU:
		return d.GPU
	case DimensionMemory:
		return d.Memory
	case DimensionDisplay:
		return d.Display
	case DimensionConnectivity:
		return d.Connectivity
	case DimensionPortability:
		return d.Portability
	default:
		return 0
	}
}

// Scorer computes scores against a fixed pair of benchmark tables. It holds
// no mutable state and is safe for concurrent use.
type Scorer struct {
	cpu        domain.Table[domain.CPUBenchmark]
	gpu        domain.Table[domain.GPUBenchmark]
	weights    Weights
	valueScale float64
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithWeights overrides the composite weights.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		s.weights = w
	}
}

// WithValueScale overrides the value score scale factor.
func WithValueScale(scale float64) Option {
	return func(s *Scorer) {
		if scale > 0 {
			s.valueScale = scale
		}
	}
}

// New creates a Scorer over the given benchmark tables.
func New(
	cpu domain.Table[domain.CPUBenchmark],
	gpu domain.Table[domain.GPUBenchmark],
	opts ...Option,
) *Scorer {
	s := &Scorer{
		cpu:        cpu,
		gpu:        gpu,
		weights:    DefaultWeights(),
		valueScale: DefaultValueScale,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weights returns the composite weights in use.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Dimension returns the 0-100 score of a resolved product on one dimension.
// A component missing from its benchmark table scores 0.
func (s *Scorer) Dimension(p *domain.Product, dim Dimension) float64 {
	switch dim {
	case DimensionCPU:
		return s.cpuScore(p.Processor.Name)
	case DimensionGPU:
		return s.gpuScore(p.GPU.Name)
	case DimensionMemory:
		return MemoryScore(p).Total
	case DimensionDisplay:
		return DisplayScore(p.Display).Total
	case DimensionConnectivity:
		return ConnectivityScore(p).Total
	case DimensionPortability:
		return PortabilityScore(p).Total
	default:
		return 0
	}
}

// Dimensions returns all six dimension scores.
func (s *Scorer) Dimensions(p *domain.Product) Dimensions {
	return Dimensions{
		CPU:          s.Dimension(p, DimensionCPU),
		GPU:          s.Dimension(p, DimensionGPU),
		Memory:       s.Dimension(p, DimensionMemory),
		Display:      s.Dimension(p, DimensionDisplay),
		Connectivity: s.Dimension(p, DimensionConnectivity),
		Portability:  s.Dimension(p, DimensionPortability),
	}
}

// Composite returns the weighted blend of all dimensions, 0-100.
func (s *Scorer) Composite(p *domain.Product) float64 {
	return s.Blend(s.Dimensions(p))
}

// Blend combines precomputed dimension scores with the scorer's weights.
// It is non-decreasing in every dimension.
func (s *Scorer) Blend(d Dimensions) float64 {
	w := s.weights
	total := d.CPU*w.CPU +
		d.GPU*w.GPU +
		d.Memory*w.Memory +
		d.Display*w.Display +
		d.Connectivity*w.Connectivity +
		d.Portability*w.Portability

	return clamp(math.Round(total), 0, 100)
}

func (s *Scorer) cpuScore(name string) float64 {
	b, ok := s.cpu.Get(name)
	if !ok {
		return 0
	}
	return clamp(float64(b.Composite)/CPUScoreCeiling*100, 0, 100)
}

func (s *Scorer) gpuScore(name string) float64 {
	b, ok := s.gpu.Get(name)
	if !ok {
		return 0
	}
	return clamp(float64(b.Score)/GPUScoreCeiling*100, 0, 100)
}

// CPUBreakdown holds the raw CPU benchmark sub-scores.
type CPUBreakdown struct {
	SingleCore int  `json:"single_core"`
	MultiCore  int  `json:"multi_core"`
	Composite  int  `json:"composite"`
	Found      bool `json:"found"`
}

// CPUBreakdown returns the sub-scores for a processor name. Unknown
// processors return zeros with Found unset.
func (s *Scorer) CPUBreakdown(name string) CPUBreakdown {
	b, ok := s.cpu.Get(name)
	if !ok {
		return CPUBreakdown{}
	}
	return CPUBreakdown{
		SingleCore: b.SingleCore,
		MultiCore:  b.MultiCore,
		Composite:  b.Composite,
		Found:      true,
	}
}

// GPUBreakdown holds the GPU score and gaming tier.
type GPUBreakdown struct {
	Score      int               `json:"score"`
	GamingTier domain.GamingTier `json:"gaming_tier"`
	Found      bool              `json:"found"`
}

// GPUBreakdown returns the score and tier for a GPU name. Unknown GPUs
// score 0 with gaming tier None.
func (s *Scorer) GPUBreakdown(name string) GPUBreakdown {
	b, ok := s.gpu.Get(name)
	if !ok {
		return GPUBreakdown{GamingTier: domain.GamingNone}
	}
	tier := b.GamingTier
	if tier == "" {
		tier = domain.GamingNone
	}
	return GPUBreakdown{Score: b.Score, GamingTier: tier, Found: true}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// lerp linearly interpolates a value between two score boundaries.
func lerp(val, minVal, maxVal, minScore, maxScore float64) float64 {
	if maxVal == minVal {
		return minScore
	}
	t := (val - minVal) / (maxVal - minVal)
	return minScore + t*(maxScore-minScore)
}
