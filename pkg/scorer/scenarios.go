package score

import domain "github.com/donaldgifford/laptop-compare/pkg/types"

var interpretations = map[Dimension][4]string{
	DimensionCPU: {
		"Heavy compilation, video encoding, and ML workloads",
		"Strong multitasking and moderate content creation",
		"Office work, web browsing, and light development",
		"Basic tasks, may lag under sustained load",
	},
	DimensionGPU: {
		"Modern gaming at 1080p+ and GPU-accelerated rendering",
		"Light gaming, photo editing, and hardware video decode",
		"Video playback and basic graphics tasks",
		"Display output only, no GPU-intensive work",
	},
	DimensionMemory: {
		"Large datasets, VMs, and heavy multitasking with room to grow",
		"Comfortable for most professional workloads",
		"Adequate for everyday use, limited upgrade headroom",
		"Constrained, may struggle with multiple apps",
	},
	DimensionDisplay: {
		"Exceptional for color-critical work and media consumption",
		"Good visual quality for professional and creative tasks",
		"Serviceable for productivity and casual use",
		"Basic display, fine for text-heavy work",
	},
	DimensionConnectivity: {
		"Fully loaded: docking, peripherals, and fast networking covered",
		"Strong port selection for most workflows",
		"Covers the basics but may need adapters",
		"Limited, adapter or dock recommended",
	},
	DimensionPortability: {
		"Ultra-portable, easy all-day carry with long battery",
		"Good balance of weight and battery life",
		"Reasonable for occasional travel",
		"Desktop replacement, best used stationary",
	},
}

// Interpretation returns a one-line reading of a dimension score.
// Bands: >= 80, >= 60, >= 40, below 40.
func Interpretation(dim Dimension, score float64) string {
	texts, ok := interpretations[dim]
	if !ok {
		return ""
	}
	switch {
	case score >= 80:
		return texts[0]
	case score >= 60:
		return texts[1]
	case score >= 40:
		return texts[2]
	default:
		return texts[3]
	}
}

// Verdict grades how well a model fits a use case.
type Verdict string

// Verdict constants, weakest to strongest.
const (
	VerdictInsufficient Verdict = "insufficient"
	VerdictMarginal     Verdict = "marginal"
	VerdictGood         Verdict = "good"
	VerdictExcellent    Verdict = "excellent"
	VerdictOverkill     Verdict = "overkill"
)

// Scenario is a use-case verdict with its explanation.
type Scenario struct {
	Name        string  `json:"name"`
	Verdict     Verdict `json:"verdict"`
	Explanation string  `json:"explanation"`
}

type scenarioDef struct {
	name       string
	thresholds [4]float64
	// explanations indexed insufficient, marginal, good, excellent, overkill
	explanations [5]string
}

var (
	officeScenario = scenarioDef{
		name:       "Office / Productivity",
		thresholds: [4]float64{30, 50, 65, 85},
		explanations: [5]string{
			"May struggle with heavy multitasking",
			"Adequate for basic office tasks",
			"Handles office work comfortably",
			"Excellent for all office workloads",
			"Way more power than needed for office tasks",
		},
	}
	devScenario = scenarioDef{
		name:       "Software Development",
		thresholds: [4]float64{25, 40, 55, 75},
		explanations: [5]string{
			"Insufficient RAM or CPU for development",
			"Can develop but may feel slow with heavy projects",
			"Good for most development tasks",
			"Excellent for IDEs, containers, and compilation",
			"More than enough for any development workflow",
		},
	}
	videoScenario = scenarioDef{
		name:       "Video Editing",
		thresholds: [4]float64{20, 35, 50, 70},
		explanations: [5]string{
			"Insufficient for video editing",
			"Can edit basic 1080p, 4K will be very slow",
			"Good for 1080p editing, manageable 4K",
			"Handles 4K editing and rendering well",
			"Professional-grade editing capability",
		},
	}
	mlScenario = scenarioDef{
		name:       "Data Science / ML",
		thresholds: [4]float64{20, 35, 50, 70},
		explanations: [5]string{
			"Insufficient GPU/RAM for meaningful ML work",
			"Can run notebooks, but slow for large datasets",
			"Good for data analysis, limited local training",
			"Strong for data analysis, moderate model training",
			"Excellent for local model training and large datasets",
		},
	}
	virtScenario = scenarioDef{
		name:       "Virtualization",
		thresholds: [4]float64{25, 40, 55, 75},
		explanations: [5]string{
			"Insufficient RAM for virtualization",
			"A single lightweight VM is possible",
			"Can run 1-2 VMs alongside host workloads",
			"Comfortable running 2-3 VMs",
			"Can run many VMs simultaneously",
		},
	}
)

var verdictOrder = [5]Verdict{
	VerdictInsufficient,
	VerdictMarginal,
	VerdictGood,
	VerdictExcellent,
	VerdictOverkill,
}

func (d scenarioDef) evaluate(score float64) Scenario {
	idx := 0
	for i, t := range d.thresholds {
		if score >= t {
			idx = i + 1
		}
	}
	return Scenario{Name: d.name, Verdict: verdictOrder[idx], Explanation: d.explanations[idx]}
}

// Scenarios grades a resolved product against six common workloads.
func (s *Scorer) Scenarios(p *domain.Product) []Scenario {
	cpu := s.Dimension(p, DimensionCPU)
	gpu := s.Dimension(p, DimensionGPU)
	mem := s.Dimension(p, DimensionMemory)

	devBonus := 5.0
	switch {
	case p.Display.Size >= 15:
		devBonus = 15
	case p.Display.Size >= 14:
		devBonus = 10
	}

	panelBonus := 5.0
	if p.Display.Panel == domain.PanelOLED {
		panelBonus = 15
	}

	var ramBonus, maxRAMBonus float64
	if p.RAM.Size >= 32 {
		ramBonus = 10
	}
	if p.RAM.MaxSize >= 64 {
		maxRAMBonus = 10
	}

	return []Scenario{
		officeScenario.evaluate(cpu*0.3 + mem*0.3 + 40),
		devScenario.evaluate(cpu*0.35 + mem*0.35 + devBonus),
		gamingScenario(s.GPUBreakdown(p.GPU.Name).GamingTier),
		videoScenario.evaluate(cpu*0.3 + gpu*0.3 + mem*0.2 + panelBonus),
		mlScenario.evaluate(cpu*0.25 + gpu*0.35 + mem*0.25 + ramBonus),
		virtScenario.evaluate(cpu*0.35 + mem*0.45 + maxRAMBonus),
	}
}

func gamingScenario(tier domain.GamingTier) Scenario {
	sc := Scenario{Name: "Gaming"}
	switch tier {
	case domain.GamingHeavy:
		sc.Verdict = VerdictExcellent
		sc.Explanation = "Can handle AAA titles at 1080p medium-high settings"
	case domain.GamingMedium:
		sc.Verdict = VerdictGood
		sc.Explanation = "Playable in many titles at 720p-1080p low-medium"
	case domain.GamingLight:
		sc.Verdict = VerdictMarginal
		sc.Explanation = "Limited to esports and indie titles at low settings"
	case domain.GamingNone:
		sc.Verdict = VerdictInsufficient
		sc.Explanation = "Not suitable for gaming beyond very basic 2D titles"
	default:
		sc.Verdict = VerdictInsufficient
		sc.Explanation = "Not suitable for gaming beyond very basic 2D titles"
	}
	return sc
}
