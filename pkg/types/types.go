// Package domain defines the core catalog types for laptop-compare.
package domain

import "slices"

// Lineup is the top-level product family.
type Lineup string

// Lineup constants.
const (
	LineupThinkPad   Lineup = "ThinkPad"
	LineupIdeaPadPro Lineup = "IdeaPad Pro"
	LineupLegion     Lineup = "Legion"
)

// Lineups lists every lineup in display order.
var Lineups = []Lineup{LineupThinkPad, LineupIdeaPadPro, LineupLegion}

// Valid reports whether l is a known lineup.
func (l Lineup) Valid() bool {
	switch l {
	case LineupThinkPad, LineupIdeaPadPro, LineupLegion:
		return true
	default:
		return false
	}
}

// Series is a product series within a lineup.
type Series string

// Series constants.
const (
	SeriesX1    Series = "X1"
	SeriesT     Series = "T"
	SeriesP     Series = "P"
	SeriesL     Series = "L"
	SeriesE     Series = "E"
	SeriesPro5  Series = "Pro 5"
	SeriesPro5i Series = "Pro 5i"
	SeriesPro7  Series = "Pro 7"
	Series5     Series = "5"
	Series5i    Series = "5i"
	Series7     Series = "7"
	Series7i    Series = "7i"
	SeriesPro   Series = "Pro"
	SeriesSlim  Series = "Slim"
)

// ValidSeries returns the series allowed for a lineup. Unknown lineups
// have no valid series.
func ValidSeries(l Lineup) []Series {
	switch l {
	case LineupThinkPad:
		return []Series{SeriesX1, SeriesT, SeriesP, SeriesL, SeriesE}
	case LineupIdeaPadPro:
		return []Series{SeriesPro5, SeriesPro5i, SeriesPro7}
	case LineupLegion:
		return []Series{Series5, Series5i, Series7, Series7i, SeriesPro, SeriesSlim}
	default:
		return nil
	}
}

// SeriesValidFor reports whether s belongs to lineup l.
func SeriesValidFor(l Lineup, s Series) bool {
	return slices.Contains(ValidSeries(l), s)
}

// Panel is the display panel technology.
type Panel string

// Panel constants.
const (
	PanelIPS  Panel = "IPS"
	PanelOLED Panel = "OLED"
	PanelTN   Panel = "TN"
)

// RAMType is the memory technology.
type RAMType string

// RAM type constants.
const (
	RAMDDR4    RAMType = "DDR4"
	RAMDDR5    RAMType = "DDR5"
	RAMLPDDR5  RAMType = "LPDDR5"
	RAMLPDDR5x RAMType = "LPDDR5x"
)

// LinuxStatus is the vendor Linux certification state.
type LinuxStatus string

// Linux status constants.
const (
	LinuxCertified LinuxStatus = "certified"
	LinuxCommunity LinuxStatus = "community"
	LinuxUnknown   LinuxStatus = "unknown"
)

// Processor describes a CPU configuration.
type Processor struct {
	Name       string  `json:"name"        yaml:"name"`
	Cores      int     `json:"cores"       yaml:"cores"`
	Threads    int     `json:"threads"     yaml:"threads"`
	BaseClock  float64 `json:"base_clock"  yaml:"base_clock"`
	BoostClock float64 `json:"boost_clock" yaml:"boost_clock"`
	TDP        int     `json:"tdp"         yaml:"tdp"`
}

// GPU describes a graphics configuration.
type GPU struct {
	Name       string `json:"name"           yaml:"name"`
	VRAM       *int   `json:"vram,omitempty" yaml:"vram,omitempty"`
	Integrated bool   `json:"integrated"     yaml:"integrated"`
}

// RAM describes a memory configuration.
type RAM struct {
	Size     int     `json:"size"     yaml:"size"`
	Type     RAMType `json:"type"     yaml:"type"`
	Speed    int     `json:"speed"    yaml:"speed"`
	MaxSize  int     `json:"max_size" yaml:"max_size"`
	Slots    int     `json:"slots"    yaml:"slots"`
	Soldered bool    `json:"soldered" yaml:"soldered"`
}

// Storage describes a storage configuration.
type Storage struct {
	Type  string `json:"type"  yaml:"type"`
	Size  int    `json:"size"  yaml:"size"`
	Slots int    `json:"slots" yaml:"slots"`
}

// Display describes a panel configuration.
type Display struct {
	Size            float64 `json:"size"             yaml:"size"`
	Resolution      string  `json:"resolution"       yaml:"resolution"`
	ResolutionLabel string  `json:"resolution_label" yaml:"resolution_label"`
	Panel           Panel   `json:"panel"            yaml:"panel"`
	RefreshRate     int     `json:"refresh_rate"     yaml:"refresh_rate"`
	Nits            int     `json:"nits"             yaml:"nits"`
	Touchscreen     bool    `json:"touchscreen"      yaml:"touchscreen"`
}

// Battery describes the battery pack.
type Battery struct {
	WHr       float64 `json:"whr"       yaml:"whr"`
	Removable bool    `json:"removable" yaml:"removable"`
}

// Product is a single laptop model with its base configuration and any
// build-to-order alternatives.
type Product struct {
	ID          string      `json:"id"                     yaml:"id"`
	Name        string      `json:"name"                   yaml:"name"`
	Lineup      Lineup      `json:"lineup"                 yaml:"lineup"`
	Series      Series      `json:"series"                 yaml:"series"`
	Year        int         `json:"year"                   yaml:"year"`
	Processor   Processor   `json:"processor"              yaml:"processor"`
	GPU         GPU         `json:"gpu"                    yaml:"gpu"`
	RAM         RAM         `json:"ram"                    yaml:"ram"`
	Storage     Storage     `json:"storage"                yaml:"storage"`
	Display     Display     `json:"display"                yaml:"display"`
	Battery     Battery     `json:"battery"                yaml:"battery"`
	Weight      float64     `json:"weight"                 yaml:"weight"`
	Ports       []string    `json:"ports"                  yaml:"ports"`
	Wireless    []string    `json:"wireless"               yaml:"wireless"`
	OS          string      `json:"os,omitempty"           yaml:"os,omitempty"`
	SpecURL     string      `json:"spec_url,omitempty"     yaml:"spec_url,omitempty"`
	LinuxStatus LinuxStatus `json:"linux_status,omitempty" yaml:"linux_status,omitempty"`

	// Build-to-order alternatives.
	ProcessorOptions []Processor `json:"processor_options,omitempty" yaml:"processor_options,omitempty"`
	DisplayOptions   []Display   `json:"display_options,omitempty"   yaml:"display_options,omitempty"`
	GPUOptions       []GPU       `json:"gpu_options,omitempty"       yaml:"gpu_options,omitempty"`
	RAMOptions       []RAM       `json:"ram_options,omitempty"       yaml:"ram_options,omitempty"`
	StorageOptions   []Storage   `json:"storage_options,omitempty"   yaml:"storage_options,omitempty"`
}

// ProcessorNames returns the base processor name followed by every option.
func (p *Product) ProcessorNames() []string {
	names := make([]string, 0, 1+len(p.ProcessorOptions))
	names = append(names, p.Processor.Name)
	for i := range p.ProcessorOptions {
		names = append(names, p.ProcessorOptions[i].Name)
	}
	return names
}

// GPUNames returns the base GPU name followed by every option.
func (p *Product) GPUNames() []string {
	names := make([]string, 0, 1+len(p.GPUOptions))
	names = append(names, p.GPU.Name)
	for i := range p.GPUOptions {
		names = append(names, p.GPUOptions[i].Name)
	}
	return names
}

// HasOptions reports whether the product offers any build-to-order choice.
func (p *Product) HasOptions() bool {
	return len(p.ProcessorOptions) > 0 ||
		len(p.DisplayOptions) > 0 ||
		len(p.GPUOptions) > 0 ||
		len(p.RAMOptions) > 0 ||
		len(p.StorageOptions) > 0
}

// GamingTier is the coarse gaming capability of a GPU.
type GamingTier string

// Gaming tier constants.
const (
	GamingNone   GamingTier = "None"
	GamingLight  GamingTier = "Light"
	GamingMedium GamingTier = "Medium"
	GamingHeavy  GamingTier = "Heavy"
)

// CPUBenchmark holds normalized CPU scores keyed by processor name.
type CPUBenchmark struct {
	Name       string `json:"name"        yaml:"name"`
	SingleCore int    `json:"single_core" yaml:"single_core"`
	MultiCore  int    `json:"multi_core"  yaml:"multi_core"`
	Composite  int    `json:"composite"   yaml:"composite"`

	Cinebench2024Single *int `json:"cinebench2024_single,omitempty" yaml:"cinebench2024_single,omitempty"`
	Cinebench2024Multi  *int `json:"cinebench2024_multi,omitempty"  yaml:"cinebench2024_multi,omitempty"`
	Geekbench6Single    *int `json:"geekbench6_single,omitempty"    yaml:"geekbench6_single,omitempty"`
	Geekbench6Multi     *int `json:"geekbench6_multi,omitempty"     yaml:"geekbench6_multi,omitempty"`
	TypicalTDPAvg       *int `json:"typical_tdp_avg,omitempty"      yaml:"typical_tdp_avg,omitempty"`
}

// GPUBenchmark holds a normalized GPU score keyed by GPU name.
type GPUBenchmark struct {
	Name         string     `json:"name"                     yaml:"name"`
	Score        int        `json:"score"                    yaml:"score"`
	GamingTier   GamingTier `json:"gaming_tier"              yaml:"gaming_tier"`
	TimeSpyScore *int       `json:"time_spy_score,omitempty" yaml:"time_spy_score,omitempty"`
}

// ChassisBenchmark holds per-model review measurements.
type ChassisBenchmark struct {
	ProductID         string   `json:"product_id"                     yaml:"product_id"`
	KeyboardMaxC      *float64 `json:"keyboard_max_c,omitempty"       yaml:"keyboard_max_c,omitempty"`
	UndersideMaxC     *float64 `json:"underside_max_c,omitempty"      yaml:"underside_max_c,omitempty"`
	FanNoiseDB        *float64 `json:"fan_noise_db,omitempty"         yaml:"fan_noise_db,omitempty"`
	OfficeHours       *float64 `json:"office_hours,omitempty"         yaml:"office_hours,omitempty"`
	VideoHours        *float64 `json:"video_hours,omitempty"          yaml:"video_hours,omitempty"`
	SSDReadMBs        *int     `json:"ssd_read_mbs,omitempty"         yaml:"ssd_read_mbs,omitempty"`
	SSDWriteMBs       *int     `json:"ssd_write_mbs,omitempty"        yaml:"ssd_write_mbs,omitempty"`
	DisplayBrightness *int     `json:"display_brightness,omitempty"   yaml:"display_brightness,omitempty"`
	Sources           []string `json:"sources,omitempty"              yaml:"sources,omitempty"`
}

// DriverNote is a per-component Linux driver remark.
type DriverNote struct {
	Component string `json:"component"            yaml:"component"`
	Status    string `json:"status"               yaml:"status"`
	Notes     string `json:"notes"                yaml:"notes"`
	MinKernel string `json:"min_kernel,omitempty" yaml:"min_kernel,omitempty"`
}

// CompatEntry is the Linux compatibility record for a product.
type CompatEntry struct {
	ProductID         string       `json:"product_id"                 yaml:"product_id"`
	CertifiedDistros  []string     `json:"certified_distros"          yaml:"certified_distros"`
	RecommendedKernel string       `json:"recommended_kernel"         yaml:"recommended_kernel"`
	DriverNotes       []DriverNote `json:"driver_notes,omitempty"     yaml:"driver_notes,omitempty"`
	GeneralNotes      string       `json:"general_notes,omitempty"    yaml:"general_notes,omitempty"`
}

// EditorialEntry is the curated human-written overlay for a product.
type EditorialEntry struct {
	ProductID   string `json:"product_id"             yaml:"product_id"`
	Notes       string `json:"notes,omitempty"        yaml:"notes,omitempty"`
	KnownIssues string `json:"known_issues,omitempty" yaml:"known_issues,omitempty"`
	MarketNotes string `json:"market_notes,omitempty" yaml:"market_notes,omitempty"`
}

// GuideEntry is a hardware guide row keyed by CPU or GPU name.
type GuideEntry struct {
	Name         string   `json:"name"                   yaml:"name"`
	Summary      string   `json:"summary"                yaml:"summary"`
	Strengths    []string `json:"strengths,omitempty"    yaml:"strengths,omitempty"`
	Weaknesses   []string `json:"weaknesses,omitempty"   yaml:"weaknesses,omitempty"`
	BestFor      []string `json:"best_for,omitempty"     yaml:"best_for,omitempty"`
	Architecture string   `json:"architecture,omitempty" yaml:"architecture,omitempty"`
}
