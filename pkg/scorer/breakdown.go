package score

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/laptop-compare/pkg/types"
)

// DisplayBreakdown splits the display score into its parts.
// Maximums: resolution 30, panel 25, brightness 15, refresh 15, touch 10, size 5.
type DisplayBreakdown struct {
	Resolution float64 `json:"resolution"`
	Panel      float64 `json:"panel"`
	Brightness float64 `json:"brightness"`
	Refresh    float64 `json:"refresh"`
	Touch      float64 `json:"touch"`
	Size       float64 `json:"size"`
	Total      float64 `json:"total"`
}

const (
	referencePixels   = 3840 * 2400
	brightnessCeiling = 600.0
	refreshFloor      = 60.0
	refreshCeiling    = 120.0
	sizeFloor         = 13.0
	sizeCeiling       = 16.0
)

// DisplayScore scores a display configuration.
func DisplayScore(d domain.Display) DisplayBreakdown {
	b := DisplayBreakdown{
		Resolution: clamp(float64(pixels(d.Resolution))/referencePixels*30, 0, 30),
		Panel:      panelScore(d.Panel),
		Brightness: clamp(float64(d.Nits)/brightnessCeiling*15, 0, 15),
		Refresh:    clamp(lerp(float64(d.RefreshRate), refreshFloor, refreshCeiling, 0, 15), 0, 15),
		Size:       clamp(lerp(d.Size, sizeFloor, sizeCeiling, 0, 5), 0, 5),
	}
	if d.Touchscreen {
		b.Touch = 10
	}

	sum := b.Resolution + b.Panel + b.Brightness + b.Refresh + b.Touch + b.Size
	b.Total = math.Round(math.Min(100, sum))
	return b
}

func panelScore(p domain.Panel) float64 {
	switch p {
	case domain.PanelOLED:
		return 25
	case domain.PanelIPS:
		return 15
	case domain.PanelTN:
		return 5
	default:
		return 5
	}
}

// pixels parses "WxH" and returns W*H, or 0 when unparseable.
func pixels(resolution string) int {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(resolution)), "x")
	if !ok {
		return 0
	}
	wi, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil || wi < 0 {
		return 0
	}
	hi, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || hi < 0 {
		return 0
	}
	return wi * hi
}

// MemoryBreakdown splits the memory and storage score into its parts.
type MemoryBreakdown struct {
	RAMSize       float64 `json:"ram_size"`
	MaxRAM        float64 `json:"max_ram"`
	RAMType       float64 `json:"ram_type"`
	StorageSize   float64 `json:"storage_size"`
	Upgradability float64 `json:"upgradability"`
	StorageSlots  float64 `json:"storage_slots"`
	Total         float64 `json:"total"`
}

// MemoryScore scores RAM and storage capacity and upgradability.
func MemoryScore(p *domain.Product) MemoryBreakdown {
	b := MemoryBreakdown{
		RAMSize:       ramSizeScore(p.RAM.Size),
		MaxRAM:        maxRAMScore(p.RAM.MaxSize),
		RAMType:       ramTypeScore(p.RAM.Type),
		StorageSize:   storageSizeScore(p.Storage.Size),
		Upgradability: upgradabilityScore(p.RAM),
		StorageSlots:  3,
	}
	if p.Storage.Slots >= 2 {
		b.StorageSlots = 8
	}

	sum := b.RAMSize + b.MaxRAM + b.RAMType + b.StorageSize + b.Upgradability + b.StorageSlots
	b.Total = math.Min(100, sum)
	return b
}

func ramSizeScore(gb int) float64 {
	switch {
	case gb >= 64:
		return 30
	case gb >= 32:
		return 25
	case gb >= 16:
		return 18
	case gb >= 8:
		return 10
	default:
		return 5
	}
}

func maxRAMScore(gb int) float64 {
	switch {
	case gb >= 128:
		return 15
	case gb >= 64:
		return 12
	case gb >= 32:
		return 8
	default:
		return 4
	}
}

func ramTypeScore(t domain.RAMType) float64 {
	switch t {
	case domain.RAMLPDDR5x:
		return 12
	case domain.RAMLPDDR5, domain.RAMDDR5:
		return 10
	case domain.RAMDDR4:
		return 6
	default:
		return 6
	}
}

func storageSizeScore(gb int) float64 {
	switch {
	case gb >= 2048:
		return 15
	case gb >= 1024:
		return 12
	case gb >= 512:
		return 8
	default:
		return 4
	}
}

func upgradabilityScore(r domain.RAM) float64 {
	switch {
	case !r.Soldered && r.Slots >= 2:
		return 15
	case !r.Soldered:
		return 10
	default:
		return 3
	}
}

// ConnectivityBreakdown splits the connectivity score into its parts.
type ConnectivityBreakdown struct {
	Thunderbolt  float64 `json:"thunderbolt"`
	USBC         float64 `json:"usb_c"`
	USBA         float64 `json:"usb_a"`
	HDMI         float64 `json:"hdmi"`
	RJ45         float64 `json:"rj45"`
	SDCard       float64 `json:"sd_card"`
	WiFi         float64 `json:"wifi"`
	Bluetooth    float64 `json:"bluetooth"`
	StorageSlots float64 `json:"storage_slots"`
	DisplayPort  float64 `json:"display_port"`
	Total        float64 `json:"total"`
}

var tb4CountPattern = regexp.MustCompile(`(?i)^(\d+)x\s.*thunderbolt 4`)

// ConnectivityScore scores ports and wireless.
func ConnectivityScore(p *domain.Product) ConnectivityBreakdown {
	b := ConnectivityBreakdown{
		Thunderbolt: math.Min(25, float64(thunderbolt4Count(p.Ports))*10),
		USBC:        math.Min(10, float64(countPorts(p.Ports, "usb-c"))*5),
		WiFi:        wifiScore(p.Wireless),
	}
	if hasPort(p.Ports, "usb-a") {
		b.USBA = 10
	}
	if hasPort(p.Ports, "hdmi") {
		b.HDMI = 8
	}
	if hasPort(p.Ports, "rj45") {
		b.RJ45 = 8
	}
	if hasPort(p.Ports, "sd") {
		b.SDCard = 7
	}
	if hasWireless(p.Wireless, "5.3") || hasWireless(p.Wireless, "5.4") {
		b.Bluetooth = 5
	}
	if p.Storage.Slots >= 2 {
		b.StorageSlots = 5
	}
	if hasPort(p.Ports, "displayport") {
		b.DisplayPort = 5
	}

	sum := b.Thunderbolt + b.USBC + b.USBA + b.HDMI + b.RJ45 + b.SDCard +
		b.WiFi + b.Bluetooth + b.StorageSlots + b.DisplayPort
	b.Total = math.Min(100, sum)
	return b
}

// thunderbolt4Count honors "2x Thunderbolt 4" style multipliers.
func thunderbolt4Count(ports []string) int {
	n := 0
	for _, port := range ports {
		if m := tb4CountPattern.FindStringSubmatch(port); m != nil {
			c, err := strconv.Atoi(m[1])
			if err == nil {
				n += c
				continue
			}
		}
		if strings.Contains(strings.ToLower(port), "thunderbolt 4") {
			n++
		}
	}
	return n
}

func wifiScore(wireless []string) float64 {
	switch {
	case hasWireless(wireless, "Wi-Fi 7"):
		return 15
	case hasWireless(wireless, "Wi-Fi 6E"):
		return 10
	default:
		return 5
	}
}

func hasPort(ports []string, needle string) bool {
	return countPorts(ports, needle) > 0
}

func countPorts(ports []string, needle string) int {
	n := 0
	for _, p := range ports {
		if strings.Contains(strings.ToLower(p), needle) {
			n++
		}
	}
	return n
}

func hasWireless(wireless []string, needle string) bool {
	for _, w := range wireless {
		if strings.Contains(w, needle) {
			return true
		}
	}
	return false
}

// PortabilityBreakdown holds the weighted weight and battery contributions.
type PortabilityBreakdown struct {
	Weight  float64 `json:"weight"`
	Battery float64 `json:"battery"`
	Total   float64 `json:"total"`
}

const (
	weightFloorKg     = 0.8
	weightPenaltyPerK = 50.0
	batteryCeilingWHr = 100.0
	weightShare       = 0.6
	batteryShare      = 0.4
)

// PortabilityScore favors light chassis first and battery capacity second.
func PortabilityScore(p *domain.Product) PortabilityBreakdown {
	weightScore := clamp(100-(p.Weight-weightFloorKg)*weightPenaltyPerK, 0, 100)
	batteryScore := clamp(p.Battery.WHr/batteryCeilingWHr*100, 0, 100)

	b := PortabilityBreakdown{
		Weight:  weightScore * weightShare,
		Battery: batteryScore * batteryShare,
	}
	b.Total = math.Round(b.Weight + b.Battery)
	return b
}
