package domain

// Selection picks build-to-order options by index. A nil index keeps the
// base configuration.
type Selection struct {
	Processor *int `json:"processor,omitempty"`
	Display   *int `json:"display,omitempty"`
	GPU       *int `json:"gpu,omitempty"`
	RAM       *int `json:"ram,omitempty"`
	Storage   *int `json:"storage,omitempty"`
}

// Resolve returns a copy of p with the selected options substituted.
// Out-of-range indexes fall back to the base configuration. Option lists
// are kept so the result can still be validated.
func Resolve(p *Product, sel Selection) Product {
	out := *p
	out.Processor = pick(p.Processor, p.ProcessorOptions, sel.Processor)
	out.Display = pick(p.Display, p.DisplayOptions, sel.Display)
	out.GPU = pick(p.GPU, p.GPUOptions, sel.GPU)
	out.RAM = pick(p.RAM, p.RAMOptions, sel.RAM)
	out.Storage = pick(p.Storage, p.StorageOptions, sel.Storage)
	return out
}

func pick[T any](base T, options []T, idx *int) T {
	if idx == nil || *idx < 0 || *idx >= len(options) {
		return base
	}
	return options[*idx]
}
