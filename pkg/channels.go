package trigdet

// Plane identifiers assigned to raw hits in the detector map. ADC channels
// must be assigned plane 1 and TDC channels plane 2.
const (
	PlaneAdc = 1
	PlaneTdc = 2
)

// Sub-signal indices within a raw hit. ADC data lives in signal 0 and TDC
// data in signal 1.
const (
	SignalAdc = 0
	SignalTdc = 1
)

// Maximum number of channels held per kind. The configured counts can be
// anything up to these; the limits just seemed like a reasonable value.
const (
	MaxAdcChannels = 100
	MaxTdcChannels = 100
)

type ChannelKind int

const (
	Adc ChannelKind = iota
	Tdc
)

func (k ChannelKind) String() string {
	switch k {
	case Adc:
		return "ADC"
	case Tdc:
		return "TDC"
	default:
		return "Unknown"
	}
}

// ChannelConfig holds the channel counts and names declared in the
// parameter source. It is loaded once per run and not modified afterwards.
type ChannelConfig struct {
	NumAdc   int
	NumTdc   int
	AdcNames []string
	TdcNames []string
}

func (k ChannelKind) capacity() int {
	if k == Adc {
		return MaxAdcChannels
	}
	return MaxTdcChannels
}

// Validate checks the invariants between counts and names: each count must
// fit the fixed capacity, the name list must match the declared count and
// names must be unique within a kind.
func (c ChannelConfig) Validate() error {
	if c.NumAdc < 0 || c.NumAdc > MaxAdcChannels {
		return &ErrBadChannelCount{Kind: Adc, Count: c.NumAdc, Capacity: MaxAdcChannels}
	}
	if c.NumTdc < 0 || c.NumTdc > MaxTdcChannels {
		return &ErrBadChannelCount{Kind: Tdc, Count: c.NumTdc, Capacity: MaxTdcChannels}
	}
	if len(c.AdcNames) != c.NumAdc {
		return &ErrNameCountMismatch{Kind: Adc, Count: c.NumAdc, Names: len(c.AdcNames)}
	}
	if len(c.TdcNames) != c.NumTdc {
		return &ErrNameCountMismatch{Kind: Tdc, Count: c.NumTdc, Names: len(c.TdcNames)}
	}
	if name, ok := firstDuplicate(c.AdcNames); ok {
		return &ErrDuplicateName{Kind: Adc, Name: name}
	}
	if name, ok := firstDuplicate(c.TdcNames); ok {
		return &ErrDuplicateName{Kind: Tdc, Name: name}
	}
	return nil
}

func firstDuplicate(names []string) (string, bool) {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return name, true
		}
		seen[name] = true
	}
	return "", false
}
