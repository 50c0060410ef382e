package trigdet

import (
	"sort"

	"golang.org/x/exp/maps"
)

// VarValue is one exported variable with its current reading.
type VarValue struct {
	Name  string
	Value float64
}

// VarRegistry binds exported variable names to live storage slots. It is
// built once after the channel configuration is loaded and reused for every
// event without further allocation; reads always observe the post-decode
// values of the current event.
type VarRegistry struct {
	vars  map[string]func() float64
	names []string
}

// DefineVariables publishes the per-channel outputs. For ADC channel i the
// names are <name_i>_adc, <name_i>_adcPed and <name_i>_adcMult; for TDC
// channel i they are <name_i>_tdc and <name_i>_tdcMult.
func DefineVariables(cfg ChannelConfig, state *ChannelState) (*VarRegistry, error) {
	r := &VarRegistry{vars: make(map[string]func() float64)}

	for i := 0; i < cfg.NumAdc; i++ {
		i := i
		name := cfg.AdcNames[i]
		if err := r.bind(name+"_adc", func() float64 { return state.adcVal[i] }); err != nil {
			return nil, err
		}
		if err := r.bind(name+"_adcPed", func() float64 { return state.adcPedestal[i] }); err != nil {
			return nil, err
		}
		if err := r.bind(name+"_adcMult", func() float64 { return float64(state.adcMultiplicity[i]) }); err != nil {
			return nil, err
		}
	}

	for i := 0; i < cfg.NumTdc; i++ {
		i := i
		name := cfg.TdcNames[i]
		if err := r.bind(name+"_tdc", func() float64 { return state.tdcVal[i] }); err != nil {
			return nil, err
		}
		if err := r.bind(name+"_tdcMult", func() float64 { return float64(state.tdcMultiplicity[i]) }); err != nil {
			return nil, err
		}
	}

	r.names = maps.Keys(r.vars)
	sort.Strings(r.names)
	return r, nil
}

func (r *VarRegistry) bind(name string, read func() float64) error {
	if _, ok := r.vars[name]; ok {
		return &ErrDuplicateVariable{Name: name}
	}
	r.vars[name] = read
	return nil
}

// Get returns the current value of a published variable.
func (r *VarRegistry) Get(name string) (float64, bool) {
	read, ok := r.vars[name]
	if !ok {
		return 0.0, false
	}
	return read(), true
}

// Names returns all published variable names in sorted order.
func (r *VarRegistry) Names() []string {
	return r.names
}

// Len reports the number of published variables.
func (r *VarRegistry) Len() int {
	return len(r.names)
}

// Snapshot reads every variable in name order.
func (r *VarRegistry) Snapshot() []VarValue {
	out := make([]VarValue, len(r.names))
	for i, name := range r.names {
		out[i] = VarValue{Name: name, Value: r.vars[name]()}
	}
	return out
}
