package trigdet

// RawHit is one digitized hit produced by the raw event reader. Plane
// selects the channel kind, Counter is the 1-based bar number within the
// plane, and the remaining accessors retrieve the digitized samples for one
// sub-signal.
type RawHit interface {
	Plane() int
	Counter() int
	Data(signal int, sample int) float64
	Pedestal(signal int) float64
	Multiplicity(signal int) int
}

// TrigRawHit carries the digitized samples of one acquisition channel for
// one event. ADC samples are recorded under signal 0 and TDC samples under
// signal 1; the multiplicity of a signal is the number of samples recorded
// for it.
type TrigRawHit struct {
	plane    int
	counter  int
	samples  [2][]float64
	pedestal float64
}

func NewTrigRawHit(plane int, counter int) *TrigRawHit {
	return &TrigRawHit{plane: plane, counter: counter}
}

func (h *TrigRawHit) AddSample(signal int, value float64) {
	if signal < 0 || signal >= len(h.samples) {
		return
	}
	h.samples[signal] = append(h.samples[signal], value)
}

func (h *TrigRawHit) SetPedestal(ped float64) {
	h.pedestal = ped
}

func (h *TrigRawHit) Plane() int {
	return h.plane
}

func (h *TrigRawHit) Counter() int {
	return h.counter
}

func (h *TrigRawHit) Data(signal int, sample int) float64 {
	if signal < 0 || signal >= len(h.samples) {
		return 0.0
	}
	if sample < 0 || sample >= len(h.samples[signal]) {
		return 0.0
	}
	return h.samples[signal][sample]
}

// Pedestal reports the baseline offset recorded with the ADC sub-signal.
// TDC channels carry no pedestal.
func (h *TrigRawHit) Pedestal(signal int) float64 {
	if signal != SignalAdc {
		return 0.0
	}
	return h.pedestal
}

func (h *TrigRawHit) Multiplicity(signal int) int {
	if signal < 0 || signal >= len(h.samples) {
		return 0
	}
	return len(h.samples[signal])
}
