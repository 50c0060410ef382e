package trigdet

// ChannelState is the fixed-capacity storage for one event's decoded
// channel readings, one slot set per channel. The arrays always span the
// full capacity; only the first NumAdc/NumTdc slots are in use.
type ChannelState struct {
	numAdc int
	numTdc int

	adcVal          [MaxAdcChannels]float64
	adcPedestal     [MaxAdcChannels]float64
	adcMultiplicity [MaxAdcChannels]int

	tdcVal          [MaxTdcChannels]float64
	tdcMultiplicity [MaxTdcChannels]int
}

func NewChannelState(cfg ChannelConfig) *ChannelState {
	return &ChannelState{numAdc: cfg.NumAdc, numTdc: cfg.NumTdc}
}

// InitValues sets every value slot across the full capacity to the startup
// sentinel. Run once at detector initialization, not per event.
func (s *ChannelState) InitValues() {
	for i := 0; i < MaxAdcChannels; i++ {
		s.adcVal[i] = -1.0
	}
	for i := 0; i < MaxTdcChannels; i++ {
		s.tdcVal[i] = -1.0
	}
}

// Clear resets the in-use slot range before the next event. Slots at or
// beyond the configured counts are never read once the counts are fixed, so
// they keep whatever initialization put there.
func (s *ChannelState) Clear() {
	for i := 0; i < s.numAdc; i++ {
		s.adcVal[i] = 0.0
		s.adcPedestal[i] = 0.0
		s.adcMultiplicity[i] = 0
	}
	for i := 0; i < s.numTdc; i++ {
		s.tdcVal[i] = 0.0
		s.tdcMultiplicity[i] = 0
	}
}

func (s *ChannelState) WriteAdc(idx int, val float64, ped float64, mult int) error {
	if idx < 0 || idx >= MaxAdcChannels {
		return &ErrChannelRange{Kind: Adc, Index: idx, Limit: MaxAdcChannels}
	}
	s.adcVal[idx] = val
	s.adcPedestal[idx] = ped
	s.adcMultiplicity[idx] = mult
	return nil
}

func (s *ChannelState) WriteTdc(idx int, val float64, mult int) error {
	if idx < 0 || idx >= MaxTdcChannels {
		return &ErrChannelRange{Kind: Tdc, Index: idx, Limit: MaxTdcChannels}
	}
	s.tdcVal[idx] = val
	s.tdcMultiplicity[idx] = mult
	return nil
}
