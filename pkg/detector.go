package trigdet

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/v2"
)

// TrigDet gathers the trigger-related channels coming from one apparatus,
// like HMS. It holds up to MaxAdcChannels ADC and MaxTdcChannels TDC
// channels; the counts actually in use come from the parameter source at
// Init time.
//
// For ADC channels it publishes <name>_adc, <name>_adcPed and <name>_adcMult;
// for TDC channels <name>_tdc and <name>_tdcMult. The parameter source must
// define, under the prefix <apparatus>_<name> lowercased:
//
//	<prefix>_numAdc   number of ADC channels
//	<prefix>_numTdc   number of TDC channels
//	<prefix>_adcNames "varName1 varName2 ... varNameNumAdc"
//	<prefix>_tdcNames "varName1 varName2 ... varNameNumTdc"
type TrigDet struct {
	name      string
	apparatus string
	kwPrefix  string
	verbosity int
	metrics   *Metrics

	cfg   ChannelConfig
	state *ChannelState
	vars  *VarRegistry
}

type Option func(*TrigDet)

func WithVerbosity(level int) Option {
	return func(d *TrigDet) { d.verbosity = level }
}

func WithMetrics(m *Metrics) Option {
	return func(d *TrigDet) { d.metrics = m }
}

// NewTrigDet creates a detector named after the spectrometer whose trigger
// data it collects, e.g. NewTrigDet("trig", "HMS").
func NewTrigDet(name string, apparatus string, opts ...Option) *TrigDet {
	d := &TrigDet{
		name:      name,
		apparatus: apparatus,
		kwPrefix:  strings.ToLower(apparatus + "_" + name),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// KwPrefix is the key prefix used in the parameter source.
func (d *TrigDet) KwPrefix() string {
	return d.kwPrefix
}

// EngineID is the detector-map key: the apparatus initial plus the detector
// name, uppercased. "HTRIG" for the HMS trigger detector.
func (d *TrigDet) EngineID() string {
	id := d.name
	if len(d.apparatus) > 0 {
		id = d.apparatus[:1] + d.name
	}
	return strings.ToUpper(id)
}

// Init loads the channel configuration, writes the startup sentinel into
// every value slot and publishes the output variables. A failure here must
// stop startup of the owning detector; there is no retry.
func (d *TrigDet) Init(params *koanf.Koanf) error {
	cfg, err := LoadChannelConfig(params, d.kwPrefix)
	if err != nil {
		return fmt.Errorf("detector %s: %w", d.kwPrefix, err)
	}
	d.cfg = cfg

	d.state = NewChannelState(cfg)
	d.state.InitValues()

	vars, err := DefineVariables(cfg, d.state)
	if err != nil {
		return fmt.Errorf("detector %s: %w", d.kwPrefix, err)
	}
	d.vars = vars

	if d.verbosity > 0 {
		message := fmt.Sprintf("Detector %s initialized with %d ADC and %d TDC channels",
			d.kwPrefix, cfg.NumAdc, cfg.NumTdc)
		logger.Info(message, "detector")
	}
	return nil
}

// Clear resets the in-use channel slots before the next event.
func (d *TrigDet) Clear() {
	d.state.Clear()
}

// Decode routes one event's hits into the channel slots. Hits are processed
// strictly in input order and a later hit for the same channel overwrites
// the earlier one. Any hit with an unknown plane or an out-of-range channel
// aborts the call immediately; no subsequent hit is written. The status is
// 0 on success, kept for parity with the historical decode convention.
func (d *TrigDet) Decode(hits []RawHit) (int, error) {
	for _, hit := range hits {
		idx := hit.Counter() - 1

		switch hit.Plane() {
		case PlaneAdc:
			if idx < 0 || idx >= d.cfg.NumAdc {
				d.metrics.DecodeFailed()
				return 0, &ErrChannelRange{Kind: Adc, Index: idx, Limit: d.cfg.NumAdc}
			}
			err := d.state.WriteAdc(idx,
				hit.Data(SignalAdc, 0),
				hit.Pedestal(SignalAdc),
				hit.Multiplicity(SignalAdc))
			if err != nil {
				d.metrics.DecodeFailed()
				return 0, err
			}
			d.metrics.HitDispatched(Adc)

		case PlaneTdc:
			if idx < 0 || idx >= d.cfg.NumTdc {
				d.metrics.DecodeFailed()
				return 0, &ErrChannelRange{Kind: Tdc, Index: idx, Limit: d.cfg.NumTdc}
			}
			err := d.state.WriteTdc(idx,
				hit.Data(SignalTdc, 0),
				hit.Multiplicity(SignalTdc))
			if err != nil {
				d.metrics.DecodeFailed()
				return 0, err
			}
			d.metrics.HitDispatched(Tdc)

		default:
			d.metrics.DecodeFailed()
			return 0, &ErrUnknownPlane{Plane: hit.Plane()}
		}

		if d.verbosity > 2 {
			message := fmt.Sprintf("Dispatched hit plane %d bar %d", hit.Plane(), hit.Counter())
			logger.Info(message, "detector")
		}
	}

	d.metrics.EventDecoded()
	return 0, nil
}

// Config returns the loaded channel configuration.
func (d *TrigDet) Config() ChannelConfig {
	return d.cfg
}

// Variables returns the export registry built at Init time.
func (d *TrigDet) Variables() *VarRegistry {
	return d.vars
}
