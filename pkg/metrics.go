package trigdet

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts decode activity. A nil *Metrics disables collection, so
// the detector can run without a registry.
type Metrics struct {
	eventsDecoded  prometheus.Counter
	hitsDispatched *prometheus.CounterVec
	decodeFailures prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		eventsDecoded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "trigdet",
			Name:      "events_decoded_total",
			Help:      "Events decoded successfully.",
		}),
		hitsDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trigdet",
			Name:      "hits_dispatched_total",
			Help:      "Raw hits routed into channel slots.",
		}, []string{"kind"}),
		decodeFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "trigdet",
			Name:      "decode_failures_total",
			Help:      "Decode calls aborted by an error.",
		}),
	}
}

func (m *Metrics) EventDecoded() {
	if m == nil {
		return
	}
	m.eventsDecoded.Inc()
}

func (m *Metrics) HitDispatched(kind ChannelKind) {
	if m == nil {
		return
	}
	m.hitsDispatched.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) DecodeFailed() {
	if m == nil {
		return
	}
	m.decodeFailures.Inc()
}
