package trigdet

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.EventDecoded()
	m.HitDispatched(Adc)
	m.DecodeFailed()
}

func TestMetricsCount(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	m.EventDecoded()
	m.EventDecoded()
	m.HitDispatched(Adc)
	m.HitDispatched(Tdc)
	m.DecodeFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.eventsDecoded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.hitsDispatched.WithLabelValues("ADC")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.hitsDispatched.WithLabelValues("TDC")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decodeFailures))
}
