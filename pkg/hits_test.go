package trigdet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrigRawHitSamples(t *testing.T) {
	hit := NewTrigRawHit(PlaneAdc, 3)
	hit.SetPedestal(12.5)
	hit.AddSample(SignalAdc, 100.0)
	hit.AddSample(SignalAdc, 101.0)
	hit.AddSample(SignalTdc, 200.0)

	assert.Equal(t, PlaneAdc, hit.Plane())
	assert.Equal(t, 3, hit.Counter())
	assert.Equal(t, 100.0, hit.Data(SignalAdc, 0))
	assert.Equal(t, 101.0, hit.Data(SignalAdc, 1))
	assert.Equal(t, 200.0, hit.Data(SignalTdc, 0))
	assert.Equal(t, 2, hit.Multiplicity(SignalAdc))
	assert.Equal(t, 1, hit.Multiplicity(SignalTdc))
	assert.Equal(t, 12.5, hit.Pedestal(SignalAdc))
}

func TestTrigRawHitOutOfRange(t *testing.T) {
	hit := NewTrigRawHit(PlaneTdc, 1)
	hit.AddSample(SignalTdc, 7.0)

	assert.Equal(t, 0.0, hit.Data(SignalTdc, 1))
	assert.Equal(t, 0.0, hit.Data(-1, 0))
	assert.Equal(t, 0.0, hit.Data(5, 0))
	assert.Equal(t, 0, hit.Multiplicity(5))
	assert.Equal(t, 0.0, hit.Pedestal(SignalTdc))

	// Samples for an invalid signal are dropped.
	hit.AddSample(5, 1.0)
	assert.Equal(t, 0, hit.Multiplicity(5))
}
