package trigdet

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefineVariablesNames(t *testing.T) {
	cfg := ChannelConfig{
		NumAdc:   2,
		NumTdc:   1,
		AdcNames: []string{"x", "y"},
		TdcNames: []string{"z"},
	}
	state := NewChannelState(cfg)

	vars, err := DefineVariables(cfg, state)
	require.NoError(t, err)

	names := vars.Names()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Equal(t, []string{
		"x_adc", "x_adcMult", "x_adcPed",
		"y_adc", "y_adcMult", "y_adcPed",
		"z_tdc", "z_tdcMult",
	}, names)
}

func TestDefineVariablesDuplicate(t *testing.T) {
	cfg := ChannelConfig{
		NumAdc:   2,
		AdcNames: []string{"x", "x"},
	}
	state := NewChannelState(cfg)

	_, err := DefineVariables(cfg, state)
	var dup *ErrDuplicateVariable
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "x_adc", dup.Name)
}

func TestGetUnknownVariable(t *testing.T) {
	cfg := ChannelConfig{NumAdc: 1, AdcNames: []string{"x"}}
	state := NewChannelState(cfg)
	vars, err := DefineVariables(cfg, state)
	require.NoError(t, err)

	_, ok := vars.Get("nope")
	assert.False(t, ok)
}

func TestVariablesTrackState(t *testing.T) {
	cfg := ChannelConfig{
		NumAdc:   1,
		NumTdc:   1,
		AdcNames: []string{"x"},
		TdcNames: []string{"z"},
	}
	state := NewChannelState(cfg)
	vars, err := DefineVariables(cfg, state)
	require.NoError(t, err)

	require.NoError(t, state.WriteAdc(0, 3.0, 0.5, 2))
	require.NoError(t, state.WriteTdc(0, 7.0, 4))

	val, _ := vars.Get("x_adc")
	assert.Equal(t, 3.0, val)
	val, _ = vars.Get("x_adcPed")
	assert.Equal(t, 0.5, val)
	val, _ = vars.Get("x_adcMult")
	assert.Equal(t, 2.0, val)
	val, _ = vars.Get("z_tdc")
	assert.Equal(t, 7.0, val)
	val, _ = vars.Get("z_tdcMult")
	assert.Equal(t, 4.0, val)

	// Bindings are live, not copies.
	state.Clear()
	val, _ = vars.Get("x_adc")
	assert.Equal(t, 0.0, val)
}

func TestSnapshotFollowsNameOrder(t *testing.T) {
	cfg := ChannelConfig{
		NumAdc:   1,
		AdcNames: []string{"x"},
	}
	state := NewChannelState(cfg)
	vars, err := DefineVariables(cfg, state)
	require.NoError(t, err)
	require.NoError(t, state.WriteAdc(0, 5.0, 1.0, 3))

	snap := vars.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, VarValue{Name: "x_adc", Value: 5.0}, snap[0])
	assert.Equal(t, VarValue{Name: "x_adcMult", Value: 3.0}, snap[1])
	assert.Equal(t, VarValue{Name: "x_adcPed", Value: 1.0}, snap[2])
}
