package trigdet

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testHit struct {
	header  rawHitHeader
	samples []uint16
}

func buildEvent(t *testing.T, eventID uint32, runNumber uint32, hits []testHit) (EventHeaderStruct, []byte) {
	t.Helper()

	var payload bytes.Buffer
	for _, hit := range hits {
		require.NoError(t, binary.Write(&payload, binary.LittleEndian, hit.header))
		require.NoError(t, binary.Write(&payload, binary.LittleEndian, hit.samples))
	}

	headerSize := uint32(unsafe.Sizeof(EventHeaderStruct{}))
	header := EventHeaderStruct{
		EventSize:      headerSize + uint32(payload.Len()),
		EventId:        eventID,
		EventRunNb:     runNumber,
		EventNHits:     uint32(len(hits)),
		EventTimestamp: 1234567890,
	}
	return header, payload.Bytes()
}

func testDetMap() DetectorMap {
	return DetectorMap{
		{Crate: 1, Slot: 2, Ch: 3}: {Plane: PlaneAdc, Bar: 1},
		{Crate: 1, Slot: 2, Ch: 4}: {Plane: PlaneTdc, Bar: 1},
	}
}

func TestReadEvent(t *testing.T) {
	header, payload := buildEvent(t, 7, 1000, []testHit{
		{
			header:  rawHitHeader{Crate: 1, Slot: 2, Ch: 3, NAdcSamples: 2, NTdcSamples: 0, Pedestal: 50},
			samples: []uint16{100, 101},
		},
		{
			header:  rawHitHeader{Crate: 1, Slot: 2, Ch: 4, NAdcSamples: 0, NTdcSamples: 1},
			samples: []uint16{200},
		},
	})

	hits, err := ReadEvent(payload, header, testDetMap())
	require.NoError(t, err)
	require.Len(t, hits, 2)

	adc := hits[0]
	assert.Equal(t, PlaneAdc, adc.Plane())
	assert.Equal(t, 1, adc.Counter())
	assert.Equal(t, 100.0, adc.Data(SignalAdc, 0))
	assert.Equal(t, 101.0, adc.Data(SignalAdc, 1))
	assert.Equal(t, 2, adc.Multiplicity(SignalAdc))
	assert.Equal(t, 50.0, adc.Pedestal(SignalAdc))

	tdc := hits[1]
	assert.Equal(t, PlaneTdc, tdc.Plane())
	assert.Equal(t, 1, tdc.Counter())
	assert.Equal(t, 200.0, tdc.Data(SignalTdc, 0))
	assert.Equal(t, 1, tdc.Multiplicity(SignalTdc))
}

func TestReadEventMixedSamples(t *testing.T) {
	header, payload := buildEvent(t, 8, 1000, []testHit{
		{
			header:  rawHitHeader{Crate: 1, Slot: 2, Ch: 3, NAdcSamples: 1, NTdcSamples: 2, Pedestal: 10},
			samples: []uint16{100, 200, 201},
		},
	})

	hits, err := ReadEvent(payload, header, testDetMap())
	require.NoError(t, err)
	require.Len(t, hits, 1)

	hit := hits[0]
	assert.Equal(t, 100.0, hit.Data(SignalAdc, 0))
	assert.Equal(t, 200.0, hit.Data(SignalTdc, 0))
	assert.Equal(t, 201.0, hit.Data(SignalTdc, 1))
	assert.Equal(t, 1, hit.Multiplicity(SignalAdc))
	assert.Equal(t, 2, hit.Multiplicity(SignalTdc))
}

func TestReadEventUnmappedChannel(t *testing.T) {
	header, payload := buildEvent(t, 9, 1000, []testHit{
		{
			header:  rawHitHeader{Crate: 9, Slot: 9, Ch: 9, NAdcSamples: 1},
			samples: []uint16{100},
		},
	})

	_, err := ReadEvent(payload, header, testDetMap())
	var unmapped *ErrUnmappedChannel
	require.True(t, errors.As(err, &unmapped))
	assert.Equal(t, uint16(9), unmapped.Crate)
}

func TestReadEventTruncatedPayload(t *testing.T) {
	header, payload := buildEvent(t, 10, 1000, []testHit{
		{
			header:  rawHitHeader{Crate: 1, Slot: 2, Ch: 3, NAdcSamples: 2},
			samples: []uint16{100, 101},
		},
	})

	_, err := ReadEvent(payload[:len(payload)-2], header, testDetMap())
	require.Error(t, err)
}

func TestReadEventFromFile(t *testing.T) {
	header, payload := buildEvent(t, 11, 2000, []testHit{
		{
			header:  rawHitHeader{Crate: 1, Slot: 2, Ch: 3, NAdcSamples: 1, Pedestal: 5},
			samples: []uint16{42},
		},
	})

	path := filepath.Join(t.TempDir(), "run.dat")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, binary.Write(file, binary.LittleEndian, header))
	_, err = file.Write(payload)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	file, err = os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	gotHeader, gotPayload, err := ReadEventFromFile(file)
	require.NoError(t, err)
	assert.Equal(t, header, gotHeader)
	assert.Equal(t, payload, gotPayload)

	_, _, err = ReadEventFromFile(file)
	assert.True(t, errors.Is(err, io.EOF))
}

func TestReadEventFromFileBadSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.dat")
	header := EventHeaderStruct{EventSize: 4, EventId: 1}

	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, binary.Write(file, binary.LittleEndian, header))
	require.NoError(t, file.Close())

	file, err = os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	_, _, err = ReadEventFromFile(file)
	require.Error(t, err)
}
