package trigdet

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"unsafe"
)

// EventHeaderStruct is the fixed little-endian header preceding each event
// in a raw file. EventSize counts the whole event including the header.
type EventHeaderStruct struct {
	EventSize      uint32
	EventId        uint32
	EventRunNb     uint32
	EventNHits     uint32
	EventTimestamp uint64
}

// rawHitHeader precedes the sample words of one hit in the event payload.
// The NAdcSamples ADC words come first, then the NTdcSamples TDC words.
type rawHitHeader struct {
	Crate       uint16
	Slot        uint16
	Ch          uint16
	NAdcSamples uint16
	NTdcSamples uint16
	Pedestal    uint16
}

// EventRecord is one decoded event ready for the output file.
type EventRecord struct {
	EventID   uint32
	RunNumber uint32
	Timestamp uint64
	Values    []VarValue
}

// ReadEventFromFile reads the next event header and payload from a raw file.
func ReadEventFromFile(file *os.File) (EventHeaderStruct, []byte, error) {
	var header EventHeaderStruct
	headerSize := unsafe.Sizeof(header)
	headerBinary := make([]byte, headerSize)
	if _, err := io.ReadFull(file, headerBinary); err != nil {
		return header, nil, err
	}

	headerReader := bytes.NewReader(headerBinary)
	if err := binary.Read(headerReader, binary.LittleEndian, &header); err != nil {
		return header, nil, err
	}

	if uint32(header.EventSize) < uint32(headerSize) {
		return header, nil, fmt.Errorf("event %d: event size %d smaller than header", header.EventId, header.EventSize)
	}
	payloadSize := uint32(header.EventSize) - uint32(headerSize)
	eventData := make([]byte, payloadSize)
	if _, err := io.ReadFull(file, eventData); err != nil {
		return header, nil, fmt.Errorf("event %d: error reading payload: %w", header.EventId, err)
	}
	return header, eventData, nil
}

// ReadEvent decodes one event payload into the hit list, mapping each
// acquisition address to its plane and bar through the detector map. Hits
// come out in the order they appear in the payload.
func ReadEvent(data []byte, header EventHeaderStruct, detMap DetectorMap) ([]RawHit, error) {
	reader := bytes.NewReader(data)
	hits := make([]RawHit, 0, header.EventNHits)

	for i := 0; i < int(header.EventNHits); i++ {
		var hitHeader rawHitHeader
		if err := binary.Read(reader, binary.LittleEndian, &hitHeader); err != nil {
			return nil, fmt.Errorf("event %d: error reading hit %d: %w", header.EventId, i, err)
		}

		addr := DetAddress{Crate: hitHeader.Crate, Slot: hitHeader.Slot, Ch: hitHeader.Ch}
		channel, ok := detMap[addr]
		if !ok {
			return nil, &ErrUnmappedChannel{Crate: addr.Crate, Slot: addr.Slot, Ch: addr.Ch}
		}

		hit := NewTrigRawHit(channel.Plane, channel.Bar)
		hit.SetPedestal(float64(hitHeader.Pedestal))

		nSamples := int(hitHeader.NAdcSamples) + int(hitHeader.NTdcSamples)
		samples := make([]uint16, nSamples)
		if err := binary.Read(reader, binary.LittleEndian, &samples); err != nil {
			return nil, fmt.Errorf("event %d: error reading samples of hit %d: %w", header.EventId, i, err)
		}
		for s := 0; s < int(hitHeader.NAdcSamples); s++ {
			hit.AddSample(SignalAdc, float64(samples[s]))
		}
		for s := int(hitHeader.NAdcSamples); s < nSamples; s++ {
			hit.AddSample(SignalTdc, float64(samples[s]))
		}

		hits = append(hits, hit)
	}
	return hits, nil
}
