package main

import (
	"bytes"
	"testing"

	"github.com/Garik-/midiwav/pkg/midi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func decodeTrack(t *testing.T, data []byte) []midi.Event {
	events, err := midi.ReadAll(midi.NewTrackReader(bytes.NewReader(data),
		midi.Chunk{Tag: midi.TrackTag, Length: uint32(len(data))}, 0))
	require.NoError(t, err)
	return events
}

var track = []byte{
	0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20,
	0x00, 0xFF, 0x04, 0x04, 'L', 'e', 'a', 0xE9,
	0x00, 0x90, 0x3C, 0x64,
	0x60, 0x80, 0x3C, 0x00,
	0x00, 0x90, 0x3E, 0x64,
	0x81, 0x40, 0x3E, 0x00,
	0x00, 0x90, 0x3C, 0x64,
	0x00, 0xFF, 0x2F, 0x00,
}

func TestTextEncoding(t *testing.T) {
	enc, err := textEncoding("MacRoman")
	require.NoError(t, err)
	assert.Equal(t, charmap.Macintosh, enc)

	_, err = textEncoding("ebcdic")
	assert.Error(t, err)
}

func TestNewNoteMap(t *testing.T) {
	h := &midi.Header{Division: 96, DivisionType: midi.TicksPerBeat}
	m := newNoteMap(decodeTrack(t, track), h)

	assert.Equal(t, noteMap{
		60: positionMap{0: 1, 3: 1},
		62: positionMap{1: 1},
	}, m)
}

func TestNewNoteMapSMPTE(t *testing.T) {
	h := &midi.Header{Division: 0x2828, DivisionType: midi.FramesPerSecond}
	m := newNoteMap(decodeTrack(t, track), h)
	assert.Equal(t, noteMap{
		60: positionMap{0: 2},
		62: positionMap{0: 1},
	}, m)
}

func TestPrinterTrack(t *testing.T) {
	events := decodeTrack(t, track)
	h := midi.Header{Division: 96, DivisionType: midi.TicksPerBeat}
	tl, err := midi.NewTimeline(h, []midi.TempoChange{{MicrosecondsPerQuarterNote: midi.DefaultTempo}})
	require.NoError(t, err)

	var buf bytes.Buffer
	newPrinter(&buf, charmap.ISO8859_1).track(1, events, tl)
	out := buf.String()

	assert.Contains(t, out, "TRACK 1")
	assert.Contains(t, out, "Set Tempo (mpqn=500000 bpm=120)")
	assert.Contains(t, out, "Instrument Name: Leaé")
	assert.Contains(t, out, "Note On")
	assert.Contains(t, out, "Note Off")
	assert.Contains(t, out, "End Of Track (0 bytes)")
	assert.Contains(t, out, "duration 1 second 500 milliseconds")
}

func TestPrinterStats(t *testing.T) {
	var buf bytes.Buffer
	newPrinter(&buf, charmap.ISO8859_1).stats(0, noteMap{64: positionMap{3: 7}})
	assert.Contains(t, buf.String(), "Beat 4")
	assert.Contains(t, buf.String(), "7")
}
