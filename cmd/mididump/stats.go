package main

import (
	"github.com/Garik-/midiwav/pkg/midi"
)

// beat in bar -> hits
type positionMap map[int]int

// note -> positionMap
type noteMap map[uint8]positionMap

// newNoteMap counts the note ons of events per beat in the bar. Without a
// ticks-per-beat division every note lands on the first beat.
func newNoteMap(events []midi.Event, h *midi.Header) noteMap {
	var tpq uint16
	if h.DivisionType == midi.TicksPerBeat {
		tpq = h.Division
	}

	m := make(noteMap)
	var tick uint64
	for _, e := range events {
		tick += uint64(e.Delta)
		if !e.IsNoteOn() {
			continue
		}

		_, beat := midi.QuarterPosition(tick, tpq)
		note := e.Param1()
		if _, ok := m[note]; !ok {
			m[note] = make(positionMap)
		}
		m[note][beat]++
	}

	return m
}
