package synth

import (
	"errors"

	"github.com/Garik-/midiwav/pkg/midi"
)

// ErrMissingEndOfTrack reports an event stream that ended without an End Of Track meta event.
var ErrMissingEndOfTrack = errors.New("end of track expected")

// TimedIterator is a stream of events on the real-time axis, such as *midi.TimeMapper.
type TimedIterator interface {
	Next() bool
	Timed() midi.TimedEvent
	Err() error
}

// Transition is the point in time where the output switches to Note, or to
// silence when Silent is set.
type Transition struct {
	Millis float64
	Note   uint8
	Silent bool
}

type TransitionIterator interface {
	Next() bool
	Transition() Transition
	Err() error
}

// NoteExtractor reduces a timed event stream to a single voice: a new note
// replaces the one playing, and a note off only silences the note playing.
type NoteExtractor struct {
	src     TimedIterator
	playing int

	cur  Transition
	err  error
	done bool
}

func ExtractMonophonic(src TimedIterator) *NoteExtractor {
	return &NoteExtractor{src: src, playing: -1}
}

func (x *NoteExtractor) Next() bool {
	if x.done {
		return false
	}

	for x.src.Next() {
		te := x.src.Timed()
		e := te.Event

		switch {
		case e.IsNoteOff():
			if int(e.Param1()) != x.playing {
				continue
			}
			x.playing = -1
			x.cur = Transition{Millis: te.Millis, Silent: true}
			return true

		case e.IsNoteOn():
			x.playing = int(e.Param1())
			x.cur = Transition{Millis: te.Millis, Note: e.Param1()}
			return true

		case e.EndOfTrack():
			x.done = true
			x.cur = Transition{Millis: te.Millis, Silent: true}
			return true
		}
	}

	x.done = true
	x.err = x.src.Err()
	if x.err == nil {
		x.err = ErrMissingEndOfTrack
	}
	return false
}

func (x *NoteExtractor) Transition() Transition {
	return x.cur
}

func (x *NoteExtractor) Err() error {
	return x.err
}
