package synth

import "math"

// NoteFrequency returns the frequency in Hz of a MIDI note number.
func NoteFrequency(note uint8) float64 {
	return 440 * math.Pow(2, (float64(note)-69)/12)
}

// Oscillator renders note transitions as a square wave with amplitudes -1, 0
// and 1, one sample per call to Next. It stops at the last transition.
type Oscillator struct {
	src      TransitionIterator
	interval float64

	n    int
	tosc float64
	half float64
	amp  int8
	next Transition

	started bool
	done    bool
	err     error
}

// NewOscillator samples src every sampleIntervalMillis milliseconds.
func NewOscillator(src TransitionIterator, sampleIntervalMillis float64) *Oscillator {
	return &Oscillator{src: src, interval: sampleIntervalMillis}
}

func (o *Oscillator) Next() bool {
	if o.done {
		return false
	}

	if !o.started {
		o.started = true
		if !o.src.Next() {
			return o.finish()
		}
		o.next = o.src.Transition()
	} else {
		o.n++
	}

	t := float64(o.n) * o.interval
	for t >= o.next.Millis {
		o.apply(o.next)
		if !o.src.Next() {
			return o.finish()
		}
		o.next = o.src.Transition()
	}

	o.tosc += o.interval
	if o.tosc >= o.half {
		o.amp = -o.amp
		o.tosc -= o.half
	}
	return true
}

func (o *Oscillator) apply(tr Transition) {
	if tr.Silent {
		o.amp = 0
		return
	}
	o.amp = 1
	o.half = 500 / NoteFrequency(tr.Note)
	o.tosc = 0
}

func (o *Oscillator) finish() bool {
	o.done = true
	o.err = o.src.Err()
	return false
}

// Sample returns the amplitude of the current sample.
func (o *Oscillator) Sample() int8 {
	return o.amp
}

func (o *Oscillator) Err() error {
	return o.err
}
