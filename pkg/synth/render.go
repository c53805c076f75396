package synth

import (
	"io"
	"time"

	"github.com/Garik-/midiwav/pkg/midi"
	"go.uber.org/zap"
)

const (
	DefaultSampleRate = 44100
	DefaultBufferSize = 4096
)

type Config struct {
	SampleRate int
	// BufferSize is the number of samples handed to the WAV encoder at once.
	BufferSize int
}

func DefaultConfig() Config {
	return Config{
		SampleRate: DefaultSampleRate,
		BufferSize: DefaultBufferSize,
	}
}

func (c Config) SampleIntervalMillis() float64 {
	return 1000 / float64(c.SampleRate)
}

// Stats describes a rendered file.
type Stats struct {
	Samples     int
	Transitions int
	Bytes       int64
	Duration    time.Duration
}

type countingTransitions struct {
	TransitionIterator
	n int
}

func (c *countingTransitions) Next() bool {
	ok := c.TransitionIterator.Next()
	if ok {
		c.n++
	}
	return ok
}

// Render places events on tl, keeps a single voice and writes it to w as a
// square wave WAV file.
func Render(w io.WriteSeeker, tl *midi.Timeline, events midi.EventIterator, cfg Config) (Stats, error) {
	log := renderLog.Named("Render")

	notes := &countingTransitions{TransitionIterator: ExtractMonophonic(tl.Map(events))}
	osc := NewOscillator(notes, cfg.SampleIntervalMillis())
	out := NewWAVWriter(w, cfg)

	for osc.Next() {
		if err := out.WriteAmplitude(osc.Sample()); err != nil {
			return Stats{}, err
		}
	}
	if err := osc.Err(); err != nil {
		return Stats{}, err
	}
	if err := out.Close(); err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Samples:     out.Samples(),
		Transitions: notes.n,
		Bytes:       out.DataSize(),
		Duration:    time.Duration(out.Samples()) * time.Second / time.Duration(cfg.SampleRate),
	}
	log.Debug("rendered",
		zap.Int("samples", stats.Samples),
		zap.Int("transitions", stats.Transitions),
		zap.Duration("duration", stats.Duration))

	return stats, nil
}
