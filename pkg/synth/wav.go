package synth

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth    = 16
	numChannels = 1
	pcmFormat   = 1
)

// WAVWriter writes square wave amplitudes as 16-bit mono PCM. The RIFF and
// data chunk sizes are filled in by Close.
type WAVWriter struct {
	enc     *wav.Encoder
	buf     *audio.IntBuffer
	samples int
}

func NewWAVWriter(w io.WriteSeeker, cfg Config) *WAVWriter {
	return &WAVWriter{
		enc: wav.NewEncoder(w, cfg.SampleRate, bitDepth, numChannels, pcmFormat),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: numChannels, SampleRate: cfg.SampleRate},
			Data:           make([]int, 0, cfg.BufferSize),
			SourceBitDepth: bitDepth,
		},
	}
}

// WriteAmplitude appends one sample: 0 is silence, 1 and -1 are full scale.
func (w *WAVWriter) WriteAmplitude(amp int8) error {
	var v int
	switch amp {
	case 0:
	case 1:
		v = 0x7FFF
	case -1:
		v = -0x8000
	default:
		return fmt.Errorf("amplitude %d out of range", amp)
	}

	w.buf.Data = append(w.buf.Data, v)
	w.samples++
	if len(w.buf.Data) == cap(w.buf.Data) {
		return w.flush()
	}
	return nil
}

func (w *WAVWriter) flush() error {
	err := w.enc.Write(w.buf)
	w.buf.Data = w.buf.Data[:0]
	return err
}

// Close flushes buffered samples and finalizes the header. It does not close
// the underlying writer.
func (w *WAVWriter) Close() error {
	// an empty buffer still makes the encoder write its header
	if len(w.buf.Data) > 0 || w.samples == 0 {
		if err := w.flush(); err != nil {
			return err
		}
	}
	return w.enc.Close()
}

func (w *WAVWriter) Samples() int {
	return w.samples
}

// DataSize is the size in bytes of the PCM data chunk.
func (w *WAVWriter) DataSize() int64 {
	return int64(w.samples) * bitDepth / 8 * numChannels
}
