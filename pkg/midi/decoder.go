package midi

import (
	"bufio"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Decoder reads a Standard MIDI File. Decode must be called before any track
// is read.
type Decoder struct {
	r io.ReadSeeker

	Chunks *ChunkIndex
	Header *Header
}

func NewDecoder(r io.ReadSeeker) *Decoder {
	return &Decoder{r: r}
}

// Decode indexes the chunks and decodes the header. The number of MTrk chunks
// must match the header.
func (d *Decoder) Decode() error {
	log := decoderLog.Named("Decode")

	idx, err := IndexChunks(d.r)
	if err != nil {
		return err
	}

	h, err := DecodeHeader(d.r, idx)
	if err != nil {
		return err
	}

	if n := len(idx.Get(TrackTag)); n != int(h.NumTracks) {
		return fmt.Errorf("%w - header declares %d tracks, found %d %s chunks", ErrTrackCountMismatch, h.NumTracks, n, TrackTag)
	}

	log.Debug("header",
		zap.Uint16("format", h.Format),
		zap.Uint16("tracks", h.NumTracks),
		zap.Uint16("division", h.Division),
		zap.Stringer("divisionType", h.DivisionType))

	d.Chunks = idx
	d.Header = h

	_, err = d.r.Seek(0, io.SeekStart)
	return err
}

// Track returns a reader over the events of track n. When the source is an
// io.ReaderAt every reader gets its own cursor; otherwise only one track
// reader may be in use at a time.
func (d *Decoder) Track(n int) (*TrackReader, error) {
	if d.Header == nil {
		if err := d.Decode(); err != nil {
			return nil, err
		}
	}

	tracks := d.Chunks.Get(TrackTag)
	if n < 0 || n >= len(tracks) {
		return nil, fmt.Errorf("%w - track %d of %d", ErrTrackOutOfRange, n, len(tracks))
	}
	c := tracks[n]

	if ra, ok := d.r.(io.ReaderAt); ok {
		sr := io.NewSectionReader(ra, c.Offset, d.Chunks.Size-c.Offset)
		return NewTrackReader(bufio.NewReader(sr), c, n), nil
	}

	if _, err := d.r.Seek(c.Offset, io.SeekStart); err != nil {
		return nil, err
	}
	return NewTrackReader(bufio.NewReader(d.r), c, n), nil
}

// DecodeTrack decodes every event of track n.
func (d *Decoder) DecodeTrack(n int) ([]Event, error) {
	tr, err := d.Track(n)
	if err != nil {
		return nil, err
	}
	return ReadAll(tr)
}

// TempoChanges returns the tempo changes of track 0, which carries the tempo
// map in every SMF format.
func (d *Decoder) TempoChanges() ([]TempoChange, error) {
	events, err := d.DecodeTrack(0)
	if err != nil {
		return nil, err
	}
	return TempoChanges(events)
}

// Timeline builds the tick to millisecond mapping of the file.
func (d *Decoder) Timeline() (*Timeline, error) {
	tempos, err := d.TempoChanges()
	if err != nil {
		return nil, err
	}
	return NewTimeline(*d.Header, tempos)
}
