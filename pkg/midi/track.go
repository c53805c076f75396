package midi

import (
	"bufio"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Status is the running status carried from one event to the next within a
// track. The zero value means no channel status has been seen yet.
type Status byte

// EventIterator is a pull-based event stream. Next advances and reports
// whether an event is available; once it returns false, Err tells an
// exhausted stream (nil) from a failed one.
type EventIterator interface {
	Next() bool
	Event() Event
	Err() error
}

type countingReader struct {
	r io.ByteReader
	n int
}

func (c *countingReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err != nil {
		return 0, eofAsTruncated(err)
	}
	c.n++
	return b, nil
}

func (c *countingReader) readFull(buf []byte) ([]byte, error) {
	for i := range buf {
		b, err := c.ReadByte()
		if err != nil {
			return nil, err
		}
		buf[i] = b
	}
	return buf, nil
}

// DecodeEvent decodes one event at the reader location. prev is the running
// status left by the previous event; the running status for the following
// event is returned along with the number of bytes consumed.
func DecodeEvent(r io.ByteReader, prev Status) (Event, Status, int, error) {
	cr := &countingReader{r: r}

	delta, err := ReadVarLen(cr)
	if err != nil {
		return Event{}, prev, cr.n, err
	}
	e := Event{Delta: delta}

	// status byte give us the msg type and channel.
	b, err := cr.ReadByte()
	if err != nil {
		return e, prev, cr.n, err
	}

	next := prev
	switch {
	case b == StatusMeta:
		var subtype byte
		if subtype, err = cr.ReadByte(); err != nil {
			return e, prev, cr.n, err
		}
		e.Data, err = readSized(cr, []byte{b, subtype})

	case b == StatusSysEx, b == StatusSysExEscape:
		e.Data, err = readSized(cr, []byte{b})

	case b >= 0xF0:
		return e, prev, cr.n, fmt.Errorf("%w - system status 0x%02x in track data", ErrUnexpectedData, b)

	case b >= 0x80:
		next = Status(b)
		e.Data = make([]byte, 1+dataLen(b))
		e.Data[0] = b
		_, err = cr.readFull(e.Data[1:])

	default:
		// running status: b is the first data byte of a message
		// sharing the previous status byte.
		if prev < 0x80 || prev >= 0xF0 {
			return e, prev, cr.n, fmt.Errorf("%w - data byte 0x%02x", ErrRunningStatusWithoutPriorEvent, b)
		}
		status := byte(prev)
		e.Data = make([]byte, 1+dataLen(status))
		e.Data[0], e.Data[1] = status, b
		_, err = cr.readFull(e.Data[2:])
	}

	if err != nil {
		return e, prev, cr.n, err
	}
	return e, next, cr.n, nil
}

// readSized appends a length VLQ and that many payload bytes to data.
func readSized(cr *countingReader, data []byte) ([]byte, error) {
	l, data, err := ReadVarLenRaw(cr, data)
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < l; i++ {
		b, err := cr.ReadByte()
		if err != nil {
			return nil, err
		}
		data = append(data, b)
	}
	return data, nil
}

// TrackReader decodes the events of one MTrk chunk on demand.
type TrackReader struct {
	r      io.ByteReader
	track  int
	offset int64
	end    int64
	status Status

	ev  Event
	err error
	eof bool
}

// NewTrackReader reads the payload of chunk c. r must be positioned at the
// start of the payload.
func NewTrackReader(r io.Reader, c Chunk, track int) *TrackReader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &TrackReader{
		r:      br,
		track:  track,
		offset: c.Offset,
		end:    c.End(),
	}
}

func (t *TrackReader) Next() bool {
	if t.eof || t.err != nil {
		return false
	}
	if t.offset == t.end {
		t.eof = true
		decoderLog.Named("TrackReader").Debug("end of chunk", zap.Int("track", t.track), zap.Int64("offset", t.offset))
		return false
	}

	ev, status, n, err := DecodeEvent(t.r, t.status)
	if err != nil {
		t.err = &DecodeError{Track: t.track, Offset: t.offset, Err: err}
		return false
	}

	ev.Offset = t.offset
	t.offset += int64(n)
	if t.offset > t.end {
		t.err = &DecodeError{
			Track:  t.track,
			Offset: ev.Offset,
			Err:    fmt.Errorf("%w - event ends at %d, chunk at %d", ErrTrackLengthMismatch, t.offset, t.end),
		}
		return false
	}

	t.ev = ev
	t.status = status
	return true
}

func (t *TrackReader) Event() Event {
	return t.ev
}

func (t *TrackReader) Err() error {
	return t.err
}

// SliceIterator iterates over already decoded events.
type SliceIterator struct {
	events []Event
	i      int
}

func NewSliceIterator(events []Event) *SliceIterator {
	return &SliceIterator{events: events, i: -1}
}

func (s *SliceIterator) Next() bool {
	if s.i+1 >= len(s.events) {
		s.i = len(s.events)
		return false
	}
	s.i++
	return true
}

func (s *SliceIterator) Event() Event {
	return s.events[s.i]
}

func (s *SliceIterator) Err() error {
	return nil
}

// ReadAll drains it.
func ReadAll(it EventIterator) ([]Event, error) {
	var events []Event
	for it.Next() {
		events = append(events, it.Event())
	}
	return events, it.Err()
}
