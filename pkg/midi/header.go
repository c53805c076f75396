package midi

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	headerOffset = chunkPreambleSize
	headerLength = 6
)

type DivisionType int

const (
	TicksPerBeat DivisionType = iota + 1
	FramesPerSecond
)

func (t DivisionType) String() string {
	switch t {
	case TicksPerBeat:
		return "TICKS_PER_BEAT"
	case FramesPerSecond:
		return "FRAMES_PER_SECOND"
	}
	return fmt.Sprintf("DivisionType(%d)", int(t))
}

// Header is the decoded MThd chunk.
type Header struct {
	Format    uint16
	NumTracks uint16
	// Division holds ticks per beat, or the 15-bit frames-per-second field
	// when DivisionType is FramesPerSecond.
	Division     uint16
	DivisionType DivisionType
}

func (h Header) String() string {
	return fmt.Sprintf("format %d, %d track(s), division %d (%s)", h.Format, h.NumTracks, h.Division, h.DivisionType)
}

// DecodeHeader validates the single MThd chunk recorded in idx and reads it from r.
func DecodeHeader(r io.ReadSeeker, idx *ChunkIndex) (*Header, error) {
	chunks := idx.Get(HeaderTag)
	if len(chunks) != 1 {
		return nil, fmt.Errorf("%w - expected exactly 1 %s chunk, got %d", ErrMissingHeader, HeaderTag, len(chunks))
	}

	c := chunks[0]
	if c.Offset != headerOffset {
		return nil, fmt.Errorf("%w - expected offset %d, was %d", ErrInvalidHeaderPlacement, headerOffset, c.Offset)
	}
	if c.Length != headerLength {
		return nil, fmt.Errorf("%w - expected header size to be %d, was %d", ErrInvalidHeaderLength, headerLength, c.Length)
	}

	if _, err := r.Seek(c.Offset, io.SeekStart); err != nil {
		return nil, err
	}

	var raw struct {
		Format    uint16
		NumTracks uint16
		Division  uint16
	}
	if err := binary.Read(r, binary.BigEndian, &raw); err != nil {
		return nil, eofAsTruncated(err)
	}

	if raw.Format > 2 {
		return nil, fmt.Errorf("%w - SMF format %d", ErrFmtNotSupported, raw.Format)
	}

	h := &Header{
		Format:    raw.Format,
		NumTracks: raw.NumTracks,
	}

	if (raw.Division & 0x8000) == 0 {
		h.Division = raw.Division
		h.DivisionType = TicksPerBeat
	} else {
		h.Division = raw.Division & 0x7FFF
		h.DivisionType = FramesPerSecond
	}

	return h, nil
}
