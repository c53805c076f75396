package midi

import (
	"encoding/binary"
	"fmt"
	"io"

	"go.uber.org/zap"
)

const chunkPreambleSize = 8

const (
	HeaderTag = "MThd"
	TrackTag  = "MTrk"
)

// Chunk is the position of one top-level chunk payload in the file.
type Chunk struct {
	Tag    string
	Offset int64
	Length uint32
}

// End returns the offset just past the chunk payload.
func (c Chunk) End() int64 {
	return c.Offset + int64(c.Length)
}

// ChunkIndex maps chunk tags to their payload positions, in file order.
type ChunkIndex struct {
	Size   int64
	Chunks map[string][]Chunk
	// Order lists every chunk in file order, tags included.
	Order []Chunk
}

// Get returns the chunks recorded under tag.
func (idx *ChunkIndex) Get(tag string) []Chunk {
	return idx.Chunks[tag]
}

// IndexChunks scans r once from the start and records every top-level chunk.
// Unknown tags are indexed without interpretation.
func IndexChunks(r io.ReadSeeker) (*ChunkIndex, error) {
	log := decoderLog.Named("IndexChunks")

	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err = r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	idx := &ChunkIndex{
		Size:   size,
		Chunks: make(map[string][]Chunk),
	}

	var offset int64
	for offset < size {
		if size-offset < chunkPreambleSize {
			return nil, fmt.Errorf("%w - chunk preamble at offset %d needs %d bytes, %d left",
				ErrTruncatedInput, offset, chunkPreambleSize, size-offset)
		}

		var preamble struct {
			ID     [4]byte
			Length uint32
		}
		if err := binary.Read(r, binary.BigEndian, &preamble); err != nil {
			return nil, eofAsTruncated(err)
		}
		offset += chunkPreambleSize

		c := Chunk{Tag: string(preamble.ID[:]), Offset: offset, Length: preamble.Length}
		end := c.End()
		if end < offset {
			return nil, fmt.Errorf("%w - chunk %q at offset %d overflows", ErrContainerCorrupt, c.Tag, c.Offset)
		}
		if end > size {
			return nil, fmt.Errorf("%w - chunk %q at offset %d declares %d bytes, %d left",
				ErrTruncatedInput, c.Tag, c.Offset, c.Length, size-offset)
		}

		pos, err := r.Seek(int64(c.Length), io.SeekCurrent)
		if err != nil {
			return nil, err
		}
		if pos != end {
			return nil, fmt.Errorf("%w - chunk %q ends at %d, source is at %d", ErrContainerCorrupt, c.Tag, end, pos)
		}

		log.Debug("chunk", zap.String("tag", c.Tag), zap.Int64("offset", c.Offset), zap.Uint32("length", c.Length))

		idx.Chunks[c.Tag] = append(idx.Chunks[c.Tag], c)
		idx.Order = append(idx.Order, c)
		offset = end
	}

	return idx, nil
}
