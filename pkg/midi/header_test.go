package midi

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeHeaderBytes(t *testing.T, r *bytes.Reader) (*Header, error) {
	idx, err := IndexChunks(r)
	require.NoError(t, err)
	return DecodeHeader(r, idx)
}

func TestDecodeHeader(t *testing.T) {
	h, err := decodeHeaderBytes(t, smfFile(headerChunk(0, 2, 0x0060)))
	require.NoError(t, err)
	assert.Equal(t, Header{Format: 0, NumTracks: 2, Division: 96, DivisionType: TicksPerBeat}, *h)
}

func TestDecodeHeaderFramesPerSecond(t *testing.T) {
	h, err := decodeHeaderBytes(t, smfFile(headerChunk(1, 3, 0x8002)))
	require.NoError(t, err)
	assert.Equal(t, FramesPerSecond, h.DivisionType)
	assert.Equal(t, uint16(2), h.Division)
	assert.Equal(t, uint16(1), h.Format)
	assert.Equal(t, uint16(3), h.NumTracks)
}

func TestDecodeHeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		r    *bytes.Reader
		err  error
	}{
		{"missing", smfFile(chunk(TrackTag, 0x00, 0xFF, 0x2F, 0x00)), ErrMissingHeader},
		{"duplicate", smfFile(headerChunk(0, 1, 96), headerChunk(0, 1, 96)), ErrMissingHeader},
		{"placement", smfFile(chunk(TrackTag), headerChunk(0, 0, 96)), ErrInvalidHeaderPlacement},
		{"length", smfFile(chunk(HeaderTag, 0, 0, 0, 1, 0, 0x60, 0)), ErrInvalidHeaderLength},
		{"format", smfFile(headerChunk(3, 1, 96)), ErrFmtNotSupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeHeaderBytes(t, tt.r)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestHeaderString(t *testing.T) {
	h := Header{Format: 1, NumTracks: 4, Division: 96, DivisionType: TicksPerBeat}
	assert.Equal(t, "format 1, 4 track(s), division 96 (TICKS_PER_BEAT)", h.String())
}
