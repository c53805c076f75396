package midi

import (
	"fmt"
	"io"
)

const (
	maxVarLenBytes = 4
	// MaxVarLen is the largest value a 4-byte variable-length quantity can hold.
	MaxVarLen = 0x0FFFFFFF
)

// ReadVarLen returns the variable length value at the exact reader location.
func ReadVarLen(r io.ByteReader) (uint32, error) {
	val, _, err := readVarLen(r, nil)
	return val, err
}

// ReadVarLenRaw works like ReadVarLen and also appends the consumed bytes to raw.
func ReadVarLenRaw(r io.ByteReader, raw []byte) (uint32, []byte, error) {
	return readVarLen(r, raw)
}

func readVarLen(r io.ByteReader, raw []byte) (uint32, []byte, error) {
	var val uint32
	for i := 0; i < maxVarLenBytes; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, raw, eofAsTruncated(err)
		}
		raw = append(raw, b)

		val = val<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return val, raw, nil
		}
	}

	return 0, raw, fmt.Errorf("%w - more than %d bytes", ErrVLQOverflow, maxVarLenBytes)
}

// DecodeVarLen decodes the variable-length quantity at the start of buf and
// returns its value and the number of bytes it occupies.
func DecodeVarLen(buf []byte) (x uint32, n int, err error) {
	for _, b := range buf {
		if n == maxVarLenBytes {
			return 0, n, fmt.Errorf("%w - more than %d bytes", ErrVLQOverflow, maxVarLenBytes)
		}
		x = x<<7 | uint32(b&0x7F)
		n++
		if b&0x80 == 0 {
			return x, n, nil
		}
	}

	if n == maxVarLenBytes {
		return 0, n, fmt.Errorf("%w - more than %d bytes", ErrVLQOverflow, maxVarLenBytes)
	}
	return 0, n, fmt.Errorf("%w - unterminated variable-length quantity", ErrTruncatedInput)
}

// EncodeVarLen returns the minimal encoding of v.
func EncodeVarLen(v uint32) ([]byte, error) {
	return AppendVarLen(nil, v)
}

// AppendVarLen appends the minimal encoding of v to buf.
func AppendVarLen(buf []byte, v uint32) ([]byte, error) {
	if v > MaxVarLen {
		return buf, fmt.Errorf("%w - %#x does not fit in 28 bits", ErrVLQOverflow, v)
	}

	var tmp [maxVarLenBytes]byte
	i := len(tmp) - 1
	tmp[i] = byte(v & 0x7F)
	for v >>= 7; v > 0; v >>= 7 {
		i--
		tmp[i] = byte(v&0x7F) | 0x80
	}

	return append(buf, tmp[i:]...), nil
}

func eofAsTruncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w - %v", ErrTruncatedInput, err)
	}
	return err
}
