package midi

import (
	"bytes"
	"encoding/binary"
)

func chunk(tag string, payload ...byte) []byte {
	buf := make([]byte, 8, 8+len(payload))
	copy(buf, tag)
	binary.BigEndian.PutUint32(buf[4:], uint32(len(payload)))
	return append(buf, payload...)
}

func headerChunk(format, tracks, division uint16) []byte {
	payload := make([]byte, 6)
	binary.BigEndian.PutUint16(payload[0:], format)
	binary.BigEndian.PutUint16(payload[2:], tracks)
	binary.BigEndian.PutUint16(payload[4:], division)
	return chunk(HeaderTag, payload...)
}

func smfFile(chunks ...[]byte) *bytes.Reader {
	return bytes.NewReader(bytes.Join(chunks, nil))
}

// readSeekerOnly hides io.ReaderAt from the decoder.
type readSeekerOnly struct {
	r *bytes.Reader
}

func (r *readSeekerOnly) Read(p []byte) (int, error) {
	return r.r.Read(p)
}

func (r *readSeekerOnly) Seek(offset int64, whence int) (int64, error) {
	return r.r.Seek(offset, whence)
}

// singleTrackFile is format 0, 96 ticks per beat: set tempo 120 BPM, a note
// on and a note off one beat later, end of track.
func singleTrackFile() *bytes.Reader {
	return smfFile(
		headerChunk(0, 1, 96),
		chunk(TrackTag,
			0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20,
			0x00, 0x90, 0x3C, 0x64,
			0x60, 0x80, 0x3C, 0x00,
			0x00, 0xFF, 0x2F, 0x00,
		),
	)
}

// format1File is the four track example printed in the Standard MIDI File 1.0
// document.
var format1File = []byte{
	0x4d, 0x54, 0x68, 0x64, 0, 0, 0, 6, 0, 1, 0, 4, 0, 0x60,

	0x4d, 0x54, 0x72, 0x6b, 0, 0, 0, 0x14,
	0, 0xff, 0x58, 4, 4, 2, 0x18, 8,
	0, 0xff, 0x51, 3, 7, 0xa1, 0x20,
	0x83, 0, 0xff, 0x2f, 0,

	0x4d, 0x54, 0x72, 0x6b, 0, 0, 0, 0x10,
	0, 0xc0, 5,
	0x81, 0x40, 0x90, 0x4c, 0x20,
	0x81, 0x40, 0x4c, 0,
	0, 0xff, 0x2f, 0,

	0x4d, 0x54, 0x72, 0x6b, 0, 0, 0, 0xf,
	0, 0xc1, 0x2e,
	0x60, 0x91, 0x43, 0x40,
	0x82, 0x20, 0x43, 0,
	0, 0xff, 0x2f, 0,

	0x4d, 0x54, 0x72, 0x6b, 0, 0, 0, 0x15,
	0, 0xc2, 0x46,
	0, 0x92, 0x30, 0x60,
	0, 0x3c, 0x60,
	0x83, 0, 0x30, 0,
	0, 0x3c, 0,
	0, 0xff, 0x2f, 0,
}

// panicError runs f and returns the error it panicked with.
func panicError(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	f()
	return nil
}
