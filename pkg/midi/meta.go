package midi

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// MetaType is the subtype byte of a meta event.
type MetaType uint8

const (
	MetaText              MetaType = 0x01
	MetaCopyright         MetaType = 0x02
	MetaTrackName         MetaType = 0x03
	MetaInstrumentName    MetaType = 0x04
	MetaLyrics            MetaType = 0x05
	MetaMarker            MetaType = 0x06
	MetaCuePoint          MetaType = 0x07
	MetaPortPrefix        MetaType = 0x21
	MetaEndOfTrack        MetaType = 0x2F
	MetaSetTempo          MetaType = 0x51
	MetaSMPTEOffset       MetaType = 0x54
	MetaTimeSignature     MetaType = 0x58
	MetaKeySignature      MetaType = 0x59
	MetaSequencerSpecific MetaType = 0x7F
)

// DefaultTempo is 120 beats per minute, in microseconds per quarter note.
const DefaultTempo = 500000

func (t MetaType) String() string {
	switch t {
	case MetaText:
		return "Text"
	case MetaCopyright:
		return "Copyright Notice"
	case MetaTrackName:
		return "Sequence/Track Name"
	case MetaInstrumentName:
		return "Instrument Name"
	case MetaLyrics:
		return "Lyrics"
	case MetaMarker:
		return "Marker"
	case MetaCuePoint:
		return "Cue Point"
	case MetaPortPrefix:
		return "Port Prefix"
	case MetaEndOfTrack:
		return "End Of Track"
	case MetaSetTempo:
		return "Set Tempo"
	case MetaSMPTEOffset:
		return "SMPTE Offset"
	case MetaTimeSignature:
		return "Time Signature"
	case MetaKeySignature:
		return "Key Signature"
	case MetaSequencerSpecific:
		return "Sequencer Specific"
	}
	return fmt.Sprintf("Unknown Meta (0x%02x)", uint8(t))
}

// IsText reports whether the payload of t is text.
func (t MetaType) IsText() bool {
	return MetaText <= t && t <= MetaCuePoint
}

func (e Event) mustMeta(method string) {
	if k := e.Kind(); k != KindMeta {
		panic(&KindError{Method: method, Kind: k})
	}
}

func (e Event) MetaType() MetaType {
	e.mustMeta("MetaType")
	return MetaType(e.Data[1])
}

// MetaData returns the meta payload without subtype and length.
func (e Event) MetaData() []byte {
	e.mustMeta("MetaData")
	return payloadAfterLength(e.Data[2:])
}

// IsMeta reports whether e is a meta event of type t.
func (e Event) IsMeta(t MetaType) bool {
	return e.Kind() == KindMeta && MetaType(e.Data[1]) == t
}

// EndOfTrack reports whether e is the End Of Track meta event.
func (e Event) EndOfTrack() bool {
	return e.IsMeta(MetaEndOfTrack)
}

// Tempo returns the microseconds per quarter note of a Set Tempo event.
func (e Event) Tempo() (uint32, error) {
	if !e.IsMeta(MetaSetTempo) {
		panic(&KindError{Method: "Tempo", Kind: e.Kind()})
	}
	data := e.MetaData()
	if len(data) != 3 {
		return 0, fmt.Errorf("%w - set tempo payload of %d bytes", ErrUnexpectedData, len(data))
	}
	return uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2]), nil
}

// MetaText decodes the payload of a text meta event with enc, ISO 8859-1
// when enc is nil. ok is false for meta types that do not carry text.
func (e Event) MetaText(enc encoding.Encoding) (s string, ok bool, err error) {
	t := e.MetaType()
	if !t.IsText() {
		return "", false, nil
	}
	if enc == nil {
		enc = charmap.ISO8859_1
	}
	b, err := enc.NewDecoder().Bytes(e.MetaData())
	if err != nil {
		return "", true, err
	}
	return string(b), true, nil
}
