package midi

import (
	"fmt"
)

const (
	StatusMeta        = 0xFF
	StatusSysEx       = 0xF0
	StatusSysExEscape = 0xF7
)

// Kind classifies an event by its status byte.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindNoteOff
	KindNoteOn
	KindNoteAftertouch
	KindController
	KindProgramChange
	KindChannelAftertouch
	KindPitchBend
	KindMeta
	KindSysEx
)

func (k Kind) String() string {
	switch k {
	case KindNoteOff:
		return "Note Off"
	case KindNoteOn:
		return "Note On"
	case KindNoteAftertouch:
		return "Note Aftertouch"
	case KindController:
		return "Controller"
	case KindProgramChange:
		return "Program Change"
	case KindChannelAftertouch:
		return "Channel Aftertouch"
	case KindPitchBend:
		return "Pitch Bend"
	case KindMeta:
		return "Meta"
	case KindSysEx:
		return "SysEx"
	}
	return "Unknown"
}

// IsChannel reports whether k is one of the seven channel voice kinds.
func (k Kind) IsChannel() bool {
	return KindNoteOff <= k && k <= KindPitchBend
}

func kindOf(status byte) Kind {
	switch status {
	case StatusMeta:
		return KindMeta
	case StatusSysEx, StatusSysExEscape:
		return KindSysEx
	}

	switch status >> 4 {
	case 0x8:
		return KindNoteOff
	case 0x9:
		return KindNoteOn
	case 0xA:
		return KindNoteAftertouch
	case 0xB:
		return KindController
	case 0xC:
		return KindProgramChange
	case 0xD:
		return KindChannelAftertouch
	case 0xE:
		return KindPitchBend
	}
	return KindUnknown
}

// dataLen is the number of data bytes following a channel status byte.
func dataLen(status byte) int {
	switch status >> 4 {
	case 0xC, 0xD:
		return 1
	}
	return 2
}

// Event is one decoded track event. Data always starts with a real status
// byte; running status is resolved before an Event is built.
type Event struct {
	Delta uint32
	// Offset is the absolute file offset of the event's delta-time.
	Offset int64
	Data   []byte
}

// Status returns the event's status byte.
func (e Event) Status() byte {
	if len(e.Data) == 0 {
		return 0
	}
	return e.Data[0]
}

func (e Event) Kind() Kind {
	return kindOf(e.Status())
}

func (e Event) mustChannel(method string) {
	if k := e.Kind(); !k.IsChannel() {
		panic(&KindError{Method: method, Kind: k})
	}
}

// Channel returns the channel 0-15 of a channel event.
func (e Event) Channel() uint8 {
	e.mustChannel("Channel")
	return e.Data[0] & 0x0F
}

func (e Event) Param1() uint8 {
	e.mustChannel("Param1")
	return e.Data[1]
}

// Param2 returns the second data byte. ok is false for Program Change and
// Channel Aftertouch, which carry a single data byte.
func (e Event) Param2() (v uint8, ok bool) {
	e.mustChannel("Param2")
	if dataLen(e.Data[0]) == 1 {
		return 0, false
	}
	return e.Data[2], true
}

// IsNoteOff reports a Note Off, or a Note On with velocity 0.
func (e Event) IsNoteOff() bool {
	switch e.Kind() {
	case KindNoteOff:
		return true
	case KindNoteOn:
		return e.Data[2] == 0
	}
	return false
}

// IsNoteOn reports a Note On with non-zero velocity.
func (e Event) IsNoteOn() bool {
	return e.Kind() == KindNoteOn && e.Data[2] != 0
}

// SysExData returns the payload of a SysEx event without its length prefix.
func (e Event) SysExData() []byte {
	if k := e.Kind(); k != KindSysEx {
		panic(&KindError{Method: "SysExData", Kind: k})
	}
	return payloadAfterLength(e.Data[1:])
}

func payloadAfterLength(buf []byte) []byte {
	l, n, err := DecodeVarLen(buf)
	if err != nil || n+int(l) > len(buf) {
		return nil
	}
	return buf[n : n+int(l)]
}

func (e Event) String() string {
	switch k := e.Kind(); {
	case k == KindMeta:
		return fmt.Sprintf("delta %d %s (%d bytes)", e.Delta, e.MetaType(), len(e.MetaData()))
	case k == KindSysEx:
		return fmt.Sprintf("delta %d SysEx (%d bytes)", e.Delta, len(e.SysExData()))
	case k.IsChannel():
		if p2, ok := e.Param2(); ok {
			return fmt.Sprintf("delta %d %s ch %d %d %d", e.Delta, k, e.Channel(), e.Param1(), p2)
		}
		return fmt.Sprintf("delta %d %s ch %d %d", e.Delta, k, e.Channel(), e.Param1())
	}
	return fmt.Sprintf("delta %d % x", e.Delta, e.Data)
}
