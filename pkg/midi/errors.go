package midi

import (
	"errors"
	"fmt"
)

var (
	// ErrFmtNotSupported is a generic error reporting an unknown format.
	ErrFmtNotSupported = errors.New("format not supported")
	// ErrUnexpectedData is a generic error reporting that the parser encountered unexpected data.
	ErrUnexpectedData = errors.New("unexpected data content")

	ErrTruncatedInput      = errors.New("truncated input")
	ErrContainerCorrupt    = errors.New("container corrupt")
	ErrTrackLengthMismatch = errors.New("track length mismatch")

	ErrMissingHeader          = errors.New("missing MThd header")
	ErrInvalidHeaderPlacement = errors.New("invalid MThd placement")
	ErrInvalidHeaderLength    = errors.New("invalid MThd length")
	ErrTrackCountMismatch     = errors.New("track count mismatch")
	ErrTrackOutOfRange        = errors.New("track out of range")

	// ErrVLQOverflow reports a variable-length quantity longer than 4 bytes.
	ErrVLQOverflow = errors.New("variable-length quantity overflow")

	ErrRunningStatusWithoutPriorEvent = errors.New("running status without prior event")
	ErrMissingInitialTempo            = errors.New("missing initial tempo")

	// ErrWrongEventKind is carried by the panic of an accessor called on an event of the wrong kind.
	ErrWrongEventKind = errors.New("wrong event kind")
)

// DecodeError locates a failure inside one track.
type DecodeError struct {
	Track  int
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("track %d at offset %d: %v", e.Track, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// KindError is the panic value of an event accessor used on an inapplicable event.
type KindError struct {
	Method string
	Kind   Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("%v - midi.Event.%s called on %s event", ErrWrongEventKind, e.Method, e.Kind)
}

func (e *KindError) Unwrap() error {
	return ErrWrongEventKind
}
