package frame

import (
	"errors"
	"fmt"
)

var (
	// ErrIncomplete marks the non-fatal "need more bytes" outcome.
	// Errors carrying a byte count unwrap to it; match with errors.Is.
	ErrIncomplete = errors.New("frame: incomplete input")

	ErrUnknownType        = errors.New("frame: unknown frame type tag")
	ErrBadFrameEnd        = errors.New("frame: bad frame-end byte")
	ErrBadProtocolHeader  = errors.New("frame: malformed protocol header")
	ErrTrailingBytes      = errors.New("frame: payload not fully consumed")
	ErrShortContentHeader = errors.New("frame: truncated content header")
	ErrPayloadTooLarge    = errors.New("frame: payload too large")
	ErrNoMethodDecoder    = errors.New("frame: no method decoder configured")
	ErrNoPropertyDecoder  = errors.New("frame: no property decoder configured")
	ErrNoMethodEncoder    = errors.New("frame: no method encoder configured")
	ErrNoPropertyEncoder  = errors.New("frame: no property encoder configured")
)

// IncompleteError reports that decoding stopped for lack of input.
// Needed is the minimum number of further bytes required before the
// decode can progress; zero means the amount is not determinable.
type IncompleteError struct {
	Needed int
}

func (e *IncompleteError) Error() string {
	if e.Needed > 0 {
		return fmt.Sprintf("frame: incomplete input: need %d more bytes", e.Needed)
	}
	return "frame: incomplete input"
}

func (e *IncompleteError) Unwrap() error { return ErrIncomplete }

func incomplete(needed int) error { return &IncompleteError{Needed: needed} }

// NeededBytes extracts the byte count from an incomplete outcome.
func NeededBytes(err error) (int, bool) {
	var ie *IncompleteError
	if errors.As(err, &ie) {
		return ie.Needed, true
	}
	return 0, false
}
