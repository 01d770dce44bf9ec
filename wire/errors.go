// Package wire implements the byte-level primitives shared by every
// OpenFlow codec in this module: big-endian conversion, bounded read/write
// cursors and the error taxonomy used to report malformed wire data.
package wire

import "github.com/pkg/errors"

// Buffer errors, raised while framing or slicing the wire representation.
var (
	// ErrTooShort is returned when a decode operation needs more bytes
	// than the reader currently has available.
	ErrTooShort = errors.New("wire: buffer too short")

	// ErrBufferFull is returned when an encode operation would write
	// past the end of a bounded destination buffer.
	ErrBufferFull = errors.New("wire: buffer full")

	// ErrOversizeFrame is returned when a frame declares a length past
	// the configured maximum message size.
	ErrOversizeFrame = errors.New("wire: oversize frame")

	// ErrLengthMismatch is returned when a declared length field
	// disagrees with the length actually present or produced.
	ErrLengthMismatch = errors.New("wire: length mismatch")
)

// Format errors, raised while interpreting otherwise well-framed bytes.
var (
	// ErrBadVersion is returned for a protocol version this module does
	// not implement.
	ErrBadVersion = errors.New("wire: unsupported protocol version")

	// ErrBadKind is returned for a well-framed but unrecognized
	// enumeration value (message type, stat type, action type, ...).
	ErrBadKind = errors.New("wire: unrecognized kind")

	// ErrMalformedReserved is returned when a field reserved by the
	// OpenFlow specification carries a nonzero value.
	ErrMalformedReserved = errors.New("wire: reserved field set")

	// ErrInvalList is returned when a TLV list under- or over-reads its
	// declared length.
	ErrInvalList = errors.New("wire: invalid list encoding")

	// ErrInvalFieldLength is returned when an OXM field length does not
	// match the width mandated by its (class, field) pair.
	ErrInvalFieldLength = errors.New("wire: invalid field length")

	// ErrMatchPrereqViolated is returned when an OXM field is present
	// without the match fields its semantics require.
	ErrMatchPrereqViolated = errors.New("wire: match prerequisite violated")
)

// State errors, raised by the connection/channel state machines.
var (
	ErrNotEstablished = errors.New("wire: connection not established")
	ErrChanExhausted   = errors.New("wire: channel auxiliary id space exhausted")
	ErrChanNotFound    = errors.New("wire: no connection for auxiliary id")
	ErrChanExists      = errors.New("wire: connection already exists for auxiliary id")
	ErrChanInval       = errors.New("wire: invalid auxiliary id")
)

// Wrap annotates err with a caller-supplied message, preserving the
// original sentinel for errors.Is/errors.Cause comparisons.
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	return errors.Wrapf(err, format, args...)
}
