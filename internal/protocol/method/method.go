// Package method decodes the generic class/method envelope carried by
// method frames. Argument bytes stay opaque: per-class argument
// schemas belong to generated class decoders, not this layer.
package method

import (
	"encoding/binary"
	"errors"
)

var ErrShortMethod = errors.New("method: truncated class/method envelope")

// Invocation is one decoded method envelope.
type Invocation struct {
	ClassID  uint16
	MethodID uint16
	Args     []byte
}

// Decode decodes the method envelope from payload, consuming it
// completely; everything after the two ids becomes the opaque
// argument bytes. Args is an owned copy.
func Decode(payload []byte) (Invocation, []byte, error) {
	if len(payload) < 4 {
		return Invocation{}, nil, ErrShortMethod
	}
	args := make([]byte, len(payload)-4)
	copy(args, payload[4:])
	inv := Invocation{
		ClassID:  binary.BigEndian.Uint16(payload[0:2]),
		MethodID: binary.BigEndian.Uint16(payload[2:4]),
		Args:     args,
	}
	return inv, payload[len(payload):], nil
}

// Append appends the wire encoding of inv to dst.
func Append(dst []byte, inv Invocation) []byte {
	dst = binary.BigEndian.AppendUint16(dst, inv.ClassID)
	dst = binary.BigEndian.AppendUint16(dst, inv.MethodID)
	return append(dst, inv.Args...)
}
