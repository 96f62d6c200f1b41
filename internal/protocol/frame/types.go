package frame

import "fmt"

// Type is the one-byte frame type tag.
type Type uint8

// Frame type tag values from the 0-9-1 grammar.
const (
	TypeMethod    Type = 1
	TypeHeader    Type = 2
	TypeBody      Type = 3
	TypeHeartbeat Type = 8
)

// FrameEnd terminates every frame on the wire.
const FrameEnd byte = 0xCE

// frameHeaderLen covers the type tag, channel id and payload size.
const frameHeaderLen = 7

// protocolLiteral opens the connection-start handshake; the three
// version octets follow it.
var protocolLiteral = [5]byte{'A', 'M', 'Q', 'P', 0}

const protocolHeaderLen = 8

// Valid reports whether t is one of the four defined tag values.
func (t Type) Valid() bool {
	switch t {
	case TypeMethod, TypeHeader, TypeBody, TypeHeartbeat:
		return true
	}
	return false
}

func (t Type) String() string {
	switch t {
	case TypeMethod:
		return "method"
	case TypeHeader:
		return "header"
	case TypeBody:
		return "body"
	case TypeHeartbeat:
		return "heartbeat"
	}
	return fmt.Sprintf("unknown(0x%02X)", uint8(t))
}

// ProtocolVersion is the version triple carried by the handshake.
// Comparing it against the locally supported version is the
// connection layer's job.
type ProtocolVersion struct {
	Major    uint8
	Minor    uint8
	Revision uint8
}

func (v ProtocolVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Revision)
}

// MethodPayload is produced by the collaborator method decoder; the
// framing layer never looks inside it.
type MethodPayload any

// PropertyTable is produced by the collaborator property decoder.
type PropertyTable any

// MethodDecoder decodes a class/method payload and returns the bytes
// it did not consume.
type MethodDecoder func(payload []byte) (MethodPayload, []byte, error)

// PropertyDecoder decodes a property table and returns the bytes it
// did not consume.
type PropertyDecoder func(payload []byte) (PropertyTable, []byte, error)

// RawFrame is the uninterpreted frame envelope. Payload is a zero-copy
// slice of the input buffer and must not outlive it.
type RawFrame struct {
	Type    Type
	Channel uint16
	Payload []byte
}

// ContentHeader is the structured header preceding a message body.
// Weight is reserved by the protocol and decoded but never validated.
type ContentHeader struct {
	ClassID    uint16
	Weight     uint16
	BodySize   uint64
	Properties PropertyTable
}

// Frame is the closed set of decoded frame variants.
type Frame interface {
	frameVariant()
}

// ProtocolHeader is the connection-start handshake.
type ProtocolHeader struct {
	Version ProtocolVersion
}

// Method is a decoded class/method invocation on a channel.
type Method struct {
	Channel uint16
	Payload MethodPayload
}

// Header precedes the body fragments of one message.
type Header struct {
	Channel uint16
	ClassID uint16
	Content ContentHeader
}

// Body is one opaque message-body fragment. Data is owned by the
// frame, not borrowed from the input buffer.
type Body struct {
	Channel uint16
	Data    []byte
}

// Heartbeat is the empty liveness frame.
type Heartbeat struct {
	Channel uint16
}

func (ProtocolHeader) frameVariant() {}
func (Method) frameVariant()         {}
func (Header) frameVariant()         {}
func (Body) frameVariant()           {}
func (Heartbeat) frameVariant()      {}

// Kind names a decoded frame variant for logs and metric labels.
func Kind(f Frame) string {
	switch f.(type) {
	case ProtocolHeader:
		return "protocol-header"
	case Method:
		return "method"
	case Header:
		return "header"
	case Body:
		return "body"
	case Heartbeat:
		return "heartbeat"
	}
	return "unknown"
}
