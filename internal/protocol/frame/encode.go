package frame

import (
	"encoding/binary"
	"fmt"
)

// MethodEncoder serializes a collaborator method payload.
type MethodEncoder func(MethodPayload) ([]byte, error)

// PropertyEncoder serializes a collaborator property table.
type PropertyEncoder func(PropertyTable) ([]byte, error)

// Encoder is the inverse of Decoder. The zero value encodes protocol
// headers, body and heartbeat frames; Methods and Properties must be
// set before method or content-header frames can be encoded.
type Encoder struct {
	Methods    MethodEncoder
	Properties PropertyEncoder
}

// AppendProtocolHeader appends the handshake bytes for v to dst.
func AppendProtocolHeader(dst []byte, v ProtocolVersion) []byte {
	dst = append(dst, protocolLiteral[:]...)
	return append(dst, v.Major, v.Minor, v.Revision)
}

// AppendRaw appends one complete frame envelope around payload.
func AppendRaw(dst []byte, typ Type, channel uint16, payload []byte) []byte {
	dst = append(dst, byte(typ))
	dst = binary.BigEndian.AppendUint16(dst, channel)
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(payload)))
	dst = append(dst, payload...)
	return append(dst, FrameEnd)
}

// Append appends the wire encoding of f to dst.
func (e *Encoder) Append(dst []byte, f Frame) ([]byte, error) {
	switch fr := f.(type) {
	case ProtocolHeader:
		return AppendProtocolHeader(dst, fr.Version), nil
	case Method:
		if e.Methods == nil {
			return nil, ErrNoMethodEncoder
		}
		payload, err := e.Methods(fr.Payload)
		if err != nil {
			return nil, fmt.Errorf("frame: encode method payload: %w", err)
		}
		return AppendRaw(dst, TypeMethod, fr.Channel, payload), nil
	case Header:
		if e.Properties == nil {
			return nil, ErrNoPropertyEncoder
		}
		props, err := e.Properties(fr.Content.Properties)
		if err != nil {
			return nil, fmt.Errorf("frame: encode properties: %w", err)
		}
		payload := make([]byte, 0, contentHeaderLen+len(props))
		payload = binary.BigEndian.AppendUint16(payload, fr.Content.ClassID)
		payload = binary.BigEndian.AppendUint16(payload, fr.Content.Weight)
		payload = binary.BigEndian.AppendUint64(payload, fr.Content.BodySize)
		payload = append(payload, props...)
		return AppendRaw(dst, TypeHeader, fr.Channel, payload), nil
	case Body:
		return AppendRaw(dst, TypeBody, fr.Channel, fr.Data), nil
	case Heartbeat:
		return AppendRaw(dst, TypeHeartbeat, fr.Channel, nil), nil
	}
	return nil, fmt.Errorf("frame: cannot encode %T", f)
}
