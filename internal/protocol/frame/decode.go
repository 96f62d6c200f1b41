package frame

import (
	"encoding/binary"
	"fmt"
)

// Decoder turns wire bytes into decoded frames. The zero value decodes
// raw envelopes, body and heartbeat frames; Methods and Properties
// must be set before method or content-header frames can appear.
type Decoder struct {
	Methods    MethodDecoder
	Properties PropertyDecoder

	// MaxPayloadBytes rejects any frame whose declared payload size
	// exceeds it, before the payload bytes are required. Zero means
	// no limit.
	MaxPayloadBytes uint32
}

// Decode decodes the next frame from buf. On success it returns the
// frame and the exact unconsumed remainder of buf. An incomplete
// outcome (errors.Is(err, ErrIncomplete)) means buf holds a valid
// prefix and the caller should retry with more input appended. Every
// other error is fatal for the connection.
func (d *Decoder) Decode(buf []byte) (Frame, []byte, error) {
	if len(buf) == 0 {
		return nil, nil, incomplete(1)
	}
	// The two top-level grammars disagree on their first byte: the
	// protocol literal opens with 'A', which is not a defined frame
	// type tag.
	if buf[0] == protocolLiteral[0] {
		v, rest, err := DecodeProtocolHeader(buf)
		if err != nil {
			return nil, nil, err
		}
		return ProtocolHeader{Version: v}, rest, nil
	}
	raw, rest, err := d.DecodeRaw(buf)
	if err != nil {
		return nil, nil, err
	}
	f, err := d.interpret(raw)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}

// DecodeProtocolHeader decodes the fixed connection-start handshake:
// the "AMQP" literal, one zero byte, then major, minor and revision.
// Only valid as the very first bytes of a connection.
func DecodeProtocolHeader(buf []byte) (ProtocolVersion, []byte, error) {
	n := min(len(buf), len(protocolLiteral))
	for i := 0; i < n; i++ {
		if buf[i] != protocolLiteral[i] {
			return ProtocolVersion{}, nil, fmt.Errorf("%w: byte 0x%02X at offset %d",
				ErrBadProtocolHeader, buf[i], i)
		}
	}
	if len(buf) < protocolHeaderLen {
		return ProtocolVersion{}, nil, incomplete(protocolHeaderLen - len(buf))
	}
	v := ProtocolVersion{Major: buf[5], Minor: buf[6], Revision: buf[7]}
	return v, buf[protocolHeaderLen:], nil
}

// DecodeRaw extracts one frame envelope without interpreting the
// payload. The payload slice borrows from buf. Once the type tag and
// channel have been read the grammar is unambiguous, so every later
// mismatch is fatal rather than retryable; only genuinely missing
// bytes produce an incomplete outcome.
func (d *Decoder) DecodeRaw(buf []byte) (RawFrame, []byte, error) {
	if len(buf) == 0 {
		return RawFrame{}, nil, incomplete(1)
	}
	typ := Type(buf[0])
	if !typ.Valid() {
		return RawFrame{}, nil, fmt.Errorf("%w: 0x%02X", ErrUnknownType, buf[0])
	}
	if len(buf) < frameHeaderLen {
		return RawFrame{}, nil, incomplete(frameHeaderLen - len(buf))
	}
	channel := binary.BigEndian.Uint16(buf[1:3])
	size := binary.BigEndian.Uint32(buf[3:7])
	if d.MaxPayloadBytes > 0 && size > d.MaxPayloadBytes {
		return RawFrame{}, nil, fmt.Errorf("%w: %d bytes declared", ErrPayloadTooLarge, size)
	}
	total := uint64(frameHeaderLen) + uint64(size) + 1
	if uint64(len(buf)) < total {
		return RawFrame{}, nil, incomplete(int(total - uint64(len(buf))))
	}
	end := frameHeaderLen + int(size)
	if buf[end] != FrameEnd {
		return RawFrame{}, nil, fmt.Errorf("%w: got 0x%02X", ErrBadFrameEnd, buf[end])
	}
	raw := RawFrame{Type: typ, Channel: channel, Payload: buf[frameHeaderLen:end]}
	return raw, buf[end+1:], nil
}

// interpret resolves an extracted envelope into its decoded variant.
// Method and content-header payloads must be consumed completely;
// leftover bytes mean the declared size and the content disagree.
func (d *Decoder) interpret(raw RawFrame) (Frame, error) {
	switch raw.Type {
	case TypeMethod:
		if d.Methods == nil {
			return nil, ErrNoMethodDecoder
		}
		payload, rest, err := d.Methods(raw.Payload)
		if err != nil {
			return nil, fmt.Errorf("frame: method payload: %w", err)
		}
		if len(rest) != 0 {
			return nil, fmt.Errorf("%w: %d bytes after method arguments", ErrTrailingBytes, len(rest))
		}
		return Method{Channel: raw.Channel, Payload: payload}, nil
	case TypeHeader:
		content, rest, err := d.decodeContentHeader(raw.Payload)
		if err != nil {
			return nil, err
		}
		if len(rest) != 0 {
			return nil, fmt.Errorf("%w: %d bytes after content header", ErrTrailingBytes, len(rest))
		}
		return Header{Channel: raw.Channel, ClassID: content.ClassID, Content: content}, nil
	case TypeBody:
		data := make([]byte, len(raw.Payload))
		copy(data, raw.Payload)
		return Body{Channel: raw.Channel, Data: data}, nil
	case TypeHeartbeat:
		// Heartbeats carry no content, so a non-empty payload is
		// ignored instead of rejected. A stricter policy belongs to
		// the connection layer.
		return Heartbeat{Channel: raw.Channel}, nil
	}
	return nil, fmt.Errorf("%w: 0x%02X", ErrUnknownType, uint8(raw.Type))
}

// class id + weight + body size
const contentHeaderLen = 12

// decodeContentHeader decodes the fixed header prefix and hands the
// remainder to the property decoder, passing its leftover through
// unchanged. The payload is already fully buffered here, so a short
// prefix is a structural error, not missing input.
func (d *Decoder) decodeContentHeader(payload []byte) (ContentHeader, []byte, error) {
	if len(payload) < contentHeaderLen {
		return ContentHeader{}, nil, fmt.Errorf("%w: %d bytes", ErrShortContentHeader, len(payload))
	}
	if d.Properties == nil {
		return ContentHeader{}, nil, ErrNoPropertyDecoder
	}
	content := ContentHeader{
		ClassID:  binary.BigEndian.Uint16(payload[0:2]),
		Weight:   binary.BigEndian.Uint16(payload[2:4]),
		BodySize: binary.BigEndian.Uint64(payload[4:12]),
	}
	props, rest, err := d.Properties(payload[contentHeaderLen:])
	if err != nil {
		return ContentHeader{}, nil, fmt.Errorf("frame: content header properties: %w", err)
	}
	content.Properties = props
	return content, rest, nil
}
