package frame

import (
	"bytes"
	"testing"
)

func testEncoder() *Encoder {
	return &Encoder{
		Methods: func(p MethodPayload) ([]byte, error) {
			return p.([]byte), nil
		},
		Properties: func(p PropertyTable) ([]byte, error) {
			return p.([]byte), nil
		},
	}
}

func TestAppendProtocolHeaderBytes(t *testing.T) {
	out := AppendProtocolHeader(nil, ProtocolVersion{Major: 0, Minor: 9, Revision: 1})
	want := []byte{'A', 'M', 'Q', 'P', 0, 0, 9, 1}
	if !bytes.Equal(out, want) {
		t.Fatalf("unexpected handshake bytes: %v", out)
	}
}

func TestEncodeDecodeRoundTripAllVariants(t *testing.T) {
	frames := []Frame{
		ProtocolHeader{Version: ProtocolVersion{Major: 0, Minor: 9, Revision: 1}},
		Method{Channel: 1, Payload: []byte{0, 60, 0, 40, 1, 2}},
		Header{Channel: 2, ClassID: 60, Content: ContentHeader{ClassID: 60, Weight: 0, BodySize: 9, Properties: []byte{9, 8}}},
		Body{Channel: 3, Data: []byte("fragment")},
		Heartbeat{Channel: 4},
	}

	enc := testEncoder()
	dec := testDecoder()
	for _, in := range frames {
		wire, err := enc.Append(nil, in)
		if err != nil {
			t.Fatalf("%s: encode: %v", Kind(in), err)
		}
		out, rest, err := dec.Decode(wire)
		if err != nil {
			t.Fatalf("%s: decode: %v", Kind(in), err)
		}
		if len(rest) != 0 {
			t.Fatalf("%s: expected zero leftover, got %d bytes", Kind(in), len(rest))
		}
		reencoded, err := enc.Append(nil, out)
		if err != nil {
			t.Fatalf("%s: re-encode: %v", Kind(in), err)
		}
		if !bytes.Equal(reencoded, wire) {
			t.Fatalf("%s: round trip mismatch:\n got %v\nwant %v", Kind(in), reencoded, wire)
		}
	}
}

func TestEncodeHeartbeatIsEightBytes(t *testing.T) {
	wire, err := testEncoder().Append(nil, Heartbeat{Channel: 1})
	if err != nil {
		t.Fatalf("encode heartbeat: %v", err)
	}
	if len(wire) != 8 {
		t.Fatalf("heartbeat should be 8 wire bytes, got %d", len(wire))
	}
	if !bytes.Equal(wire, []byte{8, 0, 1, 0, 0, 0, 0, 206}) {
		t.Fatalf("unexpected heartbeat bytes: %v", wire)
	}
}

func TestEncodeWithoutCollaboratorsFails(t *testing.T) {
	var enc Encoder
	if _, err := enc.Append(nil, Method{Channel: 1, Payload: []byte{}}); err == nil {
		t.Fatalf("expected method encode to fail without a collaborator")
	}
	if _, err := enc.Append(nil, Header{Channel: 1}); err == nil {
		t.Fatalf("expected header encode to fail without a collaborator")
	}
}
