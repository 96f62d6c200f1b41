package method

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeConsumesWholePayload(t *testing.T) {
	payload := []byte{0, 60, 0, 40, 0, 0, 5, 'q', 'u', 'e', 'u', 'e'}
	inv, rest, err := Decode(payload)
	if err != nil {
		t.Fatalf("decode method: %v", err)
	}
	if inv.ClassID != 60 || inv.MethodID != 40 {
		t.Fatalf("unexpected ids: %+v", inv)
	}
	if !bytes.Equal(inv.Args, payload[4:]) {
		t.Fatalf("unexpected args: %v", inv.Args)
	}
	if len(rest) != 0 {
		t.Fatalf("method decode must consume the whole payload, %d left", len(rest))
	}
}

func TestDecodeArgsAreOwned(t *testing.T) {
	payload := []byte{0, 10, 0, 11, 42}
	inv, _, err := Decode(payload)
	if err != nil {
		t.Fatalf("decode method: %v", err)
	}
	payload[4] = 0
	if inv.Args[0] != 42 {
		t.Fatalf("args alias the payload buffer")
	}
}

func TestDecodeShortEnvelope(t *testing.T) {
	_, _, err := Decode([]byte{0, 60, 0})
	if !errors.Is(err, ErrShortMethod) {
		t.Fatalf("expected ErrShortMethod, got %v", err)
	}
}

func TestAppendDecodeRoundTrip(t *testing.T) {
	in := Invocation{ClassID: 10, MethodID: 11, Args: []byte{1, 2, 3}}
	wire := Append(nil, in)
	out, _, err := Decode(wire)
	if err != nil {
		t.Fatalf("decode method: %v", err)
	}
	if out.ClassID != in.ClassID || out.MethodID != in.MethodID || !bytes.Equal(out.Args, in.Args) {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}
