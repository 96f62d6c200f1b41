package basic

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestPropertiesRoundTrip(t *testing.T) {
	in := Properties{
		Flags: FlagContentType | FlagHeaders | FlagDeliveryMode | FlagCorrelationID |
			FlagTimestamp | FlagAppID,
		ContentType:   "application/json",
		Headers:       Table{"retry": int32(3)},
		DeliveryMode:  2,
		CorrelationID: "corr-17",
		Timestamp:     time.Unix(1700000000, 0).UTC(),
		AppID:         "frametap",
	}

	wire, err := AppendProperties(nil, in)
	if err != nil {
		t.Fatalf("encode properties: %v", err)
	}
	out, rest, err := DecodeProperties(wire)
	if err != nil {
		t.Fatalf("decode properties: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("expected zero leftover, got %d bytes", len(rest))
	}
	if out.Flags != in.Flags {
		t.Fatalf("flags mismatch: got %016b want %016b", out.Flags, in.Flags)
	}
	if out.ContentType != in.ContentType || out.DeliveryMode != in.DeliveryMode ||
		out.CorrelationID != in.CorrelationID || out.AppID != in.AppID {
		t.Fatalf("field mismatch: %+v", out)
	}
	if !out.Timestamp.Equal(in.Timestamp) {
		t.Fatalf("timestamp mismatch: %v", out.Timestamp)
	}
	if out.Headers["retry"] != int32(3) {
		t.Fatalf("headers mismatch: %+v", out.Headers)
	}

	again, err := AppendProperties(nil, out)
	if err != nil {
		t.Fatalf("re-encode properties: %v", err)
	}
	if !bytes.Equal(again, wire) {
		t.Fatalf("re-encoded properties differ")
	}
}

func TestDecodePropertiesEmptyFlagWord(t *testing.T) {
	out, rest, err := DecodeProperties([]byte{0, 0})
	if err != nil {
		t.Fatalf("decode empty properties: %v", err)
	}
	if out.Flags != 0 {
		t.Fatalf("expected zero flags, got %016b", out.Flags)
	}
	if len(rest) != 0 {
		t.Fatalf("expected zero leftover, got %d bytes", len(rest))
	}
}

func TestDecodePropertiesTruncated(t *testing.T) {
	_, _, err := DecodeProperties([]byte{0})
	if !errors.Is(err, ErrShortProperties) {
		t.Fatalf("expected ErrShortProperties, got %v", err)
	}

	// Flag promises a content-type string that is not there.
	wire := []byte{byte(FlagContentType >> 8), 0}
	_, _, err = DecodeProperties(wire)
	if err == nil {
		t.Fatalf("expected truncated field error")
	}
}

func TestDecodePropertiesReturnsRemainder(t *testing.T) {
	wire, err := AppendProperties(nil, Properties{Flags: FlagPriority, Priority: 5})
	if err != nil {
		t.Fatalf("encode properties: %v", err)
	}
	wire = append(wire, 0x01)
	out, rest, err := DecodeProperties(wire)
	if err != nil {
		t.Fatalf("decode properties: %v", err)
	}
	if out.Priority != 5 {
		t.Fatalf("priority mismatch: %d", out.Priority)
	}
	if !bytes.Equal(rest, []byte{0x01}) {
		t.Fatalf("unexpected remainder: %v", rest)
	}
}

func TestDecodePropertiesSkipsContinuationWords(t *testing.T) {
	// Continuation bit set on the first word; the second word carries
	// no defined properties and is discarded.
	wire := []byte{0x00, 0x01, 0x00, 0x00}
	out, rest, err := DecodeProperties(wire)
	if err != nil {
		t.Fatalf("decode continued properties: %v", err)
	}
	if out.Flags != 0x0001 {
		t.Fatalf("flags mismatch: %016b", out.Flags)
	}
	if len(rest) != 0 {
		t.Fatalf("expected zero leftover, got %d bytes", len(rest))
	}
}
