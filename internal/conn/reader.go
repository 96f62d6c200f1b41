// Package conn drives the pure framing decoder over a byte stream. It
// owns the growable receive buffer the decoder itself refuses to
// hold: newly received bytes are appended and the decode is retried
// from the buffer start until a full frame is present.
package conn

import (
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/wireline-io/amqframe/internal/protocol/basic"
	"github.com/wireline-io/amqframe/internal/protocol/frame"
	"github.com/wireline-io/amqframe/internal/protocol/method"
)

const defaultReadChunk = 4096

// Heartbeat frames occupy exactly eight wire bytes when their payload
// is empty, as the protocol intends.
const heartbeatWireLen = 8

// Config sets Reader construction knobs. The zero value is usable.
type Config struct {
	// MaxPayloadBytes caps the declared payload size of any frame.
	// Zero means no cap.
	MaxPayloadBytes uint32

	// ReadChunkBytes sizes each read from the source.
	ReadChunkBytes int

	Logger zerolog.Logger
}

// Reader decodes frames from an io.Reader, one call per frame. It is
// not safe for concurrent use; one Reader serves one connection.
type Reader struct {
	src   io.Reader
	dec   frame.Decoder
	log   zerolog.Logger
	buf   []byte
	chunk int

	frames uint64
	bytes  uint64
}

// NewReader wires the default collaborators (generic method envelope,
// basic-class properties) into a frame decoder over src.
func NewReader(src io.Reader, cfg Config) *Reader {
	chunk := cfg.ReadChunkBytes
	if chunk <= 0 {
		chunk = defaultReadChunk
	}
	r := &Reader{src: src, log: cfg.Logger, chunk: chunk}
	r.dec = frame.Decoder{
		MaxPayloadBytes: cfg.MaxPayloadBytes,
		Methods: func(payload []byte) (frame.MethodPayload, []byte, error) {
			inv, rest, err := method.Decode(payload)
			return inv, rest, err
		},
		Properties: func(payload []byte) (frame.PropertyTable, []byte, error) {
			props, rest, err := basic.DecodeProperties(payload)
			return props, rest, err
		},
	}
	return r
}

// Next returns the next decoded frame. It reads from the source only
// when the buffered bytes are an incomplete prefix, so back-to-back
// frames arriving in one read are drained without further I/O. A
// clean end of stream between frames is io.EOF; an end of stream
// inside a frame is io.ErrUnexpectedEOF. Any other error is fatal and
// the Reader must be discarded.
func (r *Reader) Next() (frame.Frame, error) {
	for {
		needed := 1
		if len(r.buf) > 0 {
			f, rest, err := r.dec.Decode(r.buf)
			if err == nil {
				consumed := len(r.buf) - len(rest)
				r.buf = rest
				r.frames++
				r.bytes += uint64(consumed)
				r.observe(f, consumed)
				return f, nil
			}
			if !errors.Is(err, frame.ErrIncomplete) {
				return nil, err
			}
			if n, ok := frame.NeededBytes(err); ok && n > needed {
				needed = n
			}
		}
		if err := r.fill(needed); err != nil {
			return nil, err
		}
	}
}

// Frames reports how many frames this Reader has decoded.
func (r *Reader) Frames() uint64 { return r.frames }

// Bytes reports how many wire bytes decoded frames have consumed.
func (r *Reader) Bytes() uint64 { return r.bytes }

// fill reads from the source until at least needed further bytes are
// buffered; the decoder's byte count is a floor, not a retry budget.
func (r *Reader) fill(needed int) error {
	size := r.chunk
	if needed > size {
		size = needed
	}
	chunk := make([]byte, size)
	n, err := io.ReadAtLeast(r.src, chunk, needed)
	if n > 0 {
		r.buf = append(r.buf, chunk[:n]...)
	}
	if err == nil {
		return nil
	}
	if (errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)) && len(r.buf) > 0 {
		return io.ErrUnexpectedEOF
	}
	return err
}

func (r *Reader) observe(f frame.Frame, consumed int) {
	event := r.log.Debug().Str("frame", frame.Kind(f)).Int("wire_bytes", consumed)
	switch fr := f.(type) {
	case frame.ProtocolHeader:
		event = event.Str("proposed_version", fr.Version.String())
	case frame.Heartbeat:
		if consumed > heartbeatWireLen {
			// Tolerated but worth surfacing for connection policy.
			event = event.Int("ignored_payload_bytes", consumed-heartbeatWireLen)
		}
	}
	event.Msg("frame_decoded")
}
