// Package frame decodes the AMQP 0-9-1 framing layer: the byte stream
// received from a peer becomes a sequence of typed frames, plus the
// version-negotiation handshake seen at connection start.
//
// Every decode call is a pure function over "the bytes available so
// far" with a three-way outcome: a decoded Frame plus the exact
// unconsumed remainder, an incomplete error (more input required,
// see ErrIncomplete), or a fatal error that must terminate the
// connection. The package holds no buffering; the caller owns the
// receive buffer and retries from its start after appending input.
//
// Method arguments and content-header property tables are decoded by
// collaborators supplied on the Decoder; this package only enforces
// that they consume their payload completely.
package frame
