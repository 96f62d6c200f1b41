package main

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"

	"github.com/rs/zerolog"

	"github.com/wireline-io/amqframe/internal/config"
	"github.com/wireline-io/amqframe/internal/conn"
	"github.com/wireline-io/amqframe/internal/observability"
	"github.com/wireline-io/amqframe/internal/protocol/frame"
)

// tap accepts raw TCP connections and decodes the framing layer off
// each one, recording what it sees. It never replies; peers that
// expect a broker will time out on their own.
type tap struct {
	cfg config.TapConfig
	log zerolog.Logger

	mu    sync.Mutex
	stats tapStats
}

type tapStats struct {
	Connections uint64            `json:"connections"`
	Frames      uint64            `json:"frames"`
	WireBytes   uint64            `json:"wire_bytes"`
	Errors      uint64            `json:"errors"`
	ByKind      map[string]uint64 `json:"by_kind"`
}

func newTap(cfg config.TapConfig, log zerolog.Logger) *tap {
	return &tap{
		cfg:   cfg,
		log:   log,
		stats: tapStats{ByKind: map[string]uint64{}},
	}
}

func (t *tap) listen(ctx context.Context) error {
	listener, err := net.Listen("tcp", t.cfg.ListenAddr)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		listener.Close()
	}()
	t.log.Info().Str("addr", t.cfg.ListenAddr).Msg("tap_listening")

	for {
		c, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go t.serveConn(c)
	}
}

func (t *tap) serveConn(c net.Conn) {
	defer c.Close()

	peer := c.RemoteAddr().String()
	log := t.log.With().Str("peer", peer).Logger()
	t.countConnection()
	log.Info().Msg("peer_connected")

	reader := conn.NewReader(c, conn.Config{
		MaxPayloadBytes: t.cfg.MaxPayloadBytes,
		ReadChunkBytes:  t.cfg.ReadChunkBytes,
		Logger:          log,
	})

	var lastBytes uint64
	for {
		f, err := reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Info().Uint64("frames", reader.Frames()).Msg("peer_disconnected")
				return
			}
			t.countError()
			observability.RecordDecodeError(t.cfg.Node)
			log.Warn().Err(err).Uint64("frames", reader.Frames()).Msg("stream_terminated")
			return
		}
		kind := frame.Kind(f)
		wire := int(reader.Bytes() - lastBytes)
		lastBytes = reader.Bytes()
		t.countFrame(kind, wire)
		observability.RecordFrame(t.cfg.Node, kind, wire)
	}
}

func (t *tap) countConnection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats.Connections++
}

func (t *tap) countFrame(kind string, wire int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats.Frames++
	t.stats.WireBytes += uint64(wire)
	t.stats.ByKind[kind]++
}

func (t *tap) countError() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats.Errors++
}

func (t *tap) snapshot() tapStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.stats
	out.ByKind = make(map[string]uint64, len(t.stats.ByKind))
	for k, v := range t.stats.ByKind {
		out.ByKind[k] = v
	}
	return out
}
