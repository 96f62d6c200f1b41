package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/wireline-io/amqframe/internal/config"
)

// frametapd config.toml key mapping onto tap runtime settings.
type fileConfig struct {
	Node            string   `toml:"node"`
	ListenAddr      string   `toml:"listen_addr"`
	AdminAddr       string   `toml:"admin_addr"`
	CorsOrigins     []string `toml:"cors_origins"`
	MaxPayloadBytes uint32   `toml:"max_payload_bytes"`
	ReadChunkBytes  int      `toml:"read_chunk_bytes"`
}

// loadTapConfig overlays file values onto defaults; keys absent from
// the file keep their default.
func loadTapConfig(path string) (config.TapConfig, error) {
	cfg := config.DefaultTapConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config.TapConfig{}, fmt.Errorf("load tap config: %w", err)
	}

	if meta.IsDefined("node") {
		cfg.Node = strings.TrimSpace(raw.Node)
	}
	if meta.IsDefined("listen_addr") {
		cfg.ListenAddr = strings.TrimSpace(raw.ListenAddr)
	}
	if meta.IsDefined("admin_addr") {
		cfg.AdminAddr = strings.TrimSpace(raw.AdminAddr)
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = raw.CorsOrigins
	}
	if meta.IsDefined("max_payload_bytes") {
		cfg.MaxPayloadBytes = raw.MaxPayloadBytes
	}
	if meta.IsDefined("read_chunk_bytes") {
		cfg.ReadChunkBytes = raw.ReadChunkBytes
	}

	if err := config.ValidateTapConfig(cfg); err != nil {
		return config.TapConfig{}, err
	}
	return cfg, nil
}
