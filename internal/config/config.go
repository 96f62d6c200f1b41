package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// TapConfig configures one frametapd instance.
type TapConfig struct {
	Node            string   `toml:"node"`
	ListenAddr      string   `toml:"listen_addr"`
	AdminAddr       string   `toml:"admin_addr"`
	CorsOrigins     []string `toml:"cors_origins"`
	MaxPayloadBytes uint32   `toml:"max_payload_bytes"`
	ReadChunkBytes  int      `toml:"read_chunk_bytes"`
}

func DefaultTapConfig() TapConfig {
	return TapConfig{
		Node:            "frametap",
		ListenAddr:      ":5672",
		AdminAddr:       ":9472",
		MaxPayloadBytes: 8 * 1024 * 1024,
		ReadChunkBytes:  4096,
	}
}

func LoadTapConfig(path string) (TapConfig, error) {
	cfg := DefaultTapConfig()
	if err := loadToml(path, &cfg); err != nil {
		return TapConfig{}, err
	}
	if err := ValidateTapConfig(cfg); err != nil {
		return TapConfig{}, err
	}
	return cfg, nil
}

func ValidateTapConfig(cfg TapConfig) error {
	if strings.TrimSpace(cfg.Node) == "" {
		return fmt.Errorf("config: node must not be empty")
	}
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return fmt.Errorf("config: listen_addr must not be empty")
	}
	if cfg.ReadChunkBytes < 0 {
		return fmt.Errorf("config: read_chunk_bytes must not be negative")
	}
	return nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}
