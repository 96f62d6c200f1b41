package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadTapConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
node = "edge-a"
listen_addr = ":6672"
admin_addr = ":9900"
cors_origins = ["https://ops.example.com"]
max_payload_bytes = 1024
read_chunk_bytes = 512
`)
	cfg, err := LoadTapConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Node != "edge-a" || cfg.ListenAddr != ":6672" || cfg.AdminAddr != ":9900" {
		t.Fatalf("unexpected addresses: %+v", cfg)
	}
	if cfg.MaxPayloadBytes != 1024 || cfg.ReadChunkBytes != 512 {
		t.Fatalf("unexpected limits: %+v", cfg)
	}
	if len(cfg.CorsOrigins) != 1 || cfg.CorsOrigins[0] != "https://ops.example.com" {
		t.Fatalf("unexpected cors origins: %v", cfg.CorsOrigins)
	}
}

func TestLoadTapConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `node = "edge-b"`)
	cfg, err := LoadTapConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	want := DefaultTapConfig()
	if cfg.ListenAddr != want.ListenAddr || cfg.AdminAddr != want.AdminAddr {
		t.Fatalf("defaults not kept: %+v", cfg)
	}
	if cfg.MaxPayloadBytes != want.MaxPayloadBytes {
		t.Fatalf("default payload cap not kept: %d", cfg.MaxPayloadBytes)
	}
}

func TestLoadTapConfigMissingFile(t *testing.T) {
	if _, err := LoadTapConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected missing-file error")
	}
}

func TestValidateTapConfig(t *testing.T) {
	cfg := DefaultTapConfig()
	if err := ValidateTapConfig(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	cfg.Node = "  "
	if err := ValidateTapConfig(cfg); err == nil {
		t.Fatalf("expected empty-node error")
	}

	cfg = DefaultTapConfig()
	cfg.ListenAddr = ""
	if err := ValidateTapConfig(cfg); err == nil {
		t.Fatalf("expected empty-listen-addr error")
	}

	cfg = DefaultTapConfig()
	cfg.ReadChunkBytes = -1
	if err := ValidateTapConfig(cfg); err == nil {
		t.Fatalf("expected negative-chunk error")
	}
}

func TestTemplateParsesAndValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := LoadTapConfig(path)
	if err != nil {
		t.Fatalf("template should load cleanly: %v", err)
	}
	if cfg.Node != "frametap" {
		t.Fatalf("unexpected template node: %q", cfg.Node)
	}
}

func TestWriteTemplateRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected overwrite refusal")
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Fatalf("forced overwrite: %v", err)
	}
}
