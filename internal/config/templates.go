package config

import (
	"fmt"
	"os"
)

const tapTemplate = `# frametapd configuration
node = "frametap"

# TCP address the wire tap listens on.
listen_addr = ":5672"

# Admin HTTP API (health, stats, prometheus metrics).
admin_addr = ":9472"
cors_origins = ["http://localhost:3000"]

# Frames declaring a larger payload are rejected as fatal.
max_payload_bytes = 8388608

# Socket read chunk size.
read_chunk_bytes = 4096
`

func Template() string {
	return tapTemplate
}

func WriteTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config: %s exists (use force to overwrite)", path)
		}
	}
	return os.WriteFile(path, []byte(tapTemplate), 0o644)
}
