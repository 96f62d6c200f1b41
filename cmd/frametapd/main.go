package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/wireline-io/amqframe/internal/config"
	"github.com/wireline-io/amqframe/internal/logging"
	"github.com/wireline-io/amqframe/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml (defaults apply when empty)")
	flag.Parse()

	logging.ConfigureRuntime()
	logger := log.With().Str("app", "frametapd").Logger()

	cfg := config.DefaultTapConfig()
	if *configPath != "" {
		loaded, err := loadTapConfig(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("config_load_failed")
		}
		cfg = loaded
	}

	observability.RegisterMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t := newTap(cfg, logger)

	errs := make(chan error, 2)
	go func() { errs <- t.listen(ctx) }()
	go func() { errs <- serveAdmin(ctx, t, logger) }()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting_down")
	case err := <-errs:
		if err != nil {
			logger.Fatal().Err(err).Msg("runtime_failure")
		}
	}
}
