package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/gallery-client/internal/app"
	"github.com/samvad-hq/gallery-client/internal/config"
	"github.com/samvad-hq/gallery-client/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads config and logging and assembles the runtime.
func bootstrap(ctx context.Context, streams app.IO) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log.DebugObj("gallery client starting", "config", map[string]any{
		"api_base_url":     cfg.APIBaseURL,
		"request_timeout":  cfg.RequestTimeout.String(),
		"credential_store": cfg.CredentialStore,
		"notifiers_file":   cfg.NotifiersFile,
	})

	a, err := app.New(ctx, cfg, log, streams)
	if err != nil {
		log.ErrorObj("failed to initialize client", "error", err.Error())
		return nil, err
	}
	return a, nil
}
