// Package app wires configuration, storage, notification sinks and the API
// client into the runtime used by the gallery CLI.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/samvad-hq/gallery-client/internal/config"
	"github.com/samvad-hq/gallery-client/internal/credential"
	"github.com/samvad-hq/gallery-client/internal/logger"
	"github.com/samvad-hq/gallery-client/pkg/apiclient"
	"github.com/samvad-hq/gallery-client/pkg/gallery"
	"github.com/samvad-hq/gallery-client/pkg/notifiers"
	"github.com/samvad-hq/gallery-client/pkg/terminal"
)

// IO holds the terminal streams. Toasts and prompts go to Err so command
// output on Out stays machine readable.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// App is the assembled client runtime.
type App struct {
	Client   *apiclient.Client
	Session  *gallery.Session
	Gallery  *gallery.Service
	Uploads  *gallery.UploadService
	Toaster  *terminal.Toaster
	Redirect *terminal.LoginRedirect

	store credential.Store
	sinks []notifiers.Publisher
	log   logger.Logger
}

// New builds the runtime from cfg.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, streams IO) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	log = logger.Ensure(log)

	store, err := credential.NewStore(cfg.CredentialStore, cfg.CredentialPath, credential.Options{
		Key: cfg.CredentialKey,
		TTL: cfg.CredentialTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("init credential store: %w", err)
	}
	log.DebugObj("credential store initialized", "credential_store", map[string]any{
		"type":        cfg.CredentialStore,
		"path":        cfg.CredentialPath,
		"ttl_seconds": int(cfg.CredentialTTL.Seconds()),
	})

	sinks, err := buildSinks(ctx, cfg.NotifiersFile, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	toaster := terminal.NewToaster(streams.Err)
	redirect := terminal.NewLoginRedirect(store, streams.Err)

	client := apiclient.New(apiclient.Options{
		BaseURL:       cfg.APIBaseURL,
		Timeout:       cfg.RequestTimeout,
		ToastDuration: cfg.ToastDuration,
		LoginPath:     cfg.LoginPath,
		Credentials:   store,
		Notifier:      notifiers.NewFanoutNotifier(toaster, notifiers.NewFanout(sinks), log),
		Dialog:        terminal.NewPrompt(streams.In, streams.Err),
		Navigator:     redirect,
		Loading:       terminal.NewSpinner(streams.Err),
		Logger:        log,
	})

	return &App{
		Client:   client,
		Session:  gallery.NewSession(gallery.NewAuthService(client), store, log),
		Gallery:  gallery.NewService(client),
		Uploads:  gallery.NewUploadService(client),
		Toaster:  toaster,
		Redirect: redirect,
		store:    store,
		sinks:    sinks,
		log:      log,
	}, nil
}

func buildSinks(ctx context.Context, path string, log logger.Logger) ([]notifiers.Publisher, error) {
	if path == "" {
		return nil, nil
	}
	reg, err := notifiers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load notifiers registry: %w", err)
	}
	enabled := reg.Enabled()
	pubs, err := notifiers.BuildAll(ctx, notifiers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build notifiers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, c := range enabled {
		summaries = append(summaries, map[string]string{"id": c.ID, "type": c.Type})
	}
	log.InfoObj("notifiers registry loaded", "notifiers_meta", map[string]any{
		"count": len(summaries),
		"sinks": summaries,
	})
	return pubs, nil
}

// Close releases the credential store and sink connections.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	notifiers.CloseAll(a.sinks)
	if a.store == nil {
		return nil
	}
	if err := a.store.Close(); err != nil {
		return fmt.Errorf("close credential store: %w", err)
	}
	a.log.DebugObj("runtime closed", "app_close", map[string]any{"sinks": len(a.sinks)})
	return nil
}
