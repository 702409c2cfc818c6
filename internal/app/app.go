package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/five82/octoscout/internal/config"
	"github.com/five82/octoscout/internal/github"
	"github.com/five82/octoscout/internal/logging"
	"github.com/five82/octoscout/internal/prefs"
	"github.com/five82/octoscout/internal/state"
	"github.com/five82/octoscout/internal/ui"
)

// Options configure the octoscout application.
type Options struct {
	ConfigPath   string // empty uses ~/.config/octoscout/config.toml
	PrefsPath    string // empty uses ~/.config/octoscout/prefs.toml
	Overrides    config.Overrides
	InitialQuery string // searched immediately when non-empty
	Version      string // reported in the User-Agent header
}

// Run boots the octoscout TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = cfg.Apply(opts.Overrides)

	logger, closer, err := logging.OpenFile(cfg.LogFile, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	client, err := newClient(cfg, opts.Version, logger)
	if err != nil {
		return fmt.Errorf("init github client: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)
	ctrl := state.NewController(client, state.WithLogger(logger))

	logger.Info("octoscout starting", "api", client.BaseURL(), "theme", userPrefs.Theme)

	err = ui.Run(ui.Options{
		Context:      ctx,
		Controller:   ctrl,
		Logger:       logger,
		ThemeName:    userPrefs.Theme,
		ShowURLs:     userPrefs.ShowURLs,
		PrefsPath:    opts.PrefsPath,
		InitialQuery: opts.InitialQuery,
	})
	if ctxErr := ctx.Err(); ctxErr != nil {
		logger.Info("octoscout interrupted")
		return ctxErr
	}
	if err != nil {
		logger.Error("ui exited", "err", err)
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("octoscout stopped")
	return nil
}

// newClient builds the GitHub client for cfg. A positive request timeout
// replaces the default transport-level behaviour with a per-request deadline.
func newClient(cfg config.Config, version string, logger *log.Logger) (*github.Client, error) {
	opts := []github.Option{github.WithLogger(logger)}
	if version = strings.TrimSpace(version); version != "" {
		opts = append(opts, github.WithUserAgent("octoscout/"+version))
	}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, github.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}))
	}
	return github.NewClient(cfg.APIBaseURL, opts...)
}
