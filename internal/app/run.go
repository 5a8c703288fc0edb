package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/friends/internal/config"
	"github.com/nfrund/friends/internal/i18n"
	"github.com/nfrund/friends/internal/server"
	"github.com/samber/do/v2"
)

// Build resolves the server from a fresh container with modules booted and
// routes registered. The caller shuts the container down when done.
func Build(ctx context.Context, cfg config.Provider, version string) (*server.Server, *do.RootScope, error) {
	injector := NewInjector(cfg, version)

	s, err := do.Invoke[*server.Server](injector)
	if err != nil {
		injector.Shutdown()
		return nil, nil, fmt.Errorf("build server: %w", err)
	}
	if err := s.Boot(ctx); err != nil {
		injector.Shutdown()
		return nil, nil, err
	}
	s.RegisterRoutes()
	return s, injector, nil
}

// Run builds the application and serves until ctx is canceled or the
// process is interrupted.
func Run(ctx context.Context, cfg config.Provider, version string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s, injector, err := Build(ctx, cfg, version)
	if err != nil {
		return err
	}
	defer func() {
		if report := injector.Shutdown(); report != nil && !report.Succeed {
			slog.Error("Service shutdown reported errors", "report", report.Error())
		}
	}()

	if dir := cfg.GetLocalesDir(); dir != "" {
		bundle := do.MustInvoke[*i18n.Bundle](injector)
		if err := bundle.Watch(ctx, dir); err != nil {
			slog.Warn("Locale hot reload disabled", "error", err)
		}
	}

	return s.Start(ctx)
}
