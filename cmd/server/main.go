package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nfrund/friends/internal/app"
	"github.com/nfrund/friends/internal/config"
	"github.com/nfrund/friends/internal/logging"
	"github.com/spf13/cobra"
)

// version is set at build time.
// Example: go build -ldflags "-X 'main.version=1.0.0'"
var version = "dev"

func newRootCmd() *cobra.Command {
	var (
		addr       string
		logFormat  string
		localesDir string
	)

	cmd := &cobra.Command{
		Use:           "friends-server",
		Short:         "Serve the friends finder web frontend",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}
			// Flags win over the environment.
			if cmd.Flags().Changed("addr") {
				cfg.ServerAddr = addr
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			if cmd.Flags().Changed("locales-dir") {
				cfg.LocalesDir = localesDir
			}

			logging.New(cfg.GetLogFormat())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx, cfg, version)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (overrides SERVER_ADDR)")
	cmd.Flags().StringVar(&logFormat, "log-format", "text", "log format: text or json (overrides LOG_FORMAT)")
	cmd.Flags().StringVar(&localesDir, "locales-dir", "", "load and hot-reload locale catalogs from this directory (overrides LOCALES_DIR)")
	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
