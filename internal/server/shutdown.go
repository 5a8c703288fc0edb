package server

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// waitForShutdown returns a context that is done on interrupt, terminate
// or when parent is done.
func waitForShutdown(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// Shutdown stops accepting requests, waits for in-flight ones and then
// shuts the modules down.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	slog.Info("Shutting down server...")
	err := s.E.Shutdown(ctx)
	s.shutdownModules(ctx)
	return err
}
