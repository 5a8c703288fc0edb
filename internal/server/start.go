package server

import (
	"context"
	"errors"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Start runs the HTTP server until ctx is canceled or the process receives
// an interrupt, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := s.Cfg.GetServerAddr()
	logStartup(addr, s.modules)

	errCh := make(chan error, 1)
	go func() {
		if err := s.E.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCtx, stop := waitForShutdown(ctx)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-sigCtx.Done():
	}
	return s.Shutdown()
}
