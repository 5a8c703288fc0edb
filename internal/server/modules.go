package server

import (
	"context"
	"fmt"
	"log/slog"
)

// Boot registers every module's services, then boots each module under
// its own route group. Registration completes for all modules before any
// of them boots.
func (s *Server) Boot(ctx context.Context) error {
	for _, m := range s.modules {
		if err := m.Register(s.reg); err != nil {
			return fmt.Errorf("register module %s: %w", m.Name(), err)
		}
	}
	for _, m := range s.modules {
		if err := m.Boot(ctx, s.E.Group("/"+m.Name()), s.reg); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
	}
	return nil
}

// shutdownModules stops the modules in reverse boot order.
func (s *Server) shutdownModules(ctx context.Context) {
	for i := len(s.modules) - 1; i >= 0; i-- {
		m := s.modules[i]
		if err := m.Shutdown(ctx); err != nil {
			slog.Error("Module shutdown failed", "module", m.Name(), "error", err)
		}
	}
}
