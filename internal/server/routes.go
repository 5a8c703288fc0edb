package server

import (
	"github.com/nfrund/friends/internal/friends"
	"github.com/nfrund/friends/internal/handlers"
	"github.com/nfrund/friends/internal/middleware"
	"github.com/nfrund/friends/internal/registry"
	"golang.org/x/time/rate"
)

// RegisterRoutes sets up the routes owned by the server itself. Module
// routes are mounted by Boot.
func (s *Server) RegisterRoutes() {
	// Logout drops the viewer's friends state when that module is loaded.
	var forget handlers.ViewerForgetter
	if viewers, ok := registry.Get(s.reg, friends.ViewersKey); ok {
		forget = viewers
	}
	authHandler := handlers.NewAuthHandler(s.auth, forget)
	rateLimiter := middleware.RateLimiter(rate.Limit(1), 10)

	s.E.GET("/", s.homeHandler.HomeGet)

	auth := s.E.Group("/auth")
	auth.POST("/login", authHandler.LoginPost, rateLimiter)
	auth.POST("/register", authHandler.RegisterPost, rateLimiter)
	auth.POST("/logout", authHandler.Logout)

	s.E.GET("/health", s.healthHandler.HealthGet)
}
