package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/friends/internal/config"
	"github.com/nfrund/friends/internal/handlers"
	"github.com/nfrund/friends/internal/i18n"
	appmiddleware "github.com/nfrund/friends/internal/middleware"
	"github.com/nfrund/friends/internal/module"
	"github.com/nfrund/friends/internal/registry"
	"github.com/nfrund/friends/internal/rendering"
	"github.com/nfrund/friends/internal/view"
	"github.com/nfrund/friends/web"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E       *echo.Echo
	Cfg     config.Provider
	reg     *registry.Registry
	modules []module.Module

	auth          handlers.Authenticator
	homeHandler   *handlers.HomeHandler
	healthHandler *handlers.HealthHandler
}

// Dependencies holds the services the server is assembled from.
type Dependencies struct {
	Config   config.Provider
	Registry *registry.Registry
	Bundle   *i18n.Bundle
	Auth     handlers.Authenticator
	Modules  []module.Module
	Version  string
}

// New creates a new Server instance with its middleware chain in place.
// Routes are added by RegisterRoutes and Boot.
func New(deps Dependencies) *Server {
	cfg := deps.Config

	e := echo.New()
	e.HideBanner = true
	e.Renderer = rendering.NewUniversalRenderer()
	e.Validator = handlers.NewValidator()
	setupErrorHandling(e)

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())

	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.GetSecureCookies(),
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))
	e.Use(appmiddleware.Logger)
	e.Use(view.UseLocale(deps.Bundle))

	// Static assets are embedded in the binary.
	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	return &Server{
		E:             e,
		Cfg:           cfg,
		reg:           deps.Registry,
		modules:       deps.Modules,
		auth:          deps.Auth,
		homeHandler:   handlers.NewHomeHandler(),
		healthHandler: handlers.NewHealthHandler(deps.Version),
	}
}

// Registry returns the service registry shared with the modules.
func (s *Server) Registry() *registry.Registry {
	return s.reg
}

func logStartup(addr string, modules []module.Module) {
	names := make([]string, 0, len(modules))
	for _, m := range modules {
		names = append(names, m.Name())
	}
	slog.Info("Starting server", "addr", addr, "modules", names)
}
