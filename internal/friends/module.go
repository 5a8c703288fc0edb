package friends

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/friends/internal/module"
	"github.com/nfrund/friends/internal/pubsub"
	"github.com/nfrund/friends/internal/registry"
)

// ViewersKey exposes the per-viewer controllers, e.g. to drop them on logout.
var ViewersKey = registry.Key[*Viewers]("friends.viewers")

// Module wires the friends region into the server.
type Module struct {
	module.BaseModule
	users      UserDirectory
	publisher  pubsub.Publisher
	subscriber pubsub.Subscriber
	viewers    *Viewers
}

// Dependencies holds the services the friends module requires.
type Dependencies struct {
	Users      UserDirectory
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
}

// New creates the friends module. Transitions are published only when a
// Publisher is given.
func New(deps Dependencies) *Module {
	m := &Module{
		users:      deps.Users,
		publisher:  deps.Publisher,
		subscriber: deps.Subscriber,
	}
	var onChange TransitionFunc
	if deps.Publisher != nil {
		onChange = PublishTransitions(deps.Publisher)
	}
	m.viewers = NewViewers(deps.Users, onChange)
	return m
}

// Name returns the module name, which is also its route prefix.
func (m *Module) Name() string {
	return "friends"
}

// Viewers returns the module's controllers.
func (m *Module) Viewers() *Viewers {
	return m.viewers
}

// Register publishes the controllers in the registry.
func (m *Module) Register(reg *registry.Registry) error {
	registry.Set(reg, ViewersKey, m.viewers)
	slog.Info("Friends module registered")
	return nil
}

// Boot mounts the fragment routes and starts the transition logger.
func (m *Module) Boot(ctx context.Context, grp *echo.Group, reg *registry.Registry) error {
	if m.subscriber != nil {
		if err := pubsub.Subscribe(ctx, m.subscriber, ViewChangedEvent, LogTransitions); err != nil {
			return err
		}
	}

	slog.Info("Booting friends module: setting up routes...")
	handler := NewHandler(m.viewers)
	grp.GET("", handler.ActivateGet)
	grp.GET("/users", handler.SearchGet)
	grp.GET("/users/:id", handler.UserGet)
	grp.GET("/back", handler.BackGet)
	return nil
}

// Shutdown logs how many viewers were active.
func (m *Module) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down friends module...", "viewers", m.viewers.Len())
	return nil
}
