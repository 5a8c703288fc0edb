// Package app assembles the application's services from configuration.
package app

import (
	"fmt"
	"log/slog"

	"github.com/nfrund/friends/internal/apiclient"
	"github.com/nfrund/friends/internal/config"
	"github.com/nfrund/friends/internal/i18n"
	"github.com/nfrund/friends/internal/pubsub"
	"github.com/nfrund/friends/internal/registry"
	"github.com/nfrund/friends/internal/server"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
)

// Dependencies holds the core services that are required by the application's modules.
type Dependencies struct {
	API        *apiclient.Client
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
}

// NewInjector registers every core service with a DI container. Services
// are built lazily on first invocation.
func NewInjector(cfg config.Provider, version string) *do.RootScope {
	i := do.New()
	do.ProvideValue(i, cfg)
	do.Provide(i, provideAPIClient)
	do.Provide(i, provideBundle)
	do.Provide(i, provideBus)
	do.Provide(i, provideRegistry)
	do.Provide(i, func(i do.Injector) (*server.Server, error) {
		return provideServer(i, version)
	})
	return i
}

func provideAPIClient(i do.Injector) (*apiclient.Client, error) {
	cfg := do.MustInvoke[config.Provider](i)
	return apiclient.New(cfg.GetAPIBaseURL(), apiclient.WithTimeout(cfg.GetAPITimeout()))
}

// provideBundle loads catalogs from LOCALES_DIR when set, otherwise the
// embedded ones.
func provideBundle(i do.Injector) (*i18n.Bundle, error) {
	cfg := do.MustInvoke[config.Provider](i)
	if dir := cfg.GetLocalesDir(); dir != "" {
		slog.Info("Loading locale catalogs from disk", "directory", dir)
		return i18n.Load(afero.NewOsFs(), dir, cfg.GetLocale())
	}
	return i18n.Load(i18n.Embedded(), i18n.EmbeddedRoot, cfg.GetLocale())
}

// provideBus returns the in-memory event bus. The container closes it on
// shutdown.
func provideBus(i do.Injector) (*pubsub.WatermillBridge, error) {
	cfg := do.MustInvoke[config.Provider](i)
	return pubsub.NewWatermillBridge(cfg.GetLogFormat() != "json"), nil
}

func provideRegistry(i do.Injector) (*registry.Registry, error) {
	reg := registry.New(do.MustInvoke[config.Provider](i))
	api, err := do.Invoke[*apiclient.Client](i)
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}
	registry.Set(reg, registry.APIClientKey, api)
	registry.Set(reg, registry.BundleKey, do.MustInvoke[*i18n.Bundle](i))
	return reg, nil
}

// provideServer resolves the shared services through the registry, the same
// way modules see them.
func provideServer(i do.Injector, version string) (*server.Server, error) {
	reg, err := do.Invoke[*registry.Registry](i)
	if err != nil {
		return nil, err
	}
	api := registry.MustGet(reg, registry.APIClientKey)
	bundle := registry.MustGet(reg, registry.BundleKey)
	bus := do.MustInvoke[*pubsub.WatermillBridge](i)

	return server.New(server.Dependencies{
		Config:   do.MustInvoke[config.Provider](i),
		Registry: reg,
		Bundle:   bundle,
		Auth:     api,
		Modules: NewModules(Dependencies{
			API:        api,
			Publisher:  bus,
			Subscriber: bus,
		}),
		Version: version,
	}), nil
}
