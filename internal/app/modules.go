package app

import (
	"github.com/nfrund/friends/internal/friends"
	"github.com/nfrund/friends/internal/module"
)

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
func NewModules(deps Dependencies) []module.Module {
	return []module.Module{
		friends.New(friendsDeps(deps)),
	}
}

// friendsDeps creates the dependency struct for the friends module.
func friendsDeps(deps Dependencies) friends.Dependencies {
	return friends.Dependencies{
		Users:      deps.API,
		Publisher:  deps.Publisher,
		Subscriber: deps.Subscriber,
	}
}
