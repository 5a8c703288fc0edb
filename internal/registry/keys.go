package registry

import (
	"github.com/nfrund/friends/internal/apiclient"
	"github.com/nfrund/friends/internal/i18n"
)

// Core services shared by every module. Module-owned services declare their
// keys in their own package.
var (
	APIClientKey = Key[*apiclient.Client]("core.apiclient")
	BundleKey    = Key[*i18n.Bundle]("core.i18n")
)
