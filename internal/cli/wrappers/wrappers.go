package wrappers

import "github.com/danieljhkim/churnguard/internal/config"

// PathsGetter is a function that returns the Paths instance
type PathsGetter func() *config.Paths
