package router

import "go.uber.org/fx"

// Module registers the HTTP router constructor with fx.
var Module = fx.Provide(Setup)
