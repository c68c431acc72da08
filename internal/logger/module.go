package logger

import "go.uber.org/fx"

// Module provides the application logger to fx graphs.
var Module = fx.Provide(New)
