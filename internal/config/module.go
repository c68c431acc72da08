package config

import "go.uber.org/fx"

// Module supplies the loaded configuration to fx graphs.
var Module = fx.Provide(Load)
