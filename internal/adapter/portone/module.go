package portone

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/minseo-cho/gomall/internal/config"
)

// Module exposes the gateway client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.GatewayBaseURL, p.Config.GatewayAPIKey, p.Config.GatewayAPISecret, p.Logger)
}
