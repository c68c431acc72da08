package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/minseo-cho/gomall/internal/config"
)

// Module provides the order event publisher: kafka backed when brokers are
// configured, no-op otherwise.
var Module = fx.Options(
	fx.Provide(newPublisher),
	fx.Invoke(registerLifecycle),
)

type params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newPublisher(p params) Publisher {
	if len(p.Config.KafkaBrokers) == 0 {
		return NopPublisher{}
	}
	return NewKafkaPublisher(p.Config.KafkaBrokers, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, publisher Publisher) {
	kp, ok := publisher.(*KafkaPublisher)
	if !ok {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return kp.Close()
		},
	})
}
