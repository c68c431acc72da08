package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/minseo-cho/gomall/internal/config"
	"github.com/minseo-cho/gomall/internal/domain/repository"
	"github.com/minseo-cho/gomall/internal/storage/postgres"
)

// Module provides the ProductRepository, cached behind redis when a redis
// address is configured and raw otherwise.
var Module = fx.Provide(newProductRepository)

type params struct {
	fx.In

	Ctx     context.Context
	Config  *config.Config
	Logger  *slog.Logger
	Storage *postgres.Storage
}

func newProductRepository(p params) (repository.ProductRepository, error) {
	raw := p.Storage.Products()
	if p.Config.RedisAddr == "" {
		return raw, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         p.Config.RedisAddr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(p.Ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}

	return NewCachedProductRepository(raw, client, p.Logger), nil
}
