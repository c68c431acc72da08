package di

import (
	"go.uber.org/fx"

	"github.com/minseo-cho/gomall/internal/adapter/portone"
	"github.com/minseo-cho/gomall/internal/app"
	"github.com/minseo-cho/gomall/internal/cache"
	"github.com/minseo-cho/gomall/internal/config"
	"github.com/minseo-cho/gomall/internal/events"
	"github.com/minseo-cho/gomall/internal/logger"
	"github.com/minseo-cho/gomall/internal/pkg/auth"
	"github.com/minseo-cho/gomall/internal/server/http/handlers"
	"github.com/minseo-cho/gomall/internal/server/http/router"
	"github.com/minseo-cho/gomall/internal/storage/postgres"
	"github.com/minseo-cho/gomall/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		cache.Module,
		portone.Module,
		events.Module,
		usecase.Module,
		fx.Provide(func(facade *app.ShopFacade) handlers.ShopFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
