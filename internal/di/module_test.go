package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/minseo-cho/gomall/internal/adapter/portone"
	"github.com/minseo-cho/gomall/internal/app"
	"github.com/minseo-cho/gomall/internal/config"
	"github.com/minseo-cho/gomall/internal/domain/repository"
	"github.com/minseo-cho/gomall/internal/events"
	"github.com/minseo-cho/gomall/internal/storage/postgres"
	"github.com/minseo-cho/gomall/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:          ":0",
		DatabaseURI:         "postgres://stub",
		GatewayBaseURL:      "http://localhost",
		TokenSecret:         "secret",
		PaymentPollInterval: time.Millisecond,
		WorkerPoolSize:      1,
		ShutdownTimeout:     time.Millisecond,
		MaxPaymentsBatch:    1,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	userRepo := test.NewUserRepositoryStub()
	categoryRepo := &test.CategoryRepositoryStub{}
	productRepo := &test.ProductRepositoryStub{}
	cartRepo := &test.CartRepositoryStub{}
	orderRepo := &test.OrderRepositoryStub{}
	paymentRepo := &test.PaymentRepositoryStub{}
	gateway := &test.GatewayStub{}
	publisher := &test.PublisherStub{}

	var facade *app.ShopFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(userRepo)),
			fx.Replace(repository.CategoryRepository(categoryRepo)),
			fx.Replace(repository.ProductRepository(productRepo)),
			fx.Replace(repository.CartRepository(cartRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.PaymentRepository(paymentRepo)),
			fx.Replace(portone.Client(gateway)),
			fx.Replace(events.Publisher(publisher)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected shop facade instance")
	}
}
