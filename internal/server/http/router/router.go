package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/minseo-cho/gomall/internal/config"
	"github.com/minseo-cho/gomall/internal/server/http/handlers"
	"github.com/minseo-cho/gomall/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ShopFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade, facade)
	paymentHandler := handlers.NewPaymentHandler(facade)

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	api.GET("/products", catalogHandler.List)
	api.GET("/products/:id", catalogHandler.Get)
	api.GET("/categories", catalogHandler.Categories)

	// The gateway calls back without a session, so the webhook is guarded
	// by source address instead of a token.
	api.POST("/payments/webhook",
		middleware.TrustedIPs(cfg.WebhookTrustedIPs, logger),
		paymentHandler.Webhook,
	)

	auth := api.Group("")
	auth.Use(middleware.AuthRequired(facade))
	auth.GET("/cart", cartHandler.List)
	auth.POST("/cart", cartHandler.Add)
	auth.PUT("/cart/:productID", cartHandler.SetQuantity)
	auth.DELETE("/cart/:productID", cartHandler.Remove)
	auth.POST("/orders", orderHandler.Place)
	auth.GET("/orders", orderHandler.List)
	auth.GET("/orders/:id", orderHandler.Get)
	auth.POST("/orders/:id/deliver", orderHandler.Deliver)
	auth.POST("/orders/:id/payments", paymentHandler.Start)
	auth.POST("/payments/:uid/check", paymentHandler.Check)
	auth.POST("/payments/:uid/cancel", paymentHandler.Cancel)
	auth.POST("/admin/products/status", catalogHandler.SetStatus)

	return engine
}
