package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/storefront-labs/storefront/internal/api/http"
	"github.com/storefront-labs/storefront/internal/api/http/handlers"
	"github.com/storefront-labs/storefront/internal/auth"
	"github.com/storefront-labs/storefront/internal/authstate"
	"github.com/storefront-labs/storefront/internal/config"
	"github.com/storefront-labs/storefront/internal/events"
	"github.com/storefront-labs/storefront/internal/observability"
	"github.com/storefront-labs/storefront/internal/service"
	"github.com/storefront-labs/storefront/internal/upstream"
	"github.com/storefront-labs/storefront/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := authstate.NewStore(cfg.Session, cfg.Redis, logger)
	if err != nil {
		logger.Fatal("failed to open session store", zap.Error(err))
	}
	defer store.Close() //nolint:errcheck

	dispatcher := events.NewInMemoryDispatcher()
	tokens := authstate.NewState(store, dispatcher, logger)
	views := service.NewViewRegistry(cfg.Session.ViewIdle(), cfg.Reviews.PageSize)

	client := upstream.NewClient(cfg.Upstream.Timeout(), logger)
	productClient := upstream.NewProductClient(client, cfg.Upstream.ProductsURL)
	reviewClient := upstream.NewReviewClient(client, cfg.Upstream.ReviewsURL)

	authService, err := service.NewAuthService(*cfg, tokens, logger)
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	catalogService := service.NewCatalogService(productClient, cfg.Catalog, logger)
	productService := service.NewProductService(productClient, reviewClient, logger)
	reviewService := service.NewReviewService(reviewClient, logger)

	worker.StartSessionWorker(ctx, service.NewSessionEventService(tokens, views, logger), views, cfg.Session.SweepInterval(), logger)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		Immutable:   true,
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, tokens, metrics),
		Auth:     handlers.NewAuthHandler(authService),
		Catalog:  handlers.NewCatalogHandler(catalogService, views),
		Products: handlers.NewProductHandler(productService, views),
		Reviews:  handlers.NewReviewHandler(reviewService, views),
		Areas:    handlers.NewAreaHandler(),
		Sessions: auth.NewSessionMiddleware(tokens, cfg.Session.CookieName, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
