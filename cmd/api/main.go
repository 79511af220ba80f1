package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/lpkia/helpdesk-service/internal/api/http"
	"github.com/lpkia/helpdesk-service/internal/api/http/handlers"
	"github.com/lpkia/helpdesk-service/internal/config"
	"github.com/lpkia/helpdesk-service/internal/events"
	"github.com/lpkia/helpdesk-service/internal/notify"
	"github.com/lpkia/helpdesk-service/internal/observability"
	"github.com/lpkia/helpdesk-service/internal/persistence"
	"github.com/lpkia/helpdesk-service/internal/repository"
	"github.com/lpkia/helpdesk-service/internal/service"
	"github.com/lpkia/helpdesk-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := persistence.NewSQLite(cfg.SQLite, logger)
	if err != nil {
		logger.Fatal("failed to open sqlite store", zap.Error(err))
	}
	defer store.Close()

	if cfg.SQLite.RunBootstrap {
		if err := persistence.EnsureSchema(ctx, store.Handle(), logger); err != nil {
			logger.Fatal("failed to bootstrap schema", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	db := store.Handle()
	userRepo := repository.NewUserRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	dispatcher := events.NewInMemoryDispatcher()
	fanout := events.NewFanout(redis.Client, logger)
	whatsapp := notify.NewWhatsAppClient(cfg.WhatsApp, logger)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		MessageRepo: messageRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	authService := service.NewAuthService(userRepo)
	notificationService := service.NewNotificationService(whatsapp, logger)

	worker.StartNotificationWorker(dispatcher, fanout, notificationService)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store, redis),
		Auth:     handlers.NewAuthHandler(authService),
		Tickets:  handlers.NewTicketsHandler(ticketService),
		Messages: handlers.NewMessagesHandler(ticketService),
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
