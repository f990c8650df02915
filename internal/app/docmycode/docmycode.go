// Package docmycode собирает и запускает основное HTTP-приложение:
// хранилище, кеш, брокер, клиент провайдера генерации и маршруты.
package docmycode

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/docmycode/docmycode/internal/cache"
	"github.com/docmycode/docmycode/internal/completion"
	"github.com/docmycode/docmycode/internal/config"
	"github.com/docmycode/docmycode/internal/lib/jwt"
	"github.com/docmycode/docmycode/internal/lib/smtp"
	"github.com/docmycode/docmycode/internal/migrations"
	"github.com/docmycode/docmycode/internal/rabbitmq"
	authservice "github.com/docmycode/docmycode/internal/services/auth"
	contactservice "github.com/docmycode/docmycode/internal/services/contact"
	generationservice "github.com/docmycode/docmycode/internal/services/generation"
	newsletterservice "github.com/docmycode/docmycode/internal/services/newsletter"
	"github.com/docmycode/docmycode/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rmqConn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	rmqChannel, err := rabbitmq.SetupChannel(rmqConn, rabbitmq.GetNewsletterQueues())
	if err != nil {
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(rmqChannel)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	transport := smtp.NewTransport(cfg, logger)
	providerClient := completion.NewClient(cfg.Completion)

	authService := authservice.NewAuthService(db, jwtMaker)
	generationService := generationservice.NewGenerationService(db, providerClient, cacheRedis, cfg.DailyLimit, logger)
	newsletterService := newsletterservice.NewNewsletterService(db, publisher, logger)
	contactService := contactservice.NewContactService(transport, cfg.ContactInbox, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, cfg, authService, generationService, newsletterService, contactService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
