// Package coursesubscription собирает приложение: хранилище, миграции, кеш,
// сервисы, маршруты и HTTP-сервер с graceful shutdown.
package coursesubscription

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/course-subscription/internal/cache"
	"github.com/magabrotheeeer/course-subscription/internal/config"
	"github.com/magabrotheeeer/course-subscription/internal/lib/jwt"
	"github.com/magabrotheeeer/course-subscription/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/course-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/course-subscription/internal/migrations"
	authservice "github.com/magabrotheeeer/course-subscription/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/course-subscription/internal/services/catalog"
	subservice "github.com/magabrotheeeer/course-subscription/internal/services/subscription"
	"github.com/magabrotheeeer/course-subscription/internal/storage/repository"
)

// App держит собранный HTTP-сервер и ресурсы, закрываемые при остановке.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *repository.Storage
	publisher *rabbitmq.Publisher
}

// New собирает приложение из конфигурации.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	// Кеш каталога опционален: без адреса redis сервис работает напрямую с базой.
	var courseCache catalogservice.Cache
	if cfg.AddressRedis != "" {
		cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		courseCache = cacheRedis
	}

	// Публикация событий опциональна: без адреса rabbitmq события не отправляются.
	var publisher *rabbitmq.Publisher
	var events subservice.EventPublisher
	if cfg.RabbitMQURL != "" {
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitMQURL)
		if err != nil {
			return nil, err
		}
		events = publisher
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authSvc := authservice.NewAuthService(db, jwtMaker)
	catalogSvc := catalogservice.NewCatalogService(db, courseCache, logger)
	subscriptionSvc := subservice.NewSubscriptionService(
		db, db, events, cfg.Promo.Code, cfg.Promo.DiscountRate, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, authSvc, catalogSvc, subscriptionSvc)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:    srv,
		logger:    logger,
		db:        db,
		publisher: publisher,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
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
		if a.publisher != nil {
			if cerr := a.publisher.Close(); cerr != nil {
				a.logger.Warn("failed to close rabbitmq publisher", sl.Err(cerr))
			}
		}
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Warn("failed to close database", sl.Err(cerr))
		}
		return err
	}
}
