// Package coursesubscription предоставляет маршруты для основного приложения.
package coursesubscription

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/course-subscription/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/course-subscription/internal/http/handlers/auth/signup"
	courselist "github.com/magabrotheeeer/course-subscription/internal/http/handlers/course/list"
	courseread "github.com/magabrotheeeer/course-subscription/internal/http/handlers/course/read"
	"github.com/magabrotheeeer/course-subscription/internal/http/handlers/health"
	"github.com/magabrotheeeer/course-subscription/internal/http/handlers/subscription/create"
	"github.com/magabrotheeeer/course-subscription/internal/http/handlers/subscription/mycourses"
	"github.com/magabrotheeeer/course-subscription/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/course-subscription/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/course-subscription/internal/services/catalog"
	subservice "github.com/magabrotheeeer/course-subscription/internal/services/subscription"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, tokenParser middlewarectx.TokenParser,
	authService *authservice.AuthService, catalogService *catalogservice.CatalogService,
	subscriptionService *subservice.SubscriptionService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/auth/signup", signup.New(logger, authService).ServeHTTP)
	r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
	r.Get("/courses", courselist.New(logger, catalogService).ServeHTTP)
	r.Get("/courses/{id}", courseread.New(logger, catalogService).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(tokenParser, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/subscribe", create.New(logger, subscriptionService).ServeHTTP)
		r.Get("/my-courses", mycourses.New(logger, subscriptionService).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
