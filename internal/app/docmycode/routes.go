// Package docmycode предоставляет маршруты для основного приложения.
package docmycode

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/docmycode/docmycode/internal/config"
	"github.com/docmycode/docmycode/internal/http/handlers/auth/login"
	"github.com/docmycode/docmycode/internal/http/handlers/auth/register"
	"github.com/docmycode/docmycode/internal/http/handlers/contact/send"
	"github.com/docmycode/docmycode/internal/http/handlers/generation/generate"
	"github.com/docmycode/docmycode/internal/http/handlers/health"
	"github.com/docmycode/docmycode/internal/http/handlers/newsletter/subscribe"
	"github.com/docmycode/docmycode/internal/http/handlers/sitemap"
	"github.com/docmycode/docmycode/internal/http/handlers/user/current"
	"github.com/docmycode/docmycode/internal/http/middlewarectx"
	authservice "github.com/docmycode/docmycode/internal/services/auth"
	contactservice "github.com/docmycode/docmycode/internal/services/contact"
	generationservice "github.com/docmycode/docmycode/internal/services/generation"
	newsletterservice "github.com/docmycode/docmycode/internal/services/newsletter"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	authService *authservice.AuthService,
	generationService *generationservice.GenerationService,
	newsletterService *newsletterservice.NewsletterService,
	contactService *contactservice.ContactService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Post("/subscribe", subscribe.New(logger, newsletterService).ServeHTTP)
		r.Post("/sendMail", send.New(logger, contactService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/generate", generate.New(logger, generationService, cfg.DailyLimit).ServeHTTP)
			r.Get("/me", current.New(logger, generationService).ServeHTTP)
		})
	})

	r.Get("/sitemap.xml", sitemap.New(logger, cfg.SiteURL).ServeHTTP)

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
