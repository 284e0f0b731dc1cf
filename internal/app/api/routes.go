// Package api предоставляет HTTP-приложение биллинга тренера.
package api

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/trainer-billing/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/trainer-billing/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/trainer-billing/internal/http/handlers/notification/scan"
	"github.com/magabrotheeeer/trainer-billing/internal/http/handlers/payment/generatenext"
	"github.com/magabrotheeeer/trainer-billing/internal/http/handlers/payment/history"
	"github.com/magabrotheeeer/trainer-billing/internal/http/handlers/payment/markpaid"
	"github.com/magabrotheeeer/trainer-billing/internal/http/handlers/payment/override"
	"github.com/magabrotheeeer/trainer-billing/internal/http/handlers/subscriber/create"
	"github.com/magabrotheeeer/trainer-billing/internal/http/handlers/subscriber/list"
	"github.com/magabrotheeeer/trainer-billing/internal/http/handlers/subscriber/read"
	"github.com/magabrotheeeer/trainer-billing/internal/http/handlers/subscriber/rebase"
	"github.com/magabrotheeeer/trainer-billing/internal/http/handlers/subscriber/update"
	"github.com/magabrotheeeer/trainer-billing/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/trainer-billing/internal/services/auth"
	paymentservice "github.com/magabrotheeeer/trainer-billing/internal/services/payment"
	scannerservice "github.com/magabrotheeeer/trainer-billing/internal/services/scanner"
	subscriberservice "github.com/magabrotheeeer/trainer-billing/internal/services/subscriber"
	"github.com/magabrotheeeer/trainer-billing/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.Service,
	subscriberService *subscriberservice.Service,
	paymentService *paymentservice.Service,
	scannerService *scannerservice.Service,
	storage *repository.Storage,
) {
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

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/subscribers", create.New(logger, subscriberService).ServeHTTP)
			r.Get("/subscribers", list.New(logger, subscriberService).ServeHTTP)
			r.Get("/subscribers/{id}", read.New(logger, subscriberService).ServeHTTP)
			r.Put("/subscribers/{id}", update.New(logger, subscriberService).ServeHTTP)
			r.Patch("/subscribers/{id}/billing-day", rebase.New(logger, subscriberService).ServeHTTP)
			r.Get("/subscribers/{id}/payments", history.New(logger, storage).ServeHTTP)
			r.Post("/subscribers/{id}/payments/next", generatenext.New(logger, paymentService).ServeHTTP)
			r.Post("/payments/{id}/paid", markpaid.New(logger, paymentService).ServeHTTP)
			r.Post("/payments/{id}/override", override.New(logger, paymentService).ServeHTTP)
			r.Post("/notifications/scan", scan.New(logger, scannerService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
