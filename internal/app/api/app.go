package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/trainer-billing/internal/cache"
	"github.com/magabrotheeeer/trainer-billing/internal/config"
	"github.com/magabrotheeeer/trainer-billing/internal/lib/clock"
	"github.com/magabrotheeeer/trainer-billing/internal/lib/jwt"
	"github.com/magabrotheeeer/trainer-billing/internal/migrations"
	authservice "github.com/magabrotheeeer/trainer-billing/internal/services/auth"
	paymentservice "github.com/magabrotheeeer/trainer-billing/internal/services/payment"
	scannerservice "github.com/magabrotheeeer/trainer-billing/internal/services/scanner"
	subscriberservice "github.com/magabrotheeeer/trainer-billing/internal/services/subscriber"
	"github.com/magabrotheeeer/trainer-billing/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер биллинга и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New собирает приложение: хранилище, миграции, кеш, сервисы и роутер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.New(ctx, cfg.RedisConnection.Address, cfg.RedisConnection.Password,
		cfg.RedisConnection.DB, cfg.RedisConnection.TTL)
	if err != nil {
		return nil, err
	}

	maker := jwt.NewMaker(cfg.JWTToken.SecretKey, cfg.JWTToken.TokenTTL)
	clk := clock.System()

	authService := authservice.New(db, maker, logger)
	subscriberService := subscriberservice.New(db, cacheRedis, clk, logger)
	paymentService := paymentservice.New(db, clk, logger)
	scannerService := scannerservice.New(db, paymentService, clk, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, subscriberService, paymentService, scannerService, db)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
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
		_ = a.db.DB.Close()
		_ = a.cache.Close()
		return err
	}
}
