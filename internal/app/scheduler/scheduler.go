// Package scheduler предоставляет приложение периодического сканирования
// платежей и публикации напоминаний в RabbitMQ.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/trainer-billing/internal/config"
	"github.com/magabrotheeeer/trainer-billing/internal/lib/clock"
	"github.com/magabrotheeeer/trainer-billing/internal/lib/rabbitmq"
	paymentservice "github.com/magabrotheeeer/trainer-billing/internal/services/payment"
	scannerservice "github.com/magabrotheeeer/trainer-billing/internal/services/scanner"
	"github.com/magabrotheeeer/trainer-billing/internal/storage/repository"
)

// App инкапсулирует сканер платежей и подключение к брокеру.
type App struct {
	scanner  *scannerservice.Service
	conn     *amqp.Connection
	channel  *amqp.Channel
	db       *repository.Storage
	interval time.Duration
	logger   *slog.Logger
}

// publisher адаптирует канал AMQP под интерфейс сканера.
type publisher struct {
	ch *amqp.Channel
}

func (p *publisher) Publish(routingKey string, message any) error {
	return rabbitmq.PublishMessage(p.ch, rabbitmq.Exchange, routingKey, message)
}

// New собирает приложение планировщика: хранилище, брокер и сканер.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitConnectionString, 5, 3*time.Second)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.NotificationQueues())
	if err != nil {
		return nil, err
	}

	clk := clock.System()
	paymentService := paymentservice.New(db, clk, logger)
	scannerService := scannerservice.New(db, paymentService, clk, logger)

	return &App{
		scanner:  scannerService,
		conn:     conn,
		channel:  ch,
		db:       db,
		interval: cfg.ScanInterval,
		logger:   logger,
	}, nil
}

// Run запускает периодическое сканирование до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("payment scan scheduler started", slog.Duration("interval", a.interval))
	a.scanner.Run(ctx, &publisher{ch: a.channel}, a.interval)

	_ = a.channel.Close()
	_ = a.conn.Close()
	_ = a.db.DB.Close()
	return nil
}
