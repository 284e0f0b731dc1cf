// Package sender предоставляет приложение-потребитель очередей
// напоминаний, отправляющее письма абонентам.
package sender

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/trainer-billing/internal/config"
	"github.com/magabrotheeeer/trainer-billing/internal/lib/rabbitmq"
	senderservice "github.com/magabrotheeeer/trainer-billing/internal/services/sender"
)

// App инкапсулирует потребителя очередей напоминаний.
type App struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	service *senderservice.Service
	logger  *slog.Logger
}

// New собирает приложение отправителя: брокер и SMTP-сервис.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitConnectionString, 5, 3*time.Second)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.NotificationQueues())
	if err != nil {
		return nil, err
	}

	return &App{
		conn:    conn,
		channel: ch,
		service: senderservice.New(cfg, logger),
		logger:  logger,
	}, nil
}

// Run подписывается на все очереди напоминаний и обрабатывает
// сообщения до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	for _, q := range rabbitmq.NotificationQueues() {
		if err := rabbitmq.ConsumeMessages(ctx, a.channel, q.QueueName, a.service.SendPaymentNotice); err != nil {
			return err
		}
		a.logger.Info("consuming payment notices", slog.String("queue", q.QueueName))
	}

	<-ctx.Done()
	_ = a.channel.Close()
	_ = a.conn.Close()
	return nil
}
