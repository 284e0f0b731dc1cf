// Package scanner реализует периодический обход ожидающих платежей:
// раскладку по корзинам напоминаний и перевод просроченных платежей
// в статус overdue.
package scanner

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/trainer-billing/internal/lib/billing"
	"github.com/magabrotheeeer/trainer-billing/internal/lib/clock"
	"github.com/magabrotheeeer/trainer-billing/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/trainer-billing/internal/lib/sl"
	"github.com/magabrotheeeer/trainer-billing/internal/models"
)

// Горизонт предварительного напоминания: за сколько дней до срока
// абонент получает первое письмо.
const upcomingDays = 3

// Repository определяет выборку ожидающих платежей.
type Repository interface {
	// ListPendingPayments возвращает ожидающие платежи со сроком не позднее horizon.
	ListPendingPayments(ctx context.Context, horizon time.Time) ([]*models.PaymentNotice, error)
}

// Promoter переводит просроченный платёж в статус overdue.
type Promoter interface {
	PromoteOverdue(ctx context.Context, paymentID int) (*models.Payment, error)
}

// Publisher отправляет напоминание с ключом маршрутизации.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// Service реализует сканирование платежей и рассылку напоминаний.
type Service struct {
	repo     Repository
	promoter Promoter
	clock    clock.Clock
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, promoter Promoter, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		promoter: promoter,
		clock:    clk,
		log:      log,
	}
}

// Scan раскладывает ожидающие платежи по трём корзинам: срок через
// три дня, срок сегодня и просрочен. Просроченные платежи переводятся
// в статус overdue; сбой перевода одного платежа не прерывает обход.
func (s *Service) Scan(ctx context.Context) (*models.ScanReport, error) {
	today := s.clock.Now().Truncate(24 * time.Hour)
	horizon := today.AddDate(0, 0, upcomingDays)

	notices, err := s.repo.ListPendingPayments(ctx, horizon)
	if err != nil {
		return nil, err
	}

	report := &models.ScanReport{}
	for _, notice := range notices {
		dueDate := notice.DueDate.Truncate(24 * time.Hour)
		switch {
		case dueDate.Before(today):
			notice.Kind = rabbitmq.KeyOverdue
			notice.DaysOverdue = billing.DaysBetween(dueDate, today)
			if _, err := s.promoter.PromoteOverdue(ctx, notice.PaymentID); err != nil {
				s.log.Error("failed to promote payment to overdue",
					slog.Int("payment_id", notice.PaymentID), sl.Err(err))
			} else {
				report.Promoted++
			}
			report.Overdue = append(report.Overdue, notice)
		case dueDate.Equal(today):
			notice.Kind = rabbitmq.KeyDue
			report.DueToday = append(report.DueToday, notice)
		case dueDate.Equal(horizon):
			notice.Kind = rabbitmq.KeyUpcoming
			report.DueSoon = append(report.DueSoon, notice)
		}
	}

	s.log.Info("payment scan finished",
		slog.Int("due_soon", len(report.DueSoon)),
		slog.Int("due_today", len(report.DueToday)),
		slog.Int("overdue", len(report.Overdue)),
		slog.Int("promoted", report.Promoted))

	return report, nil
}

// Run запускает периодическое сканирование и публикует напоминания.
// Первый обход выполняется сразу, далее по интервалу до отмены
// контекста.
func (s *Service) Run(ctx context.Context, publisher Publisher, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		report, err := s.Scan(ctx)
		if err != nil {
			s.log.Error("payment scan failed", sl.Err(err))
		} else {
			s.publishReport(report, publisher)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Service) publishReport(report *models.ScanReport, publisher Publisher) {
	buckets := [][]*models.PaymentNotice{report.DueSoon, report.DueToday, report.Overdue}
	for _, bucket := range buckets {
		for _, notice := range bucket {
			if err := publisher.Publish(notice.Kind, notice); err != nil {
				s.log.Error("failed to publish payment notice",
					slog.Int("payment_id", notice.PaymentID),
					slog.String("kind", notice.Kind),
					sl.Err(err))
			}
		}
	}
}
