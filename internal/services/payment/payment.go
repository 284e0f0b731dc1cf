// Package payment содержит бизнес-логику жизненного цикла платежа:
// переводы статусов, ручную корректировку и выпуск платежа
// следующего месяца.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/trainer-billing/internal/lib/billing"
	"github.com/magabrotheeeer/trainer-billing/internal/lib/clock"
	"github.com/magabrotheeeer/trainer-billing/internal/lib/sl"
	"github.com/magabrotheeeer/trainer-billing/internal/models"
)

// Repository определяет методы хранилища, нужные жизненному циклу платежа.
type Repository interface {
	// ReadPayment возвращает платёж по ID.
	ReadPayment(ctx context.Context, id int) (*models.Payment, error)
	// GetCurrentPayment возвращает последний по сроку платёж абонента.
	GetCurrentPayment(ctx context.Context, subscriberID int) (*models.Payment, error)
	// CreatePayment вставляет новый платёж и возвращает его ID.
	CreatePayment(ctx context.Context, payment models.Payment) (int, error)
	// UpdatePaymentStatus переводит платёж из статуса from в статус to.
	UpdatePaymentStatus(ctx context.Context, id int, from, to models.Status, paidDate *time.Time) (int, error)
	// OverridePaymentStatus устанавливает статус без проверки текущего.
	OverridePaymentStatus(ctx context.Context, id int, to models.Status, paidDate *time.Time) (int, error)
	// ReadSubscriber возвращает абонента по ID.
	ReadSubscriber(ctx context.Context, id int) (*models.Subscriber, error)
}

// Service реализует операции над платежами.
type Service struct {
	repo  Repository
	clock clock.Clock
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		clock: clk,
		log:   log,
	}
}

// MarkPaid отмечает платёж оплаченным. Разрешены переводы
// pending -> paid и overdue -> paid, дата оплаты фиксируется
// текущим днём.
func (s *Service) MarkPaid(ctx context.Context, paymentID int) (*models.Payment, error) {
	current, err := s.repo.ReadPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if current.Status == models.StatusPaid {
		return nil, &models.InvalidTransitionError{PaymentID: paymentID, From: current.Status, To: models.StatusPaid}
	}

	paidDate := s.clock.Now().Truncate(24 * time.Hour)
	rows, err := s.repo.UpdatePaymentStatus(ctx, paymentID, current.Status, models.StatusPaid, &paidDate)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, models.ErrConcurrentModification
	}

	s.log.Info("payment marked as paid",
		slog.Int("payment_id", paymentID),
		slog.String("paid_date", paidDate.Format("2006-01-02")))

	current.Status = models.StatusPaid
	current.PaidDate = &paidDate
	return current, nil
}

// PromoteOverdue переводит просроченный платёж из pending в overdue.
// Платёж со сроком не раньше сегодняшнего дня не трогается.
func (s *Service) PromoteOverdue(ctx context.Context, paymentID int) (*models.Payment, error) {
	current, err := s.repo.ReadPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if current.Status != models.StatusPending {
		return nil, &models.InvalidTransitionError{PaymentID: paymentID, From: current.Status, To: models.StatusOverdue}
	}

	today := s.clock.Now().Truncate(24 * time.Hour)
	if !current.DueDate.Before(today) {
		return nil, fmt.Errorf("payment not yet due (%s): %w", current.DueDate.Format("2006-01-02"),
			&models.InvalidTransitionError{PaymentID: paymentID, From: models.StatusPending, To: models.StatusOverdue})
	}

	rows, err := s.repo.UpdatePaymentStatus(ctx, paymentID, models.StatusPending, models.StatusOverdue, nil)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, models.ErrConcurrentModification
	}

	s.log.Info("payment promoted to overdue", slog.Int("payment_id", paymentID))

	current.Status = models.StatusOverdue
	current.PaidDate = nil
	return current, nil
}

// Override устанавливает платежу произвольный статус без проверки
// текущего. Дата оплаты заполняется только для статуса paid.
func (s *Service) Override(ctx context.Context, paymentID int, status models.Status) (*models.Payment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown payment status: %s", status)
	}

	var paidDate *time.Time
	if status == models.StatusPaid {
		now := s.clock.Now().Truncate(24 * time.Hour)
		paidDate = &now
	}

	rows, err := s.repo.OverridePaymentStatus(ctx, paymentID, status, paidDate)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, models.ErrPaymentNotFound
	}

	s.log.Info("payment status overridden",
		slog.Int("payment_id", paymentID),
		slog.String("status", string(status)))

	return s.repo.ReadPayment(ctx, paymentID)
}

// GenerateNext выпускает платёж следующего месяца для абонента.
// Срок считается от текущего платежа: месяц вперёд, день списания
// абонента с прижатием к последнему дню короткого месяца. Если день
// списания не задан, используется день срока текущего платежа.
func (s *Service) GenerateNext(ctx context.Context, subscriberID int) (*models.Payment, error) {
	current, err := s.repo.GetCurrentPayment(ctx, subscriberID)
	if err != nil {
		return nil, err
	}
	if current.Status != models.StatusPaid {
		return nil, fmt.Errorf("payment %d: %w", current.ID, models.ErrUnpaidCurrentPayment)
	}

	sub, err := s.repo.ReadSubscriber(ctx, subscriberID)
	if err != nil {
		return nil, err
	}

	billingDay := current.DueDate.Day()
	if sub.BillingDay != nil {
		billingDay = *sub.BillingDay
	} else {
		s.log.Warn("subscriber has no billing day, falling back to current due date",
			slog.Int("subscriber_id", subscriberID),
			sl.Err(models.ErrMissingBillingDay))
	}

	next := models.Payment{
		SubscriberID: subscriberID,
		DueDate:      billing.NextDueDate(current.DueDate, billingDay),
		Amount:       sub.MonthlyAmount,
		Status:       models.StatusPending,
	}
	id, err := s.repo.CreatePayment(ctx, next)
	if err != nil {
		return nil, err
	}
	next.ID = id

	s.log.Info("next payment generated",
		slog.Int("payment_id", id),
		slog.Int("subscriber_id", subscriberID),
		slog.String("due_date", next.DueDate.Format("2006-01-02")))

	return &next, nil
}
