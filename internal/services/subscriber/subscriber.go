// Package subscriber содержит бизнес-логику учёта абонентов:
// зачисление с первым платежом, чтение с кешированием, обновление
// контактных данных и смену дня списания.
package subscriber

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/trainer-billing/internal/lib/clock"
	"github.com/magabrotheeeer/trainer-billing/internal/lib/sl"
	"github.com/magabrotheeeer/trainer-billing/internal/models"
)

// Repository определяет методы хранилища, нужные учёту абонентов.
type Repository interface {
	// EnrollSubscriber вставляет абонента и его первый платёж в одной
	// транзакции и возвращает ID абонента.
	EnrollSubscriber(ctx context.Context, sub models.Subscriber, firstPayment models.Payment) (int, error)
	// ReadSubscriber возвращает абонента по ID.
	ReadSubscriber(ctx context.Context, id int) (*models.Subscriber, error)
	// ListSubscribers возвращает список абонентов тренера с пагинацией.
	ListSubscribers(ctx context.Context, trainerUID string, limit, offset int) ([]*models.Subscriber, error)
	// UpdateSubscriber обновляет контактные данные и сумму абонента.
	UpdateSubscriber(ctx context.Context, id int, name, email, phone string, monthlyAmount float64) (int, error)
	// UpdateBillingDay задаёт абоненту новый день списания.
	UpdateBillingDay(ctx context.Context, id, billingDay int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set сохраняет значение в кеш.
	Set(ctx context.Context, key string, value any) error
	// Invalidate удаляет значения из кеша по ключам.
	Invalidate(ctx context.Context, keys ...string) error
}

// Service реализует операции над абонентами.
type Service struct {
	repo  Repository
	cache Cache
	clock clock.Clock
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		clock: clk,
		log:   log,
	}
}

// Enroll зачисляет нового абонента тренеру. День списания берётся из
// даты первого платежа, сам первый платёж создаётся сразу с заданным
// начальным статусом. Для статуса paid дата оплаты фиксируется
// текущим днём. Абонент и первый платёж записываются в одной
// транзакции: абонент без открытого цикла появиться не может.
func (s *Service) Enroll(ctx context.Context, trainerUID string, req models.DummySubscriber) (int, error) {
	firstDueDate, err := time.Parse("2006-01-02", req.FirstDueDate)
	if err != nil {
		return 0, fmt.Errorf("invalid first due date: %w", err)
	}
	initialStatus := models.Status(req.InitialStatus)
	if !initialStatus.Valid() {
		return 0, fmt.Errorf("unknown payment status: %s", req.InitialStatus)
	}

	billingDay := firstDueDate.Day()
	sub := models.Subscriber{
		TrainerUID:    trainerUID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		StartDate:     s.clock.Now().Truncate(24 * time.Hour),
		BillingDay:    &billingDay,
		MonthlyAmount: req.MonthlyAmount,
	}

	var paidDate *time.Time
	if initialStatus == models.StatusPaid {
		now := s.clock.Now().Truncate(24 * time.Hour)
		paidDate = &now
	}
	payment := models.Payment{
		DueDate:  firstDueDate,
		PaidDate: paidDate,
		Amount:   req.MonthlyAmount,
		Status:   initialStatus,
	}

	id, err := s.repo.EnrollSubscriber(ctx, sub, payment)
	if err != nil {
		return 0, err
	}

	s.log.Info("enrolled new subscriber",
		slog.Int("id", id),
		slog.Int("billing_day", billingDay),
		slog.String("initial_status", string(initialStatus)))

	return id, nil
}

// Read возвращает абонента по ID, используя кеш или репозиторий.
func (s *Service) Read(ctx context.Context, id int) (*models.Subscriber, error) {
	var result *models.Subscriber
	cacheKey := fmt.Sprintf("subscriber:%d", id)
	found, err := s.cache.Get(ctx, cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ReadSubscriber(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, result); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// List возвращает список абонентов тренера с пагинацией.
func (s *Service) List(ctx context.Context, trainerUID string, limit, offset int) ([]*models.Subscriber, error) {
	return s.repo.ListSubscribers(ctx, trainerUID, limit, offset)
}

// Update обновляет контактные данные и сумму абонента и инвалидирует
// кеш. День списания этим методом не меняется.
func (s *Service) Update(ctx context.Context, id int, req models.DummySubscriberUpdate) (int, error) {
	rows, err := s.repo.UpdateSubscriber(ctx, id, req.Name, req.Email, req.Phone, req.MonthlyAmount)
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, models.ErrSubscriberNotFound
	}

	cacheKey := fmt.Sprintf("subscriber:%d", id)
	if err := s.cache.Invalidate(ctx, cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return rows, nil
}

// RebaseBillingDay задаёт абоненту новый день списания. Уже
// выпущенные платежи не пересчитываются, новый день применяется
// со следующего цикла.
func (s *Service) RebaseBillingDay(ctx context.Context, id, billingDay int) error {
	if billingDay < 1 || billingDay > 31 {
		return fmt.Errorf("billing day must be between 1 and 31, got %d", billingDay)
	}

	rows, err := s.repo.UpdateBillingDay(ctx, id, billingDay)
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrSubscriberNotFound
	}

	cacheKey := fmt.Sprintf("subscriber:%d", id)
	if err := s.cache.Invalidate(ctx, cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), sl.Err(err))
	}

	s.log.Info("billing day rebased", slog.Int("id", id), slog.Int("billing_day", billingDay))
	return nil
}
