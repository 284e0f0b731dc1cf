package scanner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/trainer-billing/internal/lib/clock"
	"github.com/magabrotheeeer/trainer-billing/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListPendingPayments(ctx context.Context, horizon time.Time) ([]*models.PaymentNotice, error) {
	args := m.Called(ctx, horizon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PaymentNotice), args.Error(1)
}

type PromoterMock struct{ mock.Mock }

func (m *PromoterMock) PromoteOverdue(ctx context.Context, paymentID int) (*models.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(routingKey string, message any) error {
	return m.Called(routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Scan(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	today := now.Truncate(24 * time.Hour)
	horizon := today.AddDate(0, 0, 3)

	notices := []*models.PaymentNotice{
		{PaymentID: 1, SubscriberID: 1, SubscriberName: "Alice", DueDate: today.AddDate(0, 0, -4), Amount: 150},
		{PaymentID: 2, SubscriberID: 2, SubscriberName: "Bob", DueDate: today, Amount: 120},
		{PaymentID: 3, SubscriberID: 3, SubscriberName: "Carol", DueDate: horizon, Amount: 90},
		// Срок через два дня: напоминание не шлётся.
		{PaymentID: 4, SubscriberID: 4, SubscriberName: "Dave", DueDate: today.AddDate(0, 0, 2), Amount: 80},
	}

	repo := new(RepoMock)
	repo.On("ListPendingPayments", mock.Anything, horizon).Return(notices, nil).Once()

	promoter := new(PromoterMock)
	promoter.On("PromoteOverdue", mock.Anything, 1).
		Return(&models.Payment{ID: 1, Status: models.StatusOverdue}, nil).Once()

	svc := New(repo, promoter, clock.Fixed(now), newNoopLogger())
	report, err := svc.Scan(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Overdue, 1)
	assert.Equal(t, 1, report.Overdue[0].PaymentID)
	assert.Equal(t, 4, report.Overdue[0].DaysOverdue)
	assert.Equal(t, "overdue", report.Overdue[0].Kind)

	require.Len(t, report.DueToday, 1)
	assert.Equal(t, 2, report.DueToday[0].PaymentID)
	assert.Equal(t, "due", report.DueToday[0].Kind)

	require.Len(t, report.DueSoon, 1)
	assert.Equal(t, 3, report.DueSoon[0].PaymentID)
	assert.Equal(t, "upcoming", report.DueSoon[0].Kind)

	assert.Equal(t, 1, report.Promoted)

	repo.AssertExpectations(t)
	promoter.AssertExpectations(t)
}

func TestService_Scan_PromoteFailureDoesNotStopScan(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	today := now.Truncate(24 * time.Hour)

	notices := []*models.PaymentNotice{
		{PaymentID: 1, SubscriberID: 1, DueDate: today.AddDate(0, 0, -1), Amount: 150},
		{PaymentID: 2, SubscriberID: 2, DueDate: today.AddDate(0, 0, -2), Amount: 120},
	}

	repo := new(RepoMock)
	repo.On("ListPendingPayments", mock.Anything, mock.Anything).Return(notices, nil).Once()

	promoter := new(PromoterMock)
	promoter.On("PromoteOverdue", mock.Anything, 1).
		Return(nil, errors.New("db unavailable")).Once()
	promoter.On("PromoteOverdue", mock.Anything, 2).
		Return(&models.Payment{ID: 2, Status: models.StatusOverdue}, nil).Once()

	svc := New(repo, promoter, clock.Fixed(now), newNoopLogger())
	report, err := svc.Scan(context.Background())
	require.NoError(t, err)

	assert.Len(t, report.Overdue, 2)
	assert.Equal(t, 1, report.Promoted)
	promoter.AssertExpectations(t)
}

func TestService_Scan_RepositoryError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListPendingPayments", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused")).Once()

	svc := New(repo, new(PromoterMock), clock.Fixed(time.Now()), newNoopLogger())
	_, err := svc.Scan(context.Background())
	require.Error(t, err)
}

func TestService_Scan_Idempotent(t *testing.T) {
	// Повторный обход не находит уже переведённые платежи:
	// выборка ограничена статусом pending.
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	repo := new(RepoMock)
	repo.On("ListPendingPayments", mock.Anything, mock.Anything).
		Return([]*models.PaymentNotice{}, nil).Once()

	svc := New(repo, new(PromoterMock), clock.Fixed(now), newNoopLogger())
	report, err := svc.Scan(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Promoted)
	assert.Empty(t, report.Overdue)
}
