package subscriber

import (
	"context"
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

func (m *RepoMock) EnrollSubscriber(ctx context.Context, sub models.Subscriber, firstPayment models.Payment) (int, error) {
	args := m.Called(ctx, sub, firstPayment)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ReadSubscriber(ctx context.Context, id int) (*models.Subscriber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscriber), args.Error(1)
}
func (m *RepoMock) ListSubscribers(ctx context.Context, trainerUID string, limit, offset int) ([]*models.Subscriber, error) {
	args := m.Called(ctx, trainerUID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscriber), args.Error(1)
}
func (m *RepoMock) UpdateSubscriber(ctx context.Context, id int, name, email, phone string, monthlyAmount float64) (int, error) {
	args := m.Called(ctx, id, name, email, phone, monthlyAmount)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) UpdateBillingDay(ctx context.Context, id, billingDay int) (int, error) {
	args := m.Called(ctx, id, billingDay)
	return args.Int(0), args.Error(1)
}
type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, dest any) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(ctx context.Context, key string, value any) error {
	return m.Called(ctx, key, value).Error(0)
}
func (m *CacheMock) Invalidate(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Enroll(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	today := now.Truncate(24 * time.Hour)

	tests := []struct {
		name       string
		req        models.DummySubscriber
		setupMocks func(r *RepoMock)
		wantID     int
		wantErr    bool
	}{
		{
			name: "enroll with pending first payment",
			req: models.DummySubscriber{
				Name:          "Alice",
				Email:         "alice@example.com",
				Phone:         "+100",
				FirstDueDate:  "2024-03-15",
				MonthlyAmount: 150,
				InitialStatus: "pending",
			},
			setupMocks: func(r *RepoMock) {
				r.On("EnrollSubscriber", mock.Anything,
					mock.MatchedBy(func(sub models.Subscriber) bool {
						return sub.Name == "Alice" && sub.BillingDay != nil && *sub.BillingDay == 15
					}),
					mock.MatchedBy(func(p models.Payment) bool {
						return p.Status == models.StatusPending &&
							p.PaidDate == nil &&
							p.DueDate.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
					})).Return(42, nil).Once()
			},
			wantID: 42,
		},
		{
			name: "enroll with paid first payment sets paid date",
			req: models.DummySubscriber{
				Name:          "Bob",
				Email:         "bob@example.com",
				Phone:         "+200",
				FirstDueDate:  "2024-03-01",
				MonthlyAmount: 120,
				InitialStatus: "paid",
			},
			setupMocks: func(r *RepoMock) {
				r.On("EnrollSubscriber", mock.Anything, mock.Anything,
					mock.MatchedBy(func(p models.Payment) bool {
						return p.Status == models.StatusPaid &&
							p.PaidDate != nil && p.PaidDate.Equal(today)
					})).Return(43, nil).Once()
			},
			wantID: 43,
		},
		{
			name: "invalid first due date",
			req: models.DummySubscriber{
				Name:          "Carol",
				FirstDueDate:  "15-03-2024",
				MonthlyAmount: 100,
				InitialStatus: "pending",
			},
			setupMocks: func(_ *RepoMock) {},
			wantErr:    true,
		},
		{
			name: "unknown initial status",
			req: models.DummySubscriber{
				Name:          "Dave",
				FirstDueDate:  "2024-03-15",
				MonthlyAmount: 100,
				InitialStatus: "cancelled",
			},
			setupMocks: func(_ *RepoMock) {},
			wantErr:    true,
		},
		{
			name: "repository failure surfaces without a half-written subscriber",
			req: models.DummySubscriber{
				Name:          "Eve",
				Email:         "eve@example.com",
				Phone:         "+300",
				FirstDueDate:  "2024-03-20",
				MonthlyAmount: 90,
				InitialStatus: "pending",
			},
			setupMocks: func(r *RepoMock) {
				// Абонент и первый платёж уходят в хранилище одним
				// вызовом: отказ не оставляет абонента без цикла.
				r.On("EnrollSubscriber", mock.Anything, mock.Anything, mock.Anything).
					Return(0, assert.AnError).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)

			svc := New(repo, new(CacheMock), clock.Fixed(now), newNoopLogger())
			id, err := svc.Enroll(context.Background(), "trainer-uid", tt.req)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Read(t *testing.T) {
	now := time.Now()
	sub := &models.Subscriber{ID: 7, Name: "Alice"}

	t.Run("cache miss reads repository and fills cache", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ReadSubscriber", mock.Anything, 7).Return(sub, nil).Once()

		cache := new(CacheMock)
		cache.On("Get", mock.Anything, "subscriber:7", mock.Anything).Return(false, nil).Once()
		cache.On("Set", mock.Anything, "subscriber:7", sub).Return(nil).Once()

		svc := New(repo, cache, clock.Fixed(now), newNoopLogger())
		got, err := svc.Read(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, sub, got)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("missing subscriber", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ReadSubscriber", mock.Anything, 99).Return(nil, models.ErrSubscriberNotFound).Once()

		cache := new(CacheMock)
		cache.On("Get", mock.Anything, "subscriber:99", mock.Anything).Return(false, nil).Once()

		svc := New(repo, cache, clock.Fixed(now), newNoopLogger())
		_, err := svc.Read(context.Background(), 99)
		require.ErrorIs(t, err, models.ErrSubscriberNotFound)
	})
}

func TestService_RebaseBillingDay(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		billingDay int
		setupMocks func(r *RepoMock, c *CacheMock)
		wantErr    error
	}{
		{
			name:       "valid day",
			billingDay: 28,
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("UpdateBillingDay", mock.Anything, 7, 28).Return(1, nil).Once()
				c.On("Invalidate", mock.Anything, []string{"subscriber:7"}).Return(nil).Once()
			},
		},
		{
			name:       "day out of range",
			billingDay: 32,
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			wantErr:    assert.AnError,
		},
		{
			name:       "missing subscriber",
			billingDay: 10,
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("UpdateBillingDay", mock.Anything, 7, 10).Return(0, nil).Once()
			},
			wantErr: models.ErrSubscriberNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)

			svc := New(repo, cache, clock.Fixed(now), newNoopLogger())
			err := svc.RebaseBillingDay(context.Background(), 7, tt.billingDay)

			if tt.wantErr != nil {
				require.Error(t, err)
				if tt.wantErr != assert.AnError {
					assert.ErrorIs(t, err, tt.wantErr)
				}
			} else {
				require.NoError(t, err)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestService_Update(t *testing.T) {
	now := time.Now()
	req := models.DummySubscriberUpdate{Name: "Alice", Email: "alice@example.com", Phone: "+100", MonthlyAmount: 175}

	t.Run("successful update invalidates cache", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("UpdateSubscriber", mock.Anything, 7, "Alice", "alice@example.com", "+100", 175.0).
			Return(1, nil).Once()

		cache := new(CacheMock)
		cache.On("Invalidate", mock.Anything, []string{"subscriber:7"}).Return(nil).Once()

		svc := New(repo, cache, clock.Fixed(now), newNoopLogger())
		rows, err := svc.Update(context.Background(), 7, req)
		require.NoError(t, err)
		assert.Equal(t, 1, rows)
		cache.AssertExpectations(t)
	})

	t.Run("missing subscriber", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("UpdateSubscriber", mock.Anything, 99, "Alice", "alice@example.com", "+100", 175.0).
			Return(0, nil).Once()

		svc := New(repo, new(CacheMock), clock.Fixed(now), newNoopLogger())
		_, err := svc.Update(context.Background(), 99, req)
		require.ErrorIs(t, err, models.ErrSubscriberNotFound)
	})
}
