package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/trainer-billing/internal/models"
)

func TestStorage_ListSubscribers(t *testing.T) {
	type args struct {
		ctx    context.Context
		limit  int
		offset int
	}

	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		args      args
		wantCount int
		wantErr   bool
		setup     func(t *testing.T, factory *TestDataFactory) string
	}{
		{
			name: "successful list subscribers with pagination",
			args: args{
				ctx:    context.Background(),
				limit:  10,
				offset: 0,
			},
			wantCount: 2,
			wantErr:   false,
			setup: func(t *testing.T, factory *TestDataFactory) string {
				trainerUID := factory.CreateTrainer(t, "Coach", "coach@example.com", "coach", "hashedpassword", "trainer")
				day := 10
				factory.CreateSubscriber(t, trainerUID, "Alice", "alice@example.com", "+100", startDate, &day, 150.0)
				factory.CreateSubscriber(t, trainerUID, "Bob", "bob@example.com", "+200", startDate, nil, 120.0)
				return trainerUID
			},
		},
		{
			name: "list subscribers for trainer without subscribers",
			args: args{
				ctx:    context.Background(),
				limit:  10,
				offset: 0,
			},
			wantCount: 0,
			wantErr:   false,
			setup: func(t *testing.T, factory *TestDataFactory) string {
				return factory.CreateTrainer(t, "Coach", "coach@example.com", "coach", "hashedpassword", "trainer")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			trainerUID := tt.setup(t, factory)

			got, err := storage.ListSubscribers(tt.args.ctx, trainerUID, tt.args.limit, tt.args.offset)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, got, tt.wantCount)
			}
		})
	}
}

func TestStorage_ReadSubscriber_NotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	_, err := storage.ReadSubscriber(context.Background(), 999)
	require.ErrorIs(t, err, models.ErrSubscriberNotFound)
}

func TestStorage_UpdateBillingDay(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	trainerUID := factory.CreateTrainer(t, "Coach", "coach@example.com", "coach", "hashedpassword", "trainer")
	startDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	id := factory.CreateSubscriber(t, trainerUID, "Alice", "alice@example.com", "+100", startDate, nil, 150.0)

	rows, err := storage.UpdateBillingDay(context.Background(), id, 28)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	sub, err := storage.ReadSubscriber(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, sub.BillingDay)
	assert.Equal(t, 28, *sub.BillingDay)
}

func TestStorage_GetCurrentPayment(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	trainerUID := factory.CreateTrainer(t, "Coach", "coach@example.com", "coach", "hashedpassword", "trainer")
	startDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	day := 15
	subID := factory.CreateSubscriber(t, trainerUID, "Alice", "alice@example.com", "+100", startDate, &day, 150.0)

	paid := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	factory.CreatePayment(t, subID, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), &paid, 150.0, models.StatusPaid)
	latestID := factory.CreatePayment(t, subID, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), nil, 150.0, models.StatusPending)

	got, err := storage.GetCurrentPayment(context.Background(), subID)
	require.NoError(t, err)
	assert.Equal(t, latestID, got.ID)
	assert.Equal(t, models.StatusPending, got.Status)

	_, err = storage.GetCurrentPayment(context.Background(), 999)
	require.ErrorIs(t, err, models.ErrPaymentNotFound)
}

func TestStorage_UpdatePaymentStatus_Conditional(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	trainerUID := factory.CreateTrainer(t, "Coach", "coach@example.com", "coach", "hashedpassword", "trainer")
	startDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	day := 15
	subID := factory.CreateSubscriber(t, trainerUID, "Alice", "alice@example.com", "+100", startDate, &day, 150.0)
	paymentID := factory.CreatePayment(t, subID, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), nil, 150.0, models.StatusPending)

	paidDate := time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)
	rows, err := storage.UpdatePaymentStatus(context.Background(), paymentID, models.StatusPending, models.StatusPaid, &paidDate)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	// Повторный перевод из pending невозможен: статус уже paid.
	rows, err = storage.UpdatePaymentStatus(context.Background(), paymentID, models.StatusPending, models.StatusPaid, &paidDate)
	require.NoError(t, err)
	assert.Equal(t, 0, rows)

	got, err := storage.ReadPayment(context.Background(), paymentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, got.Status)
	require.NotNil(t, got.PaidDate)
}

func TestStorage_OverridePaymentStatus(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	trainerUID := factory.CreateTrainer(t, "Coach", "coach@example.com", "coach", "hashedpassword", "trainer")
	startDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	day := 15
	subID := factory.CreateSubscriber(t, trainerUID, "Alice", "alice@example.com", "+100", startDate, &day, 150.0)
	paid := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	paymentID := factory.CreatePayment(t, subID, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), &paid, 150.0, models.StatusPaid)

	rows, err := storage.OverridePaymentStatus(context.Background(), paymentID, models.StatusPending, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	got, err := storage.ReadPayment(context.Background(), paymentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Nil(t, got.PaidDate)
}

func TestStorage_ListPendingPayments(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	trainerUID := factory.CreateTrainer(t, "Coach", "coach@example.com", "coach", "hashedpassword", "trainer")
	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day := 10
	subID := factory.CreateSubscriber(t, trainerUID, "Alice", "alice@example.com", "+100", startDate, &day, 150.0)

	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	factory.CreatePayment(t, subID, today.AddDate(0, 0, -5), nil, 150.0, models.StatusPending)
	factory.CreatePayment(t, subID, today, nil, 150.0, models.StatusPending)
	factory.CreatePayment(t, subID, today.AddDate(0, 0, 3), nil, 150.0, models.StatusPending)
	// Оплаченные и далёкие платежи не попадают в выборку.
	paid := today
	factory.CreatePayment(t, subID, today, &paid, 150.0, models.StatusPaid)
	factory.CreatePayment(t, subID, today.AddDate(0, 0, 10), nil, 150.0, models.StatusPending)

	got, err := storage.ListPendingPayments(context.Background(), today.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Len(t, got, 3)
	for _, notice := range got {
		assert.Equal(t, "Alice", notice.SubscriberName)
		assert.Equal(t, "alice@example.com", notice.Email)
	}
}

func TestStorage_EnrollSubscriber(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	trainerUID := factory.CreateTrainer(t, "Coach", "coach@example.com", "coach", "hashedpassword", "trainer")
	startDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	day := 15

	sub := models.Subscriber{
		TrainerUID:    trainerUID,
		Name:          "Alice",
		Email:         "alice@example.com",
		Phone:         "+100",
		StartDate:     startDate,
		BillingDay:    &day,
		MonthlyAmount: 150,
	}
	firstPayment := models.Payment{
		DueDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Amount:  150,
		Status:  models.StatusPending,
	}

	id, err := storage.EnrollSubscriber(context.Background(), sub, firstPayment)
	require.NoError(t, err)

	current, err := storage.GetCurrentPayment(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, current.SubscriberID)
	assert.Equal(t, models.StatusPending, current.Status)
}

func TestStorage_EnrollSubscriber_RollsBackOnPaymentFailure(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	trainerUID := factory.CreateTrainer(t, "Coach", "coach@example.com", "coach", "hashedpassword", "trainer")

	sub := models.Subscriber{
		TrainerUID:    trainerUID,
		Name:          "Bob",
		Email:         "bob@example.com",
		Phone:         "+200",
		StartDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		MonthlyAmount: 120,
	}
	// Статус нарушает CHECK-ограничение таблицы платежей: вставка
	// абонента должна откатиться вместе с платежом.
	badPayment := models.Payment{
		DueDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Amount:  120,
		Status:  models.Status("cancelled"),
	}

	_, err := storage.EnrollSubscriber(context.Background(), sub, badPayment)
	require.Error(t, err)

	var count int
	err = storage.DB.QueryRow(`SELECT COUNT(*) FROM subscribers WHERE name = 'Bob'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
