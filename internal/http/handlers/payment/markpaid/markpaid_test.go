package markpaid

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/trainer-billing/internal/models"
)

// MockService реализует интерфейс markpaid.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) MarkPaid(ctx context.Context, paymentID int) (*models.Payment, error) {
	args := m.Called(ctx, paymentID)
	if res := args.Get(0); res != nil {
		return res.(*models.Payment), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestMarkPaidHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	paidDate := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная отметка платежа",
			url:  "/payments/123/paid",
			setupMock: func(m *MockService) {
				payment := &models.Payment{
					ID:           123,
					SubscriberID: 1,
					Status:       models.StatusPaid,
					PaidDate:     &paidDate,
					Amount:       150,
				}
				m.On("MarkPaid", mock.Anything, 123).Return(payment, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"paid"`,
		},
		{
			name:           "некорректный id в URL",
			url:            "/payments/abc/paid",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid payment id`,
		},
		{
			name: "платеж не найден",
			url:  "/payments/777/paid",
			setupMock: func(m *MockService) {
				m.On("MarkPaid", mock.Anything, 777).Return(nil, models.ErrPaymentNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `payment not found`,
		},
		{
			name: "платеж уже оплачен",
			url:  "/payments/5/paid",
			setupMock: func(m *MockService) {
				m.On("MarkPaid", mock.Anything, 5).
					Return(nil, &models.InvalidTransitionError{PaymentID: 5, From: models.StatusPaid, To: models.StatusPaid})
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `invalid transition`,
		},
		{
			name: "ошибка сервиса",
			url:  "/payments/9/paid",
			setupMock: func(m *MockService) {
				m.On("MarkPaid", mock.Anything, 9).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not mark payment as paid`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, tt.url, nil)
			rctx := chi.NewRouteContext()
			parts := strings.Split(tt.url, "/")
			rctx.URLParams.Add("id", parts[2])
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
