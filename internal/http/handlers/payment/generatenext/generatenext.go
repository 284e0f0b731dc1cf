// Package generatenext реализует HTTP-обработчик выпуска платежа
// следующего месяца для абонента.
package generatenext

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trainer-billing/internal/http/response"
	"github.com/magabrotheeeer/trainer-billing/internal/lib/sl"
	"github.com/magabrotheeeer/trainer-billing/internal/models"
)

// Handler управляет HTTP-запросами на выпуск следующего платежа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выпуска платежа.
type Service interface {
	GenerateNext(ctx context.Context, subscriberID int) (*models.Payment, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выпустить платеж следующего месяца
// @Description Создает для абонента платеж следующего цикла. Срок считается от текущего платежа с прижатием дня списания к короткому месяцу.
// @Tags Payments
// @Produce  json
// @Param id path int true "ID абонента"
// @Success 200 {object} map[string]any "Созданный платеж"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Платеж или абонент не найдены"
// @Failure 409 {object} response.ErrorResponse "Текущий платеж не оплачен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /subscribers/{id}/payments/next [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.generatenext"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	subscriberID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid subscriber id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid subscriber id"))
		return
	}

	payment, err := h.service.GenerateNext(r.Context(), subscriberID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPaymentNotFound), errors.Is(err, models.ErrSubscriberNotFound):
			log.Error("not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscriber or payment not found"))
		case errors.Is(err, models.ErrUnpaidCurrentPayment):
			log.Error("current payment is not paid", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("current payment is not paid"))
		default:
			log.Error("failed to generate next payment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not generate next payment"))
		}
		return
	}

	log.Info("next payment generated",
		slog.Int("subscriber_id", subscriberID),
		slog.Int("payment_id", payment.ID))
	render.JSON(w, r, response.OKWithData(payment))
}
