// Package scan реализует HTTP-обработчик ручного запуска сканирования
// платежей.
package scan

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/trainer-billing/internal/http/response"
	"github.com/magabrotheeeer/trainer-billing/internal/lib/sl"
	"github.com/magabrotheeeer/trainer-billing/internal/models"
)

// Handler управляет HTTP-запросами на запуск сканирования.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сканирования платежей.
type Service interface {
	Scan(ctx context.Context) (*models.ScanReport, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Запустить сканирование платежей
// @Description Раскладывает ожидающие платежи по корзинам напоминаний и переводит просроченные в статус overdue. Возвращает отчет по корзинам.
// @Tags Notifications
// @Produce  json
// @Success 200 {object} map[string]any "Отчет сканирования"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /notifications/scan [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.scan"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	report, err := h.service.Scan(r.Context())
	if err != nil {
		log.Error("payment scan failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not scan payments"))
		return
	}

	log.Info("payment scan finished", slog.Int("promoted", report.Promoted))
	render.JSON(w, r, response.OKWithData(report))
}
