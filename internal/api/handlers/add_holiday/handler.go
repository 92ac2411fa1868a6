package add_holiday

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/holidays"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/holidays/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "дата и название праздника обязательны"
	msgBranchNotFound     = "филиал не найден"
)

type HolidayService interface {
	AddHoliday(ctx context.Context, req *models.AddHolidayRequest) (*models.HolidayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AddHolidayRequest HTTP request model. Без branchId праздник действует для всех филиалов.
type AddHolidayRequest struct {
	BranchID *int64 `json:"branchId,omitempty"`
	Date     string `json:"date"`
	Name     string `json:"name"`
}

// HolidayResponse HTTP response model
type HolidayResponse struct {
	ID       int64  `json:"id"`
	BranchID *int64 `json:"branchId,omitempty"`
	Date     string `json:"date"`
	Name     string `json:"name"`
}

type Handler struct {
	service HolidayService
	logger  Logger
}

func NewHandler(service HolidayService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/holidays
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req AddHolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /holidays - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		h.logger.Warn("POST /holidays - Invalid date: %q", req.Date)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.AddHoliday(r.Context(), &models.AddHolidayRequest{
		BranchID: req.BranchID,
		Date:     date,
		Name:     req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, holidays.ErrInvalidInput):
			h.logger.Warn("POST /holidays - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, holidays.ErrBranchNotFound):
			h.logger.Warn("POST /holidays - Branch not found: branch_id=%v", *req.BranchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		default:
			h.logger.Error("POST /holidays - Failed to add holiday: %v", err)
			handlers.RespondStoreUnavailable(w)
		}
		return
	}

	h.logger.Info("POST /holidays - Holiday added: id=%d, date=%s", result.ID, req.Date)
	handlers.RespondData(w, http.StatusCreated, HolidayResponse{
		ID:       result.ID,
		BranchID: result.BranchID,
		Date:     result.Date.Format(domain.DateFormat),
		Name:     result.Name,
	})
}
