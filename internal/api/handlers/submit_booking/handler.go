package submit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers"
	submitBooking "github.com/m04kA/NFA-DeliveryBookingService/internal/usecase/submit_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты доставки, ожидается YYYY-MM-DD"
	msgInvalidInput       = "проверьте заполнение полей заявки"
	msgPastDate           = "нельзя записаться на прошедшую дату"
	msgBranchClosed       = "филиал не принимает доставки в выбранную дату"
	msgBranchNotFound     = "филиал не найден"
	msgSlotFull           = "в выбранном слоте не осталось мест, выберите другое время"
	msgVolumeExceeded     = "объем превышает свободную вместимость склада"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SubmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: branch_id=%d, date=%s, slot=%s", req.BranchID, req.Date, req.Slot)
			handlers.RespondError(w, http.StatusConflict, handlers.KindSlotFull, msgSlotFull)

		case errors.Is(err, submitBooking.ErrVolumeExceeded):
			h.logger.Warn("POST /bookings - Volume exceeded: branch_id=%d, volume=%s", req.BranchID, req.Volume)
			handlers.RespondError(w, http.StatusConflict, handlers.KindVolumeExceeded, msgVolumeExceeded)

		case errors.Is(err, submitBooking.ErrBranchNotFound):
			h.logger.Warn("POST /bookings - Branch not found: branch_id=%d", req.BranchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, submitBooking.ErrPastDate):
			h.logger.Warn("POST /bookings - Past date: branch_id=%d, date=%s", req.BranchID, req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, submitBooking.ErrBranchClosed):
			h.logger.Warn("POST /bookings - Branch closed: branch_id=%d, date=%s", req.BranchID, req.Date)
			handlers.RespondBadRequest(w, msgBranchClosed)

		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: branch_id=%d: %v", req.BranchID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, submitBooking.ErrStoreUnavailable):
			h.logger.Error("POST /bookings - Store unavailable: branch_id=%d, error=%v", req.BranchID, err)
			handlers.RespondStoreUnavailable(w)

		default:
			h.logger.Error("POST /bookings - Failed to submit booking: branch_id=%d, error=%v", req.BranchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking submitted: ref=%s, branch_id=%d, date=%s, slot=%s",
		result.ReferenceNumber, result.BranchID, req.Date, result.Slot)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
