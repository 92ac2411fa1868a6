package update_appointment_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/api/middleware"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/appointments"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус, ожидается confirmed или cancelled"
	msgNotFound           = "заявка не найдена"
	msgInvalidTransition  = "переход в указанный статус невозможен"
	msgConflict           = "статус заявки был изменен, обновите данные"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{referenceNumber}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["referenceNumber"]
	actorID, _ := middleware.UserIDFromContext(r.Context())

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{ref}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), reference, req.ToServiceRequest(actorID))
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{ref}/status - Invalid input: ref=%q, status=%q", reference, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /bookings/{ref}/status - Appointment not found: ref=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{ref}/status - Invalid transition: ref=%s, status=%s", reference, req.Status)
			handlers.RespondError(w, http.StatusConflict, handlers.KindConflict, msgInvalidTransition)

		case errors.Is(err, appointments.ErrStatusConflict):
			h.logger.Warn("PATCH /bookings/{ref}/status - Concurrent update: ref=%s", reference)
			handlers.RespondError(w, http.StatusConflict, handlers.KindConflict, msgConflict)

		default:
			h.logger.Error("PATCH /bookings/{ref}/status - Failed to update status: ref=%s, error=%v", reference, err)
			handlers.RespondStoreUnavailable(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{ref}/status - Status updated: ref=%s, status=%s, actor=%d",
		result.ReferenceNumber, result.Status, actorID)
	handlers.RespondData(w, http.StatusOK, StatusResponse{
		ReferenceNumber: result.ReferenceNumber,
		Status:          result.Status,
	})
}
