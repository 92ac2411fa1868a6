package get_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/appointments"
)

const (
	msgInvalidReference = "некорректный номер заявки"
	msgNotFound         = "заявка не найдена"
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

// Handle GET /api/v1/bookings/{referenceNumber}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["referenceNumber"]

	result, err := h.service.GetByReference(r.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{ref} - Invalid reference: %q", reference)
			handlers.RespondBadRequest(w, msgInvalidReference)

		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /bookings/{ref} - Appointment not found: ref=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{ref} - Failed to get appointment: ref=%s, error=%v", reference, err)
			handlers.RespondStoreUnavailable(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{ref} - Appointment retrieved: ref=%s", result.ReferenceNumber)
	handlers.RespondData(w, http.StatusOK, FromServiceResponse(result))
}
