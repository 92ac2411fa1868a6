package update_appointment_status

import (
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/appointments/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // confirmed | cancelled
}

// StatusResponse HTTP response model
type StatusResponse struct {
	ReferenceNumber string `json:"referenceNumber"`
	Status          string `json:"status"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(actorID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		ActorID: actorID,
		Status:  r.Status,
	}
}
