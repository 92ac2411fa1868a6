package get_appointment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/appointments/models"
)

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64           `json:"id"`
	ReferenceNumber string          `json:"referenceNumber"`
	BranchID        int64           `json:"branchId"`
	Date            string          `json:"date"`
	Slot            string          `json:"slot"`
	FirstName       string          `json:"firstName"`
	MiddleName      *string         `json:"middleName,omitempty"`
	LastName        string          `json:"lastName"`
	Email           string          `json:"email"`
	ContactNumber   string          `json:"contactNumber"`
	Gender          *string         `json:"gender,omitempty"`
	FarmerTypeID    *int64          `json:"farmerTypeId,omitempty"`
	Volume          decimal.Decimal `json:"volume"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}

// FromServiceResponse конвертирует модель сервиса в HTTP response
func FromServiceResponse(a *models.AppointmentResponse) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              a.ID,
		ReferenceNumber: a.ReferenceNumber,
		BranchID:        a.BranchID,
		Date:            a.Date.Format(domain.DateFormat),
		Slot:            a.Slot,
		FirstName:       a.FirstName,
		MiddleName:      a.MiddleName,
		LastName:        a.LastName,
		Email:           a.Email,
		ContactNumber:   a.ContactNumber,
		Gender:          a.Gender,
		FarmerTypeID:    a.FarmerTypeID,
		Volume:          a.Volume,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       a.UpdatedAt.Format(time.RFC3339),
	}
}
