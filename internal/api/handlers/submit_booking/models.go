package submit_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
	submitBooking "github.com/m04kA/NFA-DeliveryBookingService/internal/usecase/submit_booking"
)

// SubmitBookingRequest HTTP request model
type SubmitBookingRequest struct {
	BranchID      int64           `json:"branchId"`
	Date          string          `json:"date"` // "2026-10-19"
	Slot          string          `json:"slot"` // "AM" | "PM"
	FirstName     string          `json:"firstName"`
	MiddleName    *string         `json:"middleName,omitempty"`
	LastName      string          `json:"lastName"`
	Email         string          `json:"email"`
	ContactNumber string          `json:"contactNumber"`
	Gender        *string         `json:"gender,omitempty"`
	FarmerTypeID  *int64          `json:"farmerTypeId,omitempty"`
	Volume        decimal.Decimal `json:"volume"` // кг, число или строка
}

// SubmitBookingResponse HTTP response model
type SubmitBookingResponse struct {
	Success         bool            `json:"success"`
	ReferenceNumber string          `json:"referenceNumber"`
	AppointmentID   int64           `json:"appointmentId"`
	BranchID        int64           `json:"branchId"`
	Date            string          `json:"date"`
	Slot            string          `json:"slot"`
	Volume          decimal.Decimal `json:"volume"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitBookingRequest) ToUseCaseRequest() (*submitBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slot, _ := domain.ParseSlot(r.Slot)

	return &submitBooking.Request{
		BranchID:      r.BranchID,
		Date:          date,
		Slot:          slot,
		FirstName:     r.FirstName,
		MiddleName:    r.MiddleName,
		LastName:      r.LastName,
		Email:         r.Email,
		ContactNumber: r.ContactNumber,
		Gender:        r.Gender,
		FarmerTypeID:  r.FarmerTypeID,
		Volume:        r.Volume,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *SubmitBookingResponse {
	return &SubmitBookingResponse{
		Success:         true,
		ReferenceNumber: resp.ReferenceNumber,
		AppointmentID:   resp.AppointmentID,
		BranchID:        resp.BranchID,
		Date:            resp.Date.Format(domain.DateFormat),
		Slot:            string(resp.Slot),
		Volume:          resp.Volume,
		Status:          string(resp.Status),
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
