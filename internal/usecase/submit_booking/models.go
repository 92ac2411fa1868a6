package submit_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
)

// Request модель заявки на доставку
type Request struct {
	BranchID      int64           `validate:"gt=0"`
	Date          time.Time       // Календарная дата доставки
	Slot          domain.Slot     `validate:"required,oneof=AM PM"`
	FirstName     string          `validate:"required,max=100"`
	MiddleName    *string         `validate:"omitempty,max=100"`
	LastName      string          `validate:"required,max=100"`
	Email         string          `validate:"required,max=255"`
	ContactNumber string          `validate:"required"`
	Gender        *string         `validate:"omitempty,oneof=male female other"`
	FarmerTypeID  *int64          `validate:"omitempty,gt=0"`
	Volume        decimal.Decimal // Килограммы, > 0
}

// Response модель ответа на успешное бронирование
type Response struct {
	AppointmentID   int64
	ReferenceNumber string
	BranchID        int64
	Date            time.Time
	Slot            domain.Slot
	Volume          decimal.Decimal
	Status          domain.AppointmentStatus
	CreatedAt       time.Time
}
