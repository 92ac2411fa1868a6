package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventAppointmentBooked тип события о новой заявке
const EventAppointmentBooked = "appointment.booked"

// AppointmentBooked тело события appointment.booked
type AppointmentBooked struct {
	EventID         string          `json:"event_id"`
	OccurredAt      time.Time       `json:"occurred_at"`
	AppointmentID   int64           `json:"appointment_id"`
	ReferenceNumber string          `json:"reference_number"`
	BranchID        int64           `json:"branch_id"`
	Date            string          `json:"date"`
	Slot            string          `json:"slot"`
	Volume          decimal.Decimal `json:"volume"`
	Email           string          `json:"email"`
	ContactNumber   string          `json:"contact_number"`
}
