package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the status of a delivery appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsValid returns true for a known status
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status flag may move from s to next.
// pending -> confirmed, pending|confirmed -> cancelled. Cancelled is terminal.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled
	}
	return false
}

// Gender of the applicant, optional
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Appointment is a committed delivery booking. Only Status changes after creation.
type Appointment struct {
	ID              int64
	ReferenceNumber string
	BranchID        int64
	Date            time.Time
	Slot            Slot

	FirstName     string
	MiddleName    *string
	LastName      string
	Email         string
	ContactNumber string
	Gender        *Gender
	FarmerTypeID  *int64

	// Volume in kilograms, always > 0
	Volume decimal.Decimal
	Status AppointmentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
