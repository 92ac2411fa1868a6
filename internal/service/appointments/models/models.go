package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
)

// UpdateStatusRequest запрос на изменение статуса заявки
type UpdateStatusRequest struct {
	ActorID int64  // Администратор, выполняющий изменение
	Status  string // confirmed | cancelled
}

// AppointmentResponse заявка для ответа API
type AppointmentResponse struct {
	ID              int64
	ReferenceNumber string
	BranchID        int64
	Date            time.Time
	Slot            string
	FirstName       string
	MiddleName      *string
	LastName        string
	Email           string
	ContactNumber   string
	Gender          *string
	FarmerTypeID    *int64
	Volume          decimal.Decimal
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FromDomainAppointment конвертирует доменную заявку в ответ
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:              a.ID,
		ReferenceNumber: a.ReferenceNumber,
		BranchID:        a.BranchID,
		Date:            a.Date,
		Slot:            string(a.Slot),
		FirstName:       a.FirstName,
		MiddleName:      a.MiddleName,
		LastName:        a.LastName,
		Email:           a.Email,
		ContactNumber:   a.ContactNumber,
		FarmerTypeID:    a.FarmerTypeID,
		Volume:          a.Volume,
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if a.Gender != nil {
		g := string(*a.Gender)
		resp.Gender = &g
	}
	return resp
}
