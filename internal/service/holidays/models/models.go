package models

import (
	"time"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
)

// AddHolidayRequest запрос на добавление праздника. BranchID == nil - для всех филиалов.
type AddHolidayRequest struct {
	BranchID *int64
	Date     time.Time
	Name     string
}

// HolidayResponse праздник
type HolidayResponse struct {
	ID       int64
	BranchID *int64
	Date     time.Time
	Name     string
}

func FromDomainHoliday(h *domain.Holiday) *HolidayResponse {
	return &HolidayResponse{
		ID:       h.ID,
		BranchID: h.BranchID,
		Date:     h.Date,
		Name:     h.Name,
	}
}
