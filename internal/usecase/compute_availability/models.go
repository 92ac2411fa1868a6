package compute_availability

import (
	"time"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
)

// Request модель запроса доступности
type Request struct {
	BranchID  int64
	StartDate time.Time // Календарная дата, время отбрасывается
	EndDate   time.Time // Включительно
}

// Response модель ответа: по одной записи на каждую дату диапазона
type Response struct {
	BranchID int64
	Days     map[string]domain.DayAvailability // Ключ - дата YYYY-MM-DD
}
