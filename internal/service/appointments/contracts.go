package appointments

import (
	"context"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория заявок
type AppointmentRepository interface {
	GetByReference(ctx context.Context, reference string) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, reference string, from, to domain.AppointmentStatus) (*domain.Appointment, error)
}

// AvailabilityCache кеш доступности, сбрасывается после отмены
type AvailabilityCache interface {
	Invalidate(ctx context.Context, branchID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
