package submit_booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
)

// DirectoryRepository интерфейс справочника филиалов
type DirectoryRepository interface {
	GetBranch(ctx context.Context, branchID int64) (*domain.Branch, error)
}

// CapacityRepository интерфейс репозитория вместимости
type CapacityRepository interface {
	// GetVolumeCapacityForUpdate блокирует строку объема филиала до конца транзакции
	GetVolumeCapacityForUpdate(ctx context.Context, branchID int64) (*domain.VolumeCapacity, error)
	GetSlotCapacity(ctx context.Context, branchID int64, date time.Time) (*domain.SlotCapacity, error)
	// ReserveVolume условно увеличивает inventory, не превышая вместимость
	ReserveVolume(ctx context.Context, branchID int64, volume decimal.Decimal) error
}

// AppointmentRepository интерфейс репозитория заявок
type AppointmentRepository interface {
	CountActive(ctx context.Context, branchID int64, date time.Time, slot domain.Slot) (int, error)
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
}

// HolidayProvider источник праздников филиала
type HolidayProvider interface {
	HolidaysInRange(ctx context.Context, branchID int64, start, end time.Time) (map[string]string, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReferenceGenerator генератор номеров заявок
type ReferenceGenerator interface {
	Generate(date time.Time) (string, error)
}

// AvailabilityCache кеш доступности, сбрасывается после бронирования
type AvailabilityCache interface {
	Invalidate(ctx context.Context, branchID int64) error
}

// EventPublisher публикация событий о новых заявках
type EventPublisher interface {
	PublishAppointmentBooked(ctx context.Context, a *domain.Appointment) error
}

// Metrics бизнес-метрики бронирования
type Metrics interface {
	ObserveBooking(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
