package compute_availability

import (
	"context"
	"time"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
)

// DirectoryRepository интерфейс справочника филиалов
type DirectoryRepository interface {
	GetBranch(ctx context.Context, branchID int64) (*domain.Branch, error)
}

// CapacityRepository интерфейс репозитория вместимости слотов
type CapacityRepository interface {
	// ListSlotCapacities возвращает настройку по умолчанию и переопределения дат в диапазоне
	ListSlotCapacities(ctx context.Context, branchID int64, start, end time.Time) ([]domain.SlotCapacity, error)
}

// AppointmentRepository интерфейс репозитория заявок
type AppointmentRepository interface {
	// CountActiveByRange считает неотмененные заявки по дням и слотам одним запросом
	CountActiveByRange(ctx context.Context, branchID int64, start, end time.Time) (map[string]domain.SlotCounts, error)
}

// SnapshotManager выполняет чтения на одном снимке данных
type SnapshotManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// HolidayProvider источник праздников филиала (БД и внешний календарь)
type HolidayProvider interface {
	// HolidaysInRange возвращает праздничные даты (YYYY-MM-DD -> название)
	HolidaysInRange(ctx context.Context, branchID int64, start, end time.Time) (map[string]string, error)
}

// AvailabilityCache кеш рассчитанной доступности
type AvailabilityCache interface {
	Get(ctx context.Context, branchID int64, start, end time.Time) (map[string]domain.DayAvailability, bool, error)
	Set(ctx context.Context, branchID int64, start, end time.Time, days map[string]domain.DayAvailability) error
}

// CacheMetrics учет попаданий в кеш
type CacheMetrics interface {
	ObserveCacheLookup(hit bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
