package holidays

import (
	"context"
	"time"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
)

// HolidayRepository интерфейс репозитория праздников
type HolidayRepository interface {
	ListInRange(ctx context.Context, branchID int64, start, end time.Time) ([]domain.Holiday, error)
	Create(ctx context.Context, h domain.Holiday) (*domain.Holiday, error)
}

// DirectoryRepository интерфейс справочника филиалов
type DirectoryRepository interface {
	GetBranch(ctx context.Context, branchID int64) (*domain.Branch, error)
}

// CalendarClient внешний календарь государственных праздников
type CalendarClient interface {
	HolidaysInRange(ctx context.Context, start, end time.Time) ([]domain.Holiday, error)
}

// AvailabilityCache кеш доступности
type AvailabilityCache interface {
	Invalidate(ctx context.Context, branchID int64) error
	InvalidateAll(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
