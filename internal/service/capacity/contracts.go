package capacity

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
)

// DirectoryRepository интерфейс справочника филиалов
type DirectoryRepository interface {
	GetBranch(ctx context.Context, branchID int64) (*domain.Branch, error)
}

// CapacityRepository интерфейс репозитория вместимости
type CapacityRepository interface {
	GetVolumeCapacity(ctx context.Context, branchID int64) (*domain.VolumeCapacity, error)
	GetVolumeCapacityForUpdate(ctx context.Context, branchID int64) (*domain.VolumeCapacity, error)
	UpsertWarehouseCapacity(ctx context.Context, branchID int64, warehouseCapacity decimal.Decimal) (*domain.VolumeCapacity, error)
	SetInventory(ctx context.Context, branchID int64, inventory decimal.Decimal) (*domain.VolumeCapacity, error)
	GetDefaultSlotCapacity(ctx context.Context, branchID int64) (*domain.SlotCapacity, error)
	UpsertSlotCapacity(ctx context.Context, c domain.SlotCapacity) (*domain.SlotCapacity, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityCache кеш доступности, сбрасывается после изменения вместимости
type AvailabilityCache interface {
	Invalidate(ctx context.Context, branchID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
