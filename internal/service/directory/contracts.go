package directory

import (
	"context"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
)

// DirectoryRepository интерфейс справочников
type DirectoryRepository interface {
	GetRegion(ctx context.Context, regionID int64) (*domain.Region, error)
	ListRegions(ctx context.Context) ([]domain.Region, error)
	ListBranchesByRegion(ctx context.Context, regionID int64) ([]domain.Branch, error)
	ListFarmerTypes(ctx context.Context) ([]domain.FarmerType, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
