package get_branch_capacity

import (
	"context"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/capacity/models"
)

type CapacityService interface {
	GetBranchCapacity(ctx context.Context, branchID int64) (*models.BranchCapacityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
