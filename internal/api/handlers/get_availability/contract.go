package get_availability

import (
	"context"

	computeAvailability "github.com/m04kA/NFA-DeliveryBookingService/internal/usecase/compute_availability"
)

type ComputeAvailabilityUseCase interface {
	Execute(ctx context.Context, req *computeAvailability.Request) (*computeAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
