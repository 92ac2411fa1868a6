package compute_availability

import (
	"fmt"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
)

// validateRequest валидирует и нормализует даты запроса
func validateRequest(req *Request, maxRangeDays int) error {
	if req.BranchID <= 0 {
		return fmt.Errorf("%w: branchID must be positive", ErrInvalidInput)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	req.StartDate = domain.NormalizeDate(req.StartDate)
	req.EndDate = domain.NormalizeDate(req.EndDate)

	if req.StartDate.After(req.EndDate) {
		return fmt.Errorf("%w: startDate %s is after endDate %s",
			ErrInvalidRange, domain.DateKey(req.StartDate), domain.DateKey(req.EndDate))
	}

	days := int(req.EndDate.Sub(req.StartDate).Hours()/24) + 1
	if days > maxRangeDays {
		return fmt.Errorf("%w: range of %d days exceeds %d", ErrInvalidRange, days, maxRangeDays)
	}

	return nil
}
