package get_availability

import (
	"time"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
	computeAvailability "github.com/m04kA/NFA-DeliveryBookingService/internal/usecase/compute_availability"
)

// DayResponse доступность одной даты
type DayResponse struct {
	AMRemaining int  `json:"amRemaining"`
	PMRemaining int  `json:"pmRemaining"`
	AMCapacity  int  `json:"amCapacity"`
	PMCapacity  int  `json:"pmCapacity"`
	IsDisabled  bool `json:"isDisabled"`
}

// ToUseCaseRequest парсит даты YYYY-MM-DD
func ToUseCaseRequest(branchID int64, startDate, endDate string) (*computeAvailability.Request, error) {
	start, err := time.Parse(domain.DateFormat, startDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(domain.DateFormat, endDate)
	if err != nil {
		return nil, err
	}
	return &computeAvailability.Request{
		BranchID:  branchID,
		StartDate: start,
		EndDate:   end,
	}, nil
}

// FromUseCaseResponse отдает карту дата -> доступность
func FromUseCaseResponse(resp *computeAvailability.Response) map[string]DayResponse {
	out := make(map[string]DayResponse, len(resp.Days))
	for date, d := range resp.Days {
		out[date] = DayResponse{
			AMRemaining: d.AMRemaining,
			PMRemaining: d.PMRemaining,
			AMCapacity:  d.AMCapacity,
			PMCapacity:  d.PMCapacity,
			IsDisabled:  d.IsDisabled,
		}
	}
	return out
}
