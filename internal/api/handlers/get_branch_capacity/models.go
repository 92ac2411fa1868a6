package get_branch_capacity

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/capacity/models"
)

// BranchCapacityResponse HTTP response model
type BranchCapacityResponse struct {
	BranchID          int64           `json:"branchId"`
	BranchName        string          `json:"branchName"`
	WarehouseCapacity decimal.Decimal `json:"warehouseCapacity"`
	Inventory         decimal.Decimal `json:"inventory"`
	AvailableVolume   decimal.Decimal `json:"availableVolume"`
	CapacityAM        int             `json:"capacityAm"`
	CapacityPM        int             `json:"capacityPm"`
}

// FromServiceResponse конвертирует модель сервиса в HTTP response
func FromServiceResponse(c *models.BranchCapacityResponse) *BranchCapacityResponse {
	return &BranchCapacityResponse{
		BranchID:          c.BranchID,
		BranchName:        c.BranchName,
		WarehouseCapacity: c.WarehouseCapacity,
		Inventory:         c.Inventory,
		AvailableVolume:   c.AvailableVolume,
		CapacityAM:        c.CapacityAM,
		CapacityPM:        c.CapacityPM,
	}
}
