package update_branch_capacity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/capacity/models"
)

// UpdateCapacityRequest HTTP request model. Незаданные поля не меняются.
type UpdateCapacityRequest struct {
	WarehouseCapacity   *decimal.Decimal `json:"warehouseCapacity,omitempty"`
	InventoryCorrection *decimal.Decimal `json:"inventoryCorrection,omitempty"`
	SlotCapacity        *SlotCapacity    `json:"slotCapacity,omitempty"`
}

// SlotCapacity вместимость слотов; без date меняется значение по умолчанию
type SlotCapacity struct {
	Date       *string `json:"date,omitempty"` // "2026-10-19"
	CapacityAM int     `json:"capacityAm"`
	CapacityPM int     `json:"capacityPm"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateCapacityRequest) ToServiceRequest() (*models.UpdateCapacityRequest, error) {
	req := &models.UpdateCapacityRequest{
		WarehouseCapacity:   r.WarehouseCapacity,
		InventoryCorrection: r.InventoryCorrection,
	}

	if r.SlotCapacity != nil {
		slots := &models.SlotCapacityUpdate{
			CapacityAM: r.SlotCapacity.CapacityAM,
			CapacityPM: r.SlotCapacity.CapacityPM,
		}
		if r.SlotCapacity.Date != nil {
			d, err := time.Parse(domain.DateFormat, *r.SlotCapacity.Date)
			if err != nil {
				return nil, err
			}
			slots.Date = &d
		}
		req.SlotCapacity = slots
	}

	return req, nil
}
