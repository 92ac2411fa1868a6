package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
)

// BranchCapacityResponse объем склада и вместимость слотов по умолчанию
type BranchCapacityResponse struct {
	BranchID          int64
	BranchName        string
	WarehouseCapacity decimal.Decimal
	Inventory         decimal.Decimal
	AvailableVolume   decimal.Decimal
	CapacityAM        int
	CapacityPM        int
}

// UpdateCapacityRequest запрос администратора на изменение вместимости.
// Незаданные поля не меняются.
type UpdateCapacityRequest struct {
	WarehouseCapacity   *decimal.Decimal
	InventoryCorrection *decimal.Decimal
	SlotCapacity        *SlotCapacityUpdate
}

// SlotCapacityUpdate вместимость слотов; Date == nil меняет значение по умолчанию
type SlotCapacityUpdate struct {
	Date       *time.Time
	CapacityAM int
	CapacityPM int
}

// FromDomain собирает ответ из доменных сущностей
func FromDomain(branch *domain.Branch, volume *domain.VolumeCapacity, slots *domain.SlotCapacity) *BranchCapacityResponse {
	resp := &BranchCapacityResponse{
		BranchID:          branch.ID,
		BranchName:        branch.Name,
		WarehouseCapacity: decimal.Zero,
		Inventory:         decimal.Zero,
		AvailableVolume:   decimal.Zero,
	}
	if volume != nil {
		resp.WarehouseCapacity = volume.WarehouseCapacity
		resp.Inventory = volume.Inventory
		resp.AvailableVolume = volume.AvailableVolume()
	}
	if slots != nil {
		resp.CapacityAM = slots.CapacityAM
		resp.CapacityPM = slots.CapacityPM
	}
	return resp
}
