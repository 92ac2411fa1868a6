package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VolumeCapacity is the per-branch warehouse ceiling and the cumulative committed volume (kg)
type VolumeCapacity struct {
	BranchID          int64
	WarehouseCapacity decimal.Decimal
	Inventory         decimal.Decimal
	UpdatedAt         time.Time
}

// AvailableVolume returns max(0, WarehouseCapacity - Inventory)
func (v VolumeCapacity) AvailableVolume() decimal.Decimal {
	available := v.WarehouseCapacity.Sub(v.Inventory)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

// CanAccept reports whether volume fits under the ceiling
func (v VolumeCapacity) CanAccept(volume decimal.Decimal) bool {
	return v.Inventory.Add(volume).LessThanOrEqual(v.WarehouseCapacity)
}

// VolumeScale is the number of kg decimals the store keeps (NUMERIC(14, 2))
const VolumeScale = 2

// FitsVolumeScale reports whether v is representable without rounding in the store
func FitsVolumeScale(v decimal.Decimal) bool {
	return v.Equal(v.Round(VolumeScale))
}

// SlotCapacity is the headcount limit per slot.
// Date == nil marks the branch default, otherwise it overrides a single date.
type SlotCapacity struct {
	ID         int64
	BranchID   int64
	Date       *time.Time
	CapacityAM int
	CapacityPM int
}

// IsDefault returns true for the branch-wide default row
func (c SlotCapacity) IsDefault() bool {
	return c.Date == nil
}

// For returns the capacity of the given slot
func (c SlotCapacity) For(slot Slot) int {
	if slot == SlotPM {
		return c.CapacityPM
	}
	return c.CapacityAM
}

// Counts returns the capacity pair as SlotCounts
func (c SlotCapacity) Counts() SlotCounts {
	return SlotCounts{AM: c.CapacityAM, PM: c.CapacityPM}
}

// DayAvailability is the availability snapshot for one calendar date
type DayAvailability struct {
	AMRemaining int
	PMRemaining int
	AMCapacity  int
	PMCapacity  int
	IsWeekend   bool
	IsHoliday   bool
	IsDisabled  bool
}
