package domain

import "strings"

// Slot is one of the two fixed daily delivery windows
type Slot string

const (
	SlotAM Slot = "AM"
	SlotPM Slot = "PM"
)

// ParseSlot accepts "am"/"AM"/"pm"/"PM"
func ParseSlot(s string) (Slot, bool) {
	switch Slot(strings.ToUpper(strings.TrimSpace(s))) {
	case SlotAM:
		return SlotAM, true
	case SlotPM:
		return SlotPM, true
	}
	return "", false
}

// IsValid returns true for AM or PM
func (s Slot) IsValid() bool {
	return s == SlotAM || s == SlotPM
}

// SlotCounts holds a per-slot number (bookings or capacity)
type SlotCounts struct {
	AM int
	PM int
}

// For returns the count of the given slot
func (c SlotCounts) For(slot Slot) int {
	if slot == SlotPM {
		return c.PM
	}
	return c.AM
}

// Add increments the count of the given slot
func (c *SlotCounts) Add(slot Slot, n int) {
	if slot == SlotPM {
		c.PM += n
		return
	}
	c.AM += n
}
