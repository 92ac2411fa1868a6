package compute_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildCalendar_OneEntryPerDateInRange(t *testing.T) {
	start := date(2026, 10, 12)
	end := date(2026, 11, 8)

	days := BuildCalendar(CalendarInput{
		Start:           start,
		End:             end,
		DefaultCapacity: domain.SlotCounts{AM: 3, PM: 3},
	})

	assert.Len(t, days, 28)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		assert.Contains(t, days, domain.DateKey(d))
	}
	assert.NotContains(t, days, domain.DateKey(start.AddDate(0, 0, -1)))
	assert.NotContains(t, days, domain.DateKey(end.AddDate(0, 0, 1)))
}

func TestBuildCalendar_SingleDay(t *testing.T) {
	days := BuildCalendar(CalendarInput{
		Start:           date(2026, 10, 19),
		End:             date(2026, 10, 19),
		DefaultCapacity: domain.SlotCounts{AM: 2, PM: 2},
	})

	require.Len(t, days, 1)
	assert.Equal(t, domain.DayAvailability{
		AMRemaining: 2,
		PMRemaining: 2,
		AMCapacity:  2,
		PMCapacity:  2,
	}, days["2026-10-19"])
}

func TestBuildCalendar_WeekendsAndHolidaysDisabled(t *testing.T) {
	days := BuildCalendar(CalendarInput{
		Start:           date(2026, 10, 16), // Friday
		End:             date(2026, 10, 21), // Wednesday
		DefaultCapacity: domain.SlotCounts{AM: 10, PM: 10},
		Holidays:        map[string]string{"2026-10-21": "Founding Day"},
	})

	assert.False(t, days["2026-10-16"].IsDisabled)
	assert.True(t, days["2026-10-17"].IsDisabled)
	assert.True(t, days["2026-10-17"].IsWeekend)
	assert.True(t, days["2026-10-18"].IsDisabled)
	assert.False(t, days["2026-10-19"].IsDisabled)
	assert.False(t, days["2026-10-20"].IsDisabled)
	assert.True(t, days["2026-10-21"].IsDisabled)
	assert.True(t, days["2026-10-21"].IsHoliday)

	// Capacity is still reported on disabled days
	assert.Equal(t, 10, days["2026-10-17"].AMRemaining)
}

func TestBuildCalendar_RemainingIsConserved(t *testing.T) {
	booked := map[string]domain.SlotCounts{
		"2026-10-19": {AM: 1, PM: 2},
		"2026-10-20": {AM: 2, PM: 0},
		"2026-10-21": {AM: 0, PM: 1},
	}

	days := BuildCalendar(CalendarInput{
		Start:           date(2026, 10, 19),
		End:             date(2026, 10, 23),
		DefaultCapacity: domain.SlotCounts{AM: 2, PM: 2},
		Booked:          booked,
	})

	for key, day := range days {
		b := booked[key]
		assert.Equal(t, day.AMCapacity, day.AMRemaining+b.AM, key)
		assert.Equal(t, day.PMCapacity, day.PMRemaining+b.PM, key)
	}
}

func TestBuildCalendar_FullDayDisabled(t *testing.T) {
	days := BuildCalendar(CalendarInput{
		Start:           date(2026, 10, 19),
		End:             date(2026, 10, 20),
		DefaultCapacity: domain.SlotCounts{AM: 2, PM: 1},
		Booked: map[string]domain.SlotCounts{
			"2026-10-19": {AM: 2, PM: 1},
			"2026-10-20": {AM: 2, PM: 0},
		},
	})

	assert.True(t, days["2026-10-19"].IsDisabled)
	assert.Equal(t, 0, days["2026-10-19"].AMRemaining)
	assert.Equal(t, 0, days["2026-10-19"].PMRemaining)

	assert.False(t, days["2026-10-20"].IsDisabled)
	assert.Equal(t, 1, days["2026-10-20"].PMRemaining)
}

func TestBuildCalendar_OverbookedNeverNegative(t *testing.T) {
	days := BuildCalendar(CalendarInput{
		Start:           date(2026, 10, 19),
		End:             date(2026, 10, 19),
		DefaultCapacity: domain.SlotCounts{AM: 1, PM: 1},
		Booked:          map[string]domain.SlotCounts{"2026-10-19": {AM: 3}},
	})

	assert.Equal(t, 0, days["2026-10-19"].AMRemaining)
	assert.Equal(t, 1, days["2026-10-19"].PMRemaining)
}

func TestBuildCalendar_DateOverrideWins(t *testing.T) {
	days := BuildCalendar(CalendarInput{
		Start:           date(2026, 10, 19),
		End:             date(2026, 10, 20),
		DefaultCapacity: domain.SlotCounts{AM: 2, PM: 2},
		Overrides:       map[string]domain.SlotCounts{"2026-10-20": {AM: 5, PM: 0}},
	})

	assert.Equal(t, 2, days["2026-10-19"].AMCapacity)
	assert.Equal(t, 5, days["2026-10-20"].AMCapacity)
	assert.Equal(t, 0, days["2026-10-20"].PMCapacity)
}

func TestBuildCalendar_NoCapacityConfiguredMeansDisabled(t *testing.T) {
	days := BuildCalendar(CalendarInput{
		Start: date(2026, 10, 19),
		End:   date(2026, 10, 19),
	})

	assert.True(t, days["2026-10-19"].IsDisabled)
	assert.Equal(t, 0, days["2026-10-19"].AMCapacity)
}

func TestBuildCalendar_Idempotent(t *testing.T) {
	in := CalendarInput{
		Start:           date(2026, 10, 1),
		End:             date(2026, 10, 31),
		DefaultCapacity: domain.SlotCounts{AM: 4, PM: 3},
		Booked:          map[string]domain.SlotCounts{"2026-10-05": {AM: 1}},
		Holidays:        map[string]string{"2026-10-07": "Local"},
	}

	assert.Equal(t, BuildCalendar(in), BuildCalendar(in))
}

func TestSplitCapacities(t *testing.T) {
	d := date(2026, 10, 20)
	def, overrides := splitCapacities([]domain.SlotCapacity{
		{BranchID: 1, CapacityAM: 2, CapacityPM: 3},
		{BranchID: 1, Date: &d, CapacityAM: 7, CapacityPM: 1},
	})

	assert.Equal(t, domain.SlotCounts{AM: 2, PM: 3}, def)
	assert.Equal(t, domain.SlotCounts{AM: 7, PM: 1}, overrides["2026-10-20"])
}
