package compute_availability

import (
	"time"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
)

// CalendarInput все данные, нужные для расчета доступности диапазона
type CalendarInput struct {
	Start time.Time
	End   time.Time

	// DefaultCapacity вместимость слотов филиала по умолчанию (нули, если не настроена)
	DefaultCapacity domain.SlotCounts
	// Overrides вместимость на конкретные даты (YYYY-MM-DD)
	Overrides map[string]domain.SlotCounts
	// Booked неотмененные заявки по датам
	Booked map[string]domain.SlotCounts
	// Holidays праздничные даты
	Holidays map[string]string
}

// BuildCalendar рассчитывает доступность на каждую дату [Start, End] включительно.
// Прошедшие даты не выключаются: это решает вызывающая сторона.
func BuildCalendar(in CalendarInput) map[string]domain.DayAvailability {
	start := domain.NormalizeDate(in.Start)
	end := domain.NormalizeDate(in.End)

	days := make(map[string]domain.DayAvailability)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := domain.DateKey(d)

		capacity := in.DefaultCapacity
		if override, ok := in.Overrides[key]; ok {
			capacity = override
		}
		booked := in.Booked[key]

		_, isHoliday := in.Holidays[key]
		isWeekend := domain.IsWeekend(d)

		day := domain.DayAvailability{
			AMCapacity:  capacity.AM,
			PMCapacity:  capacity.PM,
			AMRemaining: remaining(capacity.AM, booked.AM),
			PMRemaining: remaining(capacity.PM, booked.PM),
			IsWeekend:   isWeekend,
			IsHoliday:   isHoliday,
		}
		isFull := day.AMRemaining == 0 && day.PMRemaining == 0
		day.IsDisabled = isWeekend || isHoliday || isFull

		days[key] = day
	}
	return days
}

func remaining(capacity, booked int) int {
	if booked >= capacity {
		return 0
	}
	return capacity - booked
}

// splitCapacities делит строки вместимости на значение по умолчанию и переопределения дат
func splitCapacities(rows []domain.SlotCapacity) (domain.SlotCounts, map[string]domain.SlotCounts) {
	var def domain.SlotCounts
	overrides := make(map[string]domain.SlotCounts)
	for _, row := range rows {
		if row.IsDefault() {
			def = row.Counts()
			continue
		}
		overrides[domain.DateKey(*row.Date)] = row.Counts()
	}
	return def, overrides
}
