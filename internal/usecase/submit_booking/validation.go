package submit_booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
	"github.com/m04kA/NFA-DeliveryBookingService/pkg/contact"
	"github.com/m04kA/NFA-DeliveryBookingService/pkg/ptr"
)

var validate = validator.New()

// normalizeRequest обрезает пробелы и приводит слот и пол к каноническому виду
func normalizeRequest(req *Request) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	req.ContactNumber = strings.TrimSpace(req.ContactNumber)
	req.Slot = domain.Slot(strings.ToUpper(strings.TrimSpace(string(req.Slot))))

	req.MiddleName = trimOptional(req.MiddleName)
	if g := trimOptional(req.Gender); g != nil {
		req.Gender = ptr.Ptr(strings.ToLower(*g))
	} else {
		req.Gender = nil
	}
	if !req.Date.IsZero() {
		req.Date = domain.NormalizeDate(req.Date)
	}
}

// trimOptional возвращает nil для пустого значения
func trimOptional(s *string) *string {
	v := strings.TrimSpace(ptr.Value(s))
	if v == "" {
		return nil
	}
	return ptr.Ptr(v)
}

// validateRequest проверяет заявку без обращения к хранилищу.
// Номер телефона сохраняется в формате E.164.
func validateRequest(req *Request, phoneRegion string) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: field %s failed on %q", ErrInvalidInput, verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !req.Volume.IsPositive() {
		return fmt.Errorf("%w: volume must be greater than zero", ErrInvalidInput)
	}
	if !domain.FitsVolumeScale(req.Volume) {
		return fmt.Errorf("%w: volume allows at most %d decimal places", ErrInvalidInput, domain.VolumeScale)
	}

	if err := contact.ValidateEmail(req.Email); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	phone, err := contact.NormalizePhone(req.ContactNumber, phoneRegion)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	req.ContactNumber = phone

	return nil
}

// validateNotPast проверяет, что дата доставки не раньше сегодняшней в часовом поясе филиалов
func validateNotPast(date, now time.Time, loc *time.Location) error {
	today := domain.NormalizeDate(now.In(loc))
	if date.Before(today) {
		return fmt.Errorf("%w: %s is before %s", ErrPastDate, domain.DateKey(date), domain.DateKey(today))
	}
	return nil
}
