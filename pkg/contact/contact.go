// Package contact содержит чистые функции проверки контактных данных заявителя.
package contact

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ttacon/libphonenumber"
)

// DefaultRegion регион номеров по умолчанию
const DefaultRegion = "PH"

var (
	ErrInvalidEmail = errors.New("contact: invalid email")
	ErrInvalidPhone = errors.New("contact: invalid phone number")
)

// Локальный формат мобильных номеров Филиппин: 09XXXXXXXXX или +639XXXXXXXXX
var phMobilePattern = regexp.MustCompile(`^(09|\+639)\d{9}$`)

var validate = validator.New()

// ValidateEmail проверяет синтаксис email
func ValidateEmail(email string) error {
	if err := validate.Var(strings.TrimSpace(email), "required,email"); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	}
	return nil
}

// ValidatePhone проверяет номер телефона для региона.
// Для PH дополнительно требуется мобильный номер в локальном формате.
func ValidatePhone(phone, region string) error {
	phone = compact(phone)
	if region == "" {
		region = DefaultRegion
	}

	if region == DefaultRegion && !phMobilePattern.MatchString(phone) {
		return fmt.Errorf("%w: %q does not match PH mobile format", ErrInvalidPhone, phone)
	}

	num, err := libphonenumber.Parse(phone, region)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}
	if !libphonenumber.IsValidNumber(num) {
		return fmt.Errorf("%w: %q is not a valid %s number", ErrInvalidPhone, phone, region)
	}
	return nil
}

// NormalizePhone приводит номер к E.164 (+639171234567)
func NormalizePhone(phone, region string) (string, error) {
	if err := ValidatePhone(phone, region); err != nil {
		return "", err
	}
	if region == "" {
		region = DefaultRegion
	}
	num, err := libphonenumber.Parse(compact(phone), region)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}
	return libphonenumber.Format(num, libphonenumber.E164), nil
}

// compact убирает пробелы и дефисы, которые люди ставят в номерах
func compact(phone string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(phone))
}
