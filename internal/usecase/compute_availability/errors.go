package compute_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("compute_availability: invalid input")

	// ErrInvalidRange возвращается, когда начало диапазона позже конца или диапазон слишком длинный
	ErrInvalidRange = errors.New("compute_availability: invalid date range")

	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("compute_availability: branch not found")

	// ErrStoreUnavailable возвращается при ошибках хранилища, запрос можно повторить
	ErrStoreUnavailable = errors.New("compute_availability: store unavailable")
)
