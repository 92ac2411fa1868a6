package holidaycalendar

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("holidaycalendar client: internal error")

	// ErrUnavailable возвращается, когда календарь не ответил
	ErrUnavailable = errors.New("holidaycalendar client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("holidaycalendar client: invalid response")

	// ErrUnknownCountry возвращается, когда календарь не знает код страны
	ErrUnknownCountry = errors.New("holidaycalendar client: unknown country code")
)
