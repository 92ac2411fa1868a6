package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда заявка не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInvalidTransition возвращается, когда переход статуса запрещен
	ErrInvalidTransition = errors.New("appointments: status transition not allowed")

	// ErrStatusConflict возвращается, когда статус изменили параллельно
	ErrStatusConflict = errors.New("appointments: status changed concurrently")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
