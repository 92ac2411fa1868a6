package submit_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных данных заявки
	ErrInvalidInput = errors.New("submit_booking: invalid input")

	// ErrPastDate возвращается, когда дата доставки уже прошла
	ErrPastDate = errors.New("submit_booking: date is in the past")

	// ErrBranchClosed возвращается, когда дата приходится на выходной или праздник
	ErrBranchClosed = errors.New("submit_booking: branch is closed on this date")

	// ErrBranchNotFound возвращается, когда филиал не найден или для него не настроен склад
	ErrBranchNotFound = errors.New("submit_booking: branch not found")

	// ErrSlotFull возвращается, когда в слоте не осталось мест
	ErrSlotFull = errors.New("submit_booking: slot is full")

	// ErrVolumeExceeded возвращается, когда объем превысит вместимость склада
	ErrVolumeExceeded = errors.New("submit_booking: warehouse volume exceeded")

	// ErrReferenceCollision возвращается, когда не удалось подобрать свободный номер заявки
	ErrReferenceCollision = errors.New("submit_booking: reference number collision")

	// ErrStoreUnavailable возвращается при ошибках хранилища, запрос можно повторить
	ErrStoreUnavailable = errors.New("submit_booking: store unavailable")
)
