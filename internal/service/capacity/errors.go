package capacity

import "errors"

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("capacity: branch not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("capacity: invalid input data")

	// ErrBelowInventory возвращается, когда потолок склада меньше принятого объема
	ErrBelowInventory = errors.New("capacity: warehouse capacity below current inventory")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("capacity: internal error")
)
