package holidays

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("holidays: invalid input data")

	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("holidays: branch not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("holidays: internal error")
)
