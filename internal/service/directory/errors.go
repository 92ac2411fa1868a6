package directory

import "errors"

var (
	// ErrRegionNotFound возвращается, когда регион не найден
	ErrRegionNotFound = errors.New("directory: region not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("directory: internal error")
)
