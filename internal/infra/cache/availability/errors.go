package availability

import "errors"

var (
	// ErrCacheRead возвращается при ошибке чтения из Redis
	ErrCacheRead = errors.New("availability cache: read failed")

	// ErrCacheWrite возвращается при ошибке записи в Redis
	ErrCacheWrite = errors.New("availability cache: write failed")

	// ErrDecode возвращается, когда закешированное значение повреждено
	ErrDecode = errors.New("availability cache: decode failed")
)
