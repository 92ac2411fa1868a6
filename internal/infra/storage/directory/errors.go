package directory

import "errors"

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("directory.repository: branch not found")

	// ErrRegionNotFound возвращается, когда регион не найден
	ErrRegionNotFound = errors.New("directory.repository: region not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("directory.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("directory.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("directory.repository: failed to scan row")
)
