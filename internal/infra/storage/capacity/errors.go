package capacity

import "errors"

var (
	// ErrVolumeCapacityNotFound возвращается, когда у филиала нет записи об объеме склада
	ErrVolumeCapacityNotFound = errors.New("capacity.repository: volume capacity not found")

	// ErrSlotCapacityNotFound возвращается, когда для филиала не настроены слоты
	ErrSlotCapacityNotFound = errors.New("capacity.repository: slot capacity not found")

	// ErrVolumeExceeded возвращается, когда резервирование превысило бы вместимость склада
	ErrVolumeExceeded = errors.New("capacity.repository: warehouse volume exceeded")

	// ErrCapacityBelowInventory возвращается, когда вместимость меньше уже принятого объема
	ErrCapacityBelowInventory = errors.New("capacity.repository: warehouse capacity below inventory")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("capacity.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("capacity.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("capacity.repository: failed to scan row")
)
