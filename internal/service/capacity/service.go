package capacity

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
	capacityRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/capacity"
	directoryRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/directory"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/capacity/models"
)

// Service сервис просмотра и администрирования вместимости филиалов
type Service struct {
	directoryRepo DirectoryRepository
	capacityRepo  CapacityRepository
	txManager     TransactionManager
	cache         AvailabilityCache
	logger        Logger
}

// NewService создает новый экземпляр сервиса вместимости. cache может быть nil.
func NewService(
	directoryRepo DirectoryRepository,
	capacityRepo CapacityRepository,
	txManager TransactionManager,
	cache AvailabilityCache,
	logger Logger,
) *Service {
	return &Service{
		directoryRepo: directoryRepo,
		capacityRepo:  capacityRepo,
		txManager:     txManager,
		cache:         cache,
		logger:        logger,
	}
}

// GetBranchCapacity возвращает объем склада и вместимость слотов по умолчанию.
// Филиал без настроек отдается с нулями.
func (s *Service) GetBranchCapacity(ctx context.Context, branchID int64) (*models.BranchCapacityResponse, error) {
	branch, err := s.getBranch(ctx, "GetBranchCapacity", branchID)
	if err != nil {
		return nil, err
	}

	volume, err := s.capacityRepo.GetVolumeCapacity(ctx, branchID)
	if err != nil {
		if !errors.Is(err, capacityRepo.ErrVolumeCapacityNotFound) {
			s.logger.Error("GetBranchCapacity: volume lookup failed for branch=%d: %v", branchID, err)
			return nil, fmt.Errorf("%w: GetBranchCapacity - volume capacity: %v", ErrInternal, err)
		}
		volume = nil
	}

	slots, err := s.capacityRepo.GetDefaultSlotCapacity(ctx, branchID)
	if err != nil {
		if !errors.Is(err, capacityRepo.ErrSlotCapacityNotFound) {
			s.logger.Error("GetBranchCapacity: slot capacity lookup failed for branch=%d: %v", branchID, err)
			return nil, fmt.Errorf("%w: GetBranchCapacity - slot capacity: %v", ErrInternal, err)
		}
		slots = nil
	}

	return models.FromDomain(branch, volume, slots), nil
}

// UpdateBranchCapacity применяет изменения администратора в одной транзакции
func (s *Service) UpdateBranchCapacity(ctx context.Context, branchID int64, req *models.UpdateCapacityRequest) (*models.BranchCapacityResponse, error) {
	s.logger.Info("UpdateBranchCapacity: branch=%d", branchID)

	if err := validateUpdate(req); err != nil {
		s.logger.Warn("UpdateBranchCapacity: validation failed for branch=%d: %v", branchID, err)
		return nil, err
	}

	if _, err := s.getBranch(ctx, "UpdateBranchCapacity", branchID); err != nil {
		return nil, err
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if req.WarehouseCapacity != nil || req.InventoryCorrection != nil {
			if err := s.applyVolume(ctx, branchID, req); err != nil {
				return err
			}
		}

		if req.SlotCapacity != nil {
			update := domain.SlotCapacity{
				BranchID:   branchID,
				CapacityAM: req.SlotCapacity.CapacityAM,
				CapacityPM: req.SlotCapacity.CapacityPM,
			}
			if req.SlotCapacity.Date != nil {
				d := domain.NormalizeDate(*req.SlotCapacity.Date)
				update.Date = &d
			}
			if _, err := s.capacityRepo.UpsertSlotCapacity(ctx, update); err != nil {
				return fmt.Errorf("upsert slot capacity: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			s.logger.Warn("UpdateBranchCapacity: rejected for branch=%d: %v", branchID, err)
			return nil, err
		}
		if errors.Is(err, capacityRepo.ErrCapacityBelowInventory) {
			s.logger.Warn("UpdateBranchCapacity: ceiling below inventory for branch=%d", branchID)
			return nil, ErrBelowInventory
		}
		s.logger.Error("UpdateBranchCapacity: transaction failed for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: UpdateBranchCapacity - transaction: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, branchID); err != nil {
			s.logger.Warn("UpdateBranchCapacity: failed to invalidate cache for branch=%d: %v", branchID, err)
		}
	}

	s.logger.Info("UpdateBranchCapacity: branch=%d updated", branchID)
	return s.GetBranchCapacity(ctx, branchID)
}

// applyVolume меняет потолок и inventory в порядке, который не нарушает CHECK inventory <= warehouse_capacity
func (s *Service) applyVolume(ctx context.Context, branchID int64, req *models.UpdateCapacityRequest) error {
	current, err := s.capacityRepo.GetVolumeCapacityForUpdate(ctx, branchID)
	if err != nil && !errors.Is(err, capacityRepo.ErrVolumeCapacityNotFound) {
		return fmt.Errorf("lock volume capacity: %w", err)
	}

	if current == nil {
		// Строки еще нет: сначала создаем потолок
		if req.WarehouseCapacity == nil {
			return fmt.Errorf("%w: warehouse capacity is not configured", ErrInvalidInput)
		}
		if _, err := s.capacityRepo.UpsertWarehouseCapacity(ctx, branchID, *req.WarehouseCapacity); err != nil {
			return fmt.Errorf("create warehouse capacity: %w", err)
		}
		if req.InventoryCorrection != nil {
			if _, err := s.capacityRepo.SetInventory(ctx, branchID, *req.InventoryCorrection); err != nil {
				return fmt.Errorf("set inventory: %w", err)
			}
		}
		return nil
	}

	lowering := req.WarehouseCapacity != nil && req.WarehouseCapacity.LessThan(current.WarehouseCapacity)

	if lowering && req.InventoryCorrection != nil {
		if _, err := s.capacityRepo.SetInventory(ctx, branchID, *req.InventoryCorrection); err != nil {
			return fmt.Errorf("set inventory: %w", err)
		}
		if _, err := s.capacityRepo.UpsertWarehouseCapacity(ctx, branchID, *req.WarehouseCapacity); err != nil {
			return fmt.Errorf("update warehouse capacity: %w", err)
		}
		return nil
	}

	if req.WarehouseCapacity != nil {
		if _, err := s.capacityRepo.UpsertWarehouseCapacity(ctx, branchID, *req.WarehouseCapacity); err != nil {
			return fmt.Errorf("update warehouse capacity: %w", err)
		}
	}
	if req.InventoryCorrection != nil {
		if _, err := s.capacityRepo.SetInventory(ctx, branchID, *req.InventoryCorrection); err != nil {
			return fmt.Errorf("set inventory: %w", err)
		}
	}
	return nil
}

func (s *Service) getBranch(ctx context.Context, method string, branchID int64) (*domain.Branch, error) {
	branch, err := s.directoryRepo.GetBranch(ctx, branchID)
	if err != nil {
		if errors.Is(err, directoryRepo.ErrBranchNotFound) {
			s.logger.Warn("%s: branch=%d not found", method, branchID)
			return nil, ErrBranchNotFound
		}
		s.logger.Error("%s: branch lookup failed for branch=%d: %v", method, branchID, err)
		return nil, fmt.Errorf("%w: %s - get branch: %v", ErrInternal, method, err)
	}
	return branch, nil
}

func validateUpdate(req *models.UpdateCapacityRequest) error {
	if req == nil || (req.WarehouseCapacity == nil && req.InventoryCorrection == nil && req.SlotCapacity == nil) {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.WarehouseCapacity != nil && req.WarehouseCapacity.IsNegative() {
		return fmt.Errorf("%w: warehouse capacity must not be negative", ErrInvalidInput)
	}
	if req.InventoryCorrection != nil && req.InventoryCorrection.IsNegative() {
		return fmt.Errorf("%w: inventory must not be negative", ErrInvalidInput)
	}
	if (req.WarehouseCapacity != nil && !domain.FitsVolumeScale(*req.WarehouseCapacity)) ||
		(req.InventoryCorrection != nil && !domain.FitsVolumeScale(*req.InventoryCorrection)) {
		return fmt.Errorf("%w: volumes allow at most %d decimal places", ErrInvalidInput, domain.VolumeScale)
	}
	if req.WarehouseCapacity != nil && req.InventoryCorrection != nil &&
		req.InventoryCorrection.GreaterThan(*req.WarehouseCapacity) {
		return fmt.Errorf("%w: inventory exceeds warehouse capacity", ErrInvalidInput)
	}
	if req.SlotCapacity != nil && (req.SlotCapacity.CapacityAM < 0 || req.SlotCapacity.CapacityPM < 0) {
		return fmt.Errorf("%w: slot capacity must not be negative", ErrInvalidInput)
	}
	return nil
}
