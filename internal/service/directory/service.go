package directory

import (
	"context"
	"errors"
	"fmt"

	directoryRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/directory"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/directory/models"
)

// Service сервис справочников: регионы, филиалы, типы фермеров
type Service struct {
	repo   DirectoryRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса справочников
func NewService(repo DirectoryRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListRegions возвращает все регионы
func (s *Service) ListRegions(ctx context.Context) ([]models.RegionResponse, error) {
	regions, err := s.repo.ListRegions(ctx)
	if err != nil {
		s.logger.Error("ListRegions: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRegions - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainRegions(regions), nil
}

// ListBranches возвращает филиалы региона
func (s *Service) ListBranches(ctx context.Context, regionID int64) ([]models.BranchResponse, error) {
	if _, err := s.repo.GetRegion(ctx, regionID); err != nil {
		if errors.Is(err, directoryRepo.ErrRegionNotFound) {
			s.logger.Warn("ListBranches: region=%d not found", regionID)
			return nil, ErrRegionNotFound
		}
		s.logger.Error("ListBranches: region lookup failed for region=%d: %v", regionID, err)
		return nil, fmt.Errorf("%w: ListBranches - get region: %v", ErrInternal, err)
	}

	branches, err := s.repo.ListBranchesByRegion(ctx, regionID)
	if err != nil {
		s.logger.Error("ListBranches: repository error for region=%d: %v", regionID, err)
		return nil, fmt.Errorf("%w: ListBranches - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBranches(branches), nil
}

// ListFarmerTypes возвращает типы фермеров
func (s *Service) ListFarmerTypes(ctx context.Context) ([]models.FarmerTypeResponse, error) {
	types, err := s.repo.ListFarmerTypes(ctx)
	if err != nil {
		s.logger.Error("ListFarmerTypes: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListFarmerTypes - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainFarmerTypes(types), nil
}
