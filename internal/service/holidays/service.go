package holidays

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
	directoryRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/directory"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/holidays/models"
)

// Service объединяет праздники из БД и внешнего календаря
type Service struct {
	holidayRepo   HolidayRepository
	directoryRepo DirectoryRepository
	calendar      CalendarClient
	cache         AvailabilityCache
	logger        Logger
}

// NewService создает сервис праздников. calendar и cache могут быть nil.
func NewService(
	holidayRepo HolidayRepository,
	directoryRepo DirectoryRepository,
	calendar CalendarClient,
	cache AvailabilityCache,
	logger Logger,
) *Service {
	return &Service{
		holidayRepo:   holidayRepo,
		directoryRepo: directoryRepo,
		calendar:      calendar,
		cache:         cache,
		logger:        logger,
	}
}

// HolidaysInRange возвращает праздничные даты филиала (YYYY-MM-DD -> название).
// Недоступность внешнего календаря не является ошибкой.
func (s *Service) HolidaysInRange(ctx context.Context, branchID int64, start, end time.Time) (map[string]string, error) {
	start, end = domain.NormalizeDate(start), domain.NormalizeDate(end)

	stored, err := s.holidayRepo.ListInRange(ctx, branchID, start, end)
	if err != nil {
		s.logger.Error("HolidaysInRange: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: HolidaysInRange - repository error: %w", ErrInternal, err)
	}

	result := make(map[string]string, len(stored))
	for _, h := range stored {
		result[domain.DateKey(h.Date)] = h.Name
	}

	if s.calendar == nil {
		return result, nil
	}

	external, err := s.calendar.HolidaysInRange(ctx, start, end)
	if err != nil {
		s.logger.Warn("HolidaysInRange: holiday calendar unavailable, using stored holidays only: %v", err)
		return result, nil
	}

	for _, h := range external {
		d := domain.NormalizeDate(h.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		key := domain.DateKey(d)
		if _, ok := result[key]; !ok {
			result[key] = h.Name
		}
	}

	return result, nil
}

// AddHoliday добавляет праздник филиала или общий праздник
func (s *Service) AddHoliday(ctx context.Context, req *models.AddHolidayRequest) (*models.HolidayResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Date.IsZero() || len(name) > domain.MaxNameLength {
		s.logger.Warn("AddHoliday: invalid input date=%v name=%q", req.Date, req.Name)
		return nil, fmt.Errorf("%w: date and name are required", ErrInvalidInput)
	}

	if req.BranchID != nil {
		if _, err := s.directoryRepo.GetBranch(ctx, *req.BranchID); err != nil {
			if errors.Is(err, directoryRepo.ErrBranchNotFound) {
				s.logger.Warn("AddHoliday: branch=%d not found", *req.BranchID)
				return nil, ErrBranchNotFound
			}
			s.logger.Error("AddHoliday: branch lookup failed: %v", err)
			return nil, fmt.Errorf("%w: AddHoliday - get branch: %v", ErrInternal, err)
		}
	}

	created, err := s.holidayRepo.Create(ctx, domain.Holiday{
		BranchID: req.BranchID,
		Date:     domain.NormalizeDate(req.Date),
		Name:     name,
	})
	if err != nil {
		s.logger.Error("AddHoliday: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddHoliday - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, req.BranchID)

	s.logger.Info("AddHoliday: holiday id=%d on %s added", created.ID, domain.DateKey(created.Date))
	return models.FromDomainHoliday(created), nil
}

func (s *Service) invalidate(ctx context.Context, branchID *int64) {
	if s.cache == nil {
		return
	}
	var err error
	if branchID != nil {
		err = s.cache.Invalidate(ctx, *branchID)
	} else {
		err = s.cache.InvalidateAll(ctx)
	}
	if err != nil {
		s.logger.Warn("AddHoliday: failed to invalidate availability cache: %v", err)
	}
}
