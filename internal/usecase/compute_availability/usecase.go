package compute_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
	directoryRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/directory"
)

// UseCase use case расчета доступности слотов филиала
type UseCase struct {
	directoryRepo   DirectoryRepository
	capacityRepo    CapacityRepository
	appointmentRepo AppointmentRepository
	holidays        HolidayProvider
	snapshots       SnapshotManager
	cache           AvailabilityCache
	cacheMetrics    CacheMetrics
	maxRangeDays    int
	logger          Logger
}

type Option func(*UseCase)

// WithCache включает кеширование результатов
func WithCache(cache AvailabilityCache) Option {
	return func(uc *UseCase) {
		uc.cache = cache
	}
}

// WithCacheMetrics включает учет попаданий в кеш
func WithCacheMetrics(m CacheMetrics) Option {
	return func(uc *UseCase) {
		uc.cacheMetrics = m
	}
}

// WithSnapshot читает вместимость и занятые места в одной read-only транзакции
func WithSnapshot(m SnapshotManager) Option {
	return func(uc *UseCase) {
		uc.snapshots = m
	}
}

// WithMaxRangeDays ограничивает длину запрашиваемого диапазона
func WithMaxRangeDays(days int) Option {
	return func(uc *UseCase) {
		if days > 0 {
			uc.maxRangeDays = days
		}
	}
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	directoryRepo DirectoryRepository,
	capacityRepo CapacityRepository,
	appointmentRepo AppointmentRepository,
	holidays HolidayProvider,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		directoryRepo:   directoryRepo,
		capacityRepo:    capacityRepo,
		appointmentRepo: appointmentRepo,
		holidays:        holidays,
		maxRangeDays:    domain.MaxAvailabilityRangeDays,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute рассчитывает доступность. Только чтение, результат может быть слегка устаревшим.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxRangeDays); err != nil {
		uc.logger.Warn("ComputeAvailability: validation failed: %v", err)
		return nil, err
	}

	start, end := req.StartDate, req.EndDate

	// 2. Пробуем кеш
	if uc.cache != nil {
		days, hit, err := uc.cache.Get(ctx, req.BranchID, start, end)
		if err != nil {
			uc.logger.Warn("ComputeAvailability: cache get failed for branch=%d: %v", req.BranchID, err)
		}
		uc.observeCache(hit && err == nil)
		if hit && err == nil {
			return &Response{BranchID: req.BranchID, Days: days}, nil
		}
	}

	// 3. Проверяем филиал
	if _, err := uc.directoryRepo.GetBranch(ctx, req.BranchID); err != nil {
		if errors.Is(err, directoryRepo.ErrBranchNotFound) {
			uc.logger.Warn("ComputeAvailability: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("ComputeAvailability: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: get branch: %v", ErrStoreUnavailable, err)
	}

	var (
		capacities []domain.SlotCapacity
		booked     map[string]domain.SlotCounts
	)
	err := uc.snapshot(ctx, func(ctx context.Context) error {
		var err error

		// 4. Вместимость слотов: по умолчанию и переопределения дат
		capacities, err = uc.capacityRepo.ListSlotCapacities(ctx, req.BranchID, start, end)
		if err != nil {
			uc.logger.Error("ComputeAvailability: failed to list slot capacities for branch=%d: %v", req.BranchID, err)
			return fmt.Errorf("%w: list slot capacities: %v", ErrStoreUnavailable, err)
		}

		// 5. Занятые слоты за весь диапазон одним запросом
		booked, err = uc.appointmentRepo.CountActiveByRange(ctx, req.BranchID, start, end)
		if err != nil {
			uc.logger.Error("ComputeAvailability: failed to count appointments for branch=%d: %v", req.BranchID, err)
			return fmt.Errorf("%w: count appointments: %v", ErrStoreUnavailable, err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrStoreUnavailable) {
			uc.logger.Error("ComputeAvailability: snapshot failed for branch=%d: %v", req.BranchID, err)
			err = fmt.Errorf("%w: snapshot: %v", ErrStoreUnavailable, err)
		}
		return nil, err
	}
	defaultCapacity, overrides := splitCapacities(capacities)

	// 6. Праздники за весь диапазон
	holidays, err := uc.holidays.HolidaysInRange(ctx, req.BranchID, start, end)
	if err != nil {
		uc.logger.Error("ComputeAvailability: failed to get holidays for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: holidays: %v", ErrStoreUnavailable, err)
	}

	// 7. Расчет
	days := BuildCalendar(CalendarInput{
		Start:           start,
		End:             end,
		DefaultCapacity: defaultCapacity,
		Overrides:       overrides,
		Booked:          booked,
		Holidays:        holidays,
	})

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, req.BranchID, start, end, days); err != nil {
			uc.logger.Warn("ComputeAvailability: cache set failed for branch=%d: %v", req.BranchID, err)
		}
	}

	uc.logger.Info("ComputeAvailability: branch=%d, %s..%s, %d days",
		req.BranchID, domain.DateKey(start), domain.DateKey(end), len(days))

	return &Response{BranchID: req.BranchID, Days: days}, nil
}

func (uc *UseCase) snapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	if uc.snapshots == nil {
		return fn(ctx)
	}
	return uc.snapshots.DoReadOnly(ctx, fn)
}

func (uc *UseCase) observeCache(hit bool) {
	if uc.cacheMetrics != nil {
		uc.cacheMetrics.ObserveCacheLookup(hit)
	}
}
