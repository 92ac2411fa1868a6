package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/appointment"
	capacityRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/capacity"
	directoryRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/directory"
	"github.com/m04kA/NFA-DeliveryBookingService/pkg/contact"
	"github.com/m04kA/NFA-DeliveryBookingService/pkg/metrics"
	"github.com/m04kA/NFA-DeliveryBookingService/pkg/ptr"
)

// UseCase use case бронирования слота доставки.
// Единственный писатель заявок и inventory.
type UseCase struct {
	directoryRepo   DirectoryRepository
	capacityRepo    CapacityRepository
	appointmentRepo AppointmentRepository
	holidays        HolidayProvider
	txManager       TransactionManager
	references      ReferenceGenerator
	timeProvider    TimeProvider
	logger          Logger

	cache     AvailabilityCache
	publisher EventPublisher
	metrics   Metrics

	location             *time.Location
	phoneRegion          string
	maxReferenceAttempts int
	afterCommitTimeout   time.Duration
}

const defaultAfterCommitTimeout = time.Second

type Option func(*UseCase)

// WithCache сбрасывает кеш доступности филиала после бронирования
func WithCache(cache AvailabilityCache) Option {
	return func(uc *UseCase) { uc.cache = cache }
}

// WithPublisher публикует событие appointment.booked после бронирования
func WithPublisher(p EventPublisher) Option {
	return func(uc *UseCase) { uc.publisher = p }
}

// WithMetrics считает исходы бронирования
func WithMetrics(m Metrics) Option {
	return func(uc *UseCase) { uc.metrics = m }
}

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(uc *UseCase) { uc.timeProvider = tp }
}

// WithReferenceGenerator подменяет генератор номеров заявок
func WithReferenceGenerator(g ReferenceGenerator) Option {
	return func(uc *UseCase) { uc.references = g }
}

// WithLocation задает часовой пояс, в котором определяется "сегодня"
func WithLocation(loc *time.Location) Option {
	return func(uc *UseCase) {
		if loc != nil {
			uc.location = loc
		}
	}
}

// WithPhoneRegion задает регион для проверки номеров телефонов
func WithPhoneRegion(region string) Option {
	return func(uc *UseCase) {
		if region != "" {
			uc.phoneRegion = region
		}
	}
}

// WithMaxReferenceAttempts ограничивает число попыток подобрать свободный номер
func WithMaxReferenceAttempts(n int) Option {
	return func(uc *UseCase) {
		if n > 0 {
			uc.maxReferenceAttempts = n
		}
	}
}

// WithAfterCommitTimeout ограничивает время на сброс кеша и публикацию события
// после фиксации заявки
func WithAfterCommitTimeout(d time.Duration) Option {
	return func(uc *UseCase) {
		if d > 0 {
			uc.afterCommitTimeout = d
		}
	}
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	directoryRepo DirectoryRepository,
	capacityRepo CapacityRepository,
	appointmentRepo AppointmentRepository,
	holidays HolidayProvider,
	txManager TransactionManager,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		directoryRepo:        directoryRepo,
		capacityRepo:         capacityRepo,
		appointmentRepo:      appointmentRepo,
		holidays:             holidays,
		txManager:            txManager,
		references:           NewRandomReferenceGenerator(domain.ReferencePrefix),
		timeProvider:         &RealTimeProvider{},
		logger:               logger,
		location:             time.FixedZone("PHT", 8*60*60),
		phoneRegion:          contact.DefaultRegion,
		maxReferenceAttempts: domain.MaxReferenceAttempts,
		afterCommitTimeout:   defaultAfterCommitTimeout,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute проверяет заявку и атомарно сохраняет её вместе с резервированием объема.
// Блокировка строки объема филиала (FOR UPDATE) выстраивает заявки филиала в очередь,
// а пересчет мест и условный UPDATE идут уже после неё,
// поэтому параллельные заявки не могут переполнить слот или склад.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	result, err := uc.execute(ctx, req)
	uc.observe(err)
	return result, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных, без обращения к хранилищу
	normalizeRequest(req)
	if err := validateRequest(req, uc.phoneRegion); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("SubmitBooking: branch=%d, date=%s, slot=%s, volume=%s",
		req.BranchID, domain.DateKey(req.Date), req.Slot, req.Volume.String())

	// 2. Дата не должна быть в прошлом
	if err := validateNotPast(req.Date, uc.timeProvider.Now(), uc.location); err != nil {
		uc.logger.Warn("SubmitBooking: %v", err)
		return nil, err
	}

	// 3. Филиал должен существовать
	if _, err := uc.directoryRepo.GetBranch(ctx, req.BranchID); err != nil {
		if errors.Is(err, directoryRepo.ErrBranchNotFound) {
			uc.logger.Warn("SubmitBooking: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("SubmitBooking: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: get branch: %v", ErrStoreUnavailable, err)
	}

	// 4. Выходные и праздники закрыты для доставки
	if err := uc.checkOpen(ctx, req.BranchID, req.Date); err != nil {
		return nil, err
	}

	var created *domain.Appointment

	// 5. Проверки вместимости и запись в одной транзакции под блокировкой строки объема
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 5.1. Блокируем строку объема филиала: все бронирования филиала идут по очереди
		volume, err := uc.capacityRepo.GetVolumeCapacityForUpdate(txCtx, req.BranchID)
		if err != nil {
			if errors.Is(err, capacityRepo.ErrVolumeCapacityNotFound) {
				uc.logger.Warn("SubmitBooking: branch id=%d has no volume capacity", req.BranchID)
				return ErrBranchNotFound
			}
			return fmt.Errorf("%w: lock volume capacity: %w", ErrStoreUnavailable, err)
		}

		// 5.2. Вместимость слота на дату (переопределение или значение по умолчанию)
		slotCapacity := 0
		slotCfg, err := uc.capacityRepo.GetSlotCapacity(txCtx, req.BranchID, req.Date)
		switch {
		case err == nil:
			slotCapacity = slotCfg.For(req.Slot)
		case errors.Is(err, capacityRepo.ErrSlotCapacityNotFound):
			uc.logger.Warn("SubmitBooking: branch id=%d has no slot capacity configured", req.BranchID)
		default:
			return fmt.Errorf("%w: get slot capacity: %w", ErrStoreUnavailable, err)
		}

		// 5.3. Пересчитываем занятые места внутри транзакции
		booked, err := uc.appointmentRepo.CountActive(txCtx, req.BranchID, req.Date, req.Slot)
		if err != nil {
			return fmt.Errorf("%w: count active appointments: %w", ErrStoreUnavailable, err)
		}
		if booked >= slotCapacity {
			uc.logger.Warn("SubmitBooking: slot full, %d/%d taken (branch=%d, date=%s, slot=%s)",
				booked, slotCapacity, req.BranchID, domain.DateKey(req.Date), req.Slot)
			return ErrSlotFull
		}

		// 5.4. Проверяем объем склада
		if !volume.CanAccept(req.Volume) {
			uc.logger.Warn("SubmitBooking: volume exceeded, inventory=%s + %s > capacity=%s (branch=%d)",
				volume.Inventory.String(), req.Volume.String(), volume.WarehouseCapacity.String(), req.BranchID)
			return ErrVolumeExceeded
		}

		// 5.5. Сохраняем заявку с уникальным номером
		appointment, err := uc.createWithReference(txCtx, req)
		if err != nil {
			return err
		}

		// 5.6. Резервируем объем условным UPDATE
		if err := uc.capacityRepo.ReserveVolume(txCtx, req.BranchID, req.Volume); err != nil {
			if errors.Is(err, capacityRepo.ErrVolumeExceeded) {
				uc.logger.Warn("SubmitBooking: conditional reserve rejected volume=%s (branch=%d)",
					req.Volume.String(), req.BranchID)
				return ErrVolumeExceeded
			}
			return fmt.Errorf("%w: reserve volume: %w", ErrStoreUnavailable, err)
		}

		created = appointment
		return nil
	})
	if err != nil {
		if isBusinessError(err) || errors.Is(err, ErrStoreUnavailable) {
			if errors.Is(err, ErrStoreUnavailable) {
				uc.logger.Error("SubmitBooking: branch=%d: %v", req.BranchID, err)
			}
			return nil, err
		}
		uc.logger.Error("SubmitBooking: transaction failed for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	uc.logger.Info("SubmitBooking: booked ref=%s id=%d (branch=%d, date=%s, slot=%s)",
		created.ReferenceNumber, created.ID, created.BranchID, domain.DateKey(created.Date), created.Slot)

	// 6. Побочные эффекты после коммита, на результат не влияют
	uc.afterCommit(ctx, created)

	return &Response{
		AppointmentID:   created.ID,
		ReferenceNumber: created.ReferenceNumber,
		BranchID:        created.BranchID,
		Date:            created.Date,
		Slot:            created.Slot,
		Volume:          created.Volume,
		Status:          created.Status,
		CreatedAt:       created.CreatedAt,
	}, nil
}

// checkOpen отклоняет выходные и праздничные даты
func (uc *UseCase) checkOpen(ctx context.Context, branchID int64, date time.Time) error {
	if domain.IsWeekend(date) {
		uc.logger.Warn("SubmitBooking: %s is a weekend", domain.DateKey(date))
		return fmt.Errorf("%w: %s is a weekend", ErrBranchClosed, domain.DateKey(date))
	}

	holidays, err := uc.holidays.HolidaysInRange(ctx, branchID, date, date)
	if err != nil {
		uc.logger.Error("SubmitBooking: failed to get holidays for branch=%d: %v", branchID, err)
		return fmt.Errorf("%w: holidays: %v", ErrStoreUnavailable, err)
	}
	if name, ok := holidays[domain.DateKey(date)]; ok {
		uc.logger.Warn("SubmitBooking: %s is a holiday (%s)", domain.DateKey(date), name)
		return fmt.Errorf("%w: %s is a holiday", ErrBranchClosed, domain.DateKey(date))
	}
	return nil
}

// createWithReference вставляет заявку, перегенерируя номер при конфликте уникальности
func (uc *UseCase) createWithReference(ctx context.Context, req *Request) (*domain.Appointment, error) {
	for attempt := 1; attempt <= uc.maxReferenceAttempts; attempt++ {
		reference, err := uc.references.Generate(req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: generate reference: %v", ErrStoreUnavailable, err)
		}

		created, err := uc.appointmentRepo.Create(ctx, newAppointment(req, reference))
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, appointmentRepo.ErrDuplicateReference) {
			return nil, fmt.Errorf("%w: create appointment: %w", ErrStoreUnavailable, err)
		}

		uc.logger.Warn("SubmitBooking: reference %s already taken, attempt %d/%d",
			reference, attempt, uc.maxReferenceAttempts)
	}

	return nil, fmt.Errorf("%w: %w after %d attempts", ErrStoreUnavailable, ErrReferenceCollision, uc.maxReferenceAttempts)
}

func newAppointment(req *Request, reference string) *domain.Appointment {
	a := &domain.Appointment{
		ReferenceNumber: reference,
		BranchID:        req.BranchID,
		Date:            req.Date,
		Slot:            req.Slot,
		FirstName:       req.FirstName,
		MiddleName:      req.MiddleName,
		LastName:        req.LastName,
		Email:           req.Email,
		ContactNumber:   req.ContactNumber,
		FarmerTypeID:    req.FarmerTypeID,
		Volume:          req.Volume,
		Status:          domain.StatusPending,
	}
	if req.Gender != nil {
		a.Gender = ptr.Ptr(domain.Gender(*req.Gender))
	}
	return a
}

// afterCommit не влияет на результат: заявка уже зафиксирована.
// Отмена запроса клиентом не прерывает побочные эффекты, но их время ограничено.
func (uc *UseCase) afterCommit(ctx context.Context, a *domain.Appointment) {
	if uc.cache == nil && uc.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.afterCommitTimeout)
	defer cancel()

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, a.BranchID); err != nil {
			uc.logger.Warn("SubmitBooking: failed to invalidate availability cache for branch=%d: %v", a.BranchID, err)
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.PublishAppointmentBooked(ctx, a); err != nil {
			uc.logger.Warn("SubmitBooking: failed to publish event for ref=%s: %v", a.ReferenceNumber, err)
		}
	}
}

func isBusinessError(err error) bool {
	return errors.Is(err, ErrSlotFull) ||
		errors.Is(err, ErrVolumeExceeded) ||
		errors.Is(err, ErrBranchNotFound)
}

func (uc *UseCase) observe(err error) {
	if uc.metrics == nil {
		return
	}
	switch {
	case err == nil:
		uc.metrics.ObserveBooking(metrics.OutcomeBooked)
	case errors.Is(err, ErrSlotFull):
		uc.metrics.ObserveBooking(metrics.OutcomeSlotFull)
	case errors.Is(err, ErrVolumeExceeded):
		uc.metrics.ObserveBooking(metrics.OutcomeVolumeExceeded)
	case errors.Is(err, ErrBranchNotFound):
		uc.metrics.ObserveBooking(metrics.OutcomeNotFound)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrPastDate), errors.Is(err, ErrBranchClosed):
		uc.metrics.ObserveBooking(metrics.OutcomeInvalidInput)
	default:
		uc.metrics.ObserveBooking(metrics.OutcomeStoreUnavailable)
	}
}
