package submit_booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/appointment"
	capacityRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/capacity"
	directoryRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/directory"
)

// memStore хранилище в памяти. Транзакции сериализуются мьютексом,
// при ошибке состояние откатывается к снимку.
type memStore struct {
	txMu sync.Mutex

	branches     map[int64]domain.Branch
	volumes      map[int64]domain.VolumeCapacity
	slots        map[int64]domain.SlotCapacity
	holidays     map[string]string
	appointments []domain.Appointment
	nextID       int64

	reserveErr error
	calls      int
}

func newMemStore() *memStore {
	return &memStore{
		branches: map[int64]domain.Branch{1: {ID: 1, RegionID: 1, Name: "Tarlac"}},
		volumes: map[int64]domain.VolumeCapacity{1: {
			BranchID:          1,
			WarehouseCapacity: decimal.NewFromInt(1000),
			Inventory:         decimal.Zero,
		}},
		slots:    map[int64]domain.SlotCapacity{1: {BranchID: 1, CapacityAM: 2, CapacityPM: 2}},
		holidays: map[string]string{},
	}
}

func (s *memStore) GetBranch(_ context.Context, id int64) (*domain.Branch, error) {
	b, ok := s.branches[id]
	if !ok {
		return nil, directoryRepo.ErrBranchNotFound
	}
	return &b, nil
}

func (s *memStore) GetVolumeCapacityForUpdate(_ context.Context, branchID int64) (*domain.VolumeCapacity, error) {
	s.calls++
	v, ok := s.volumes[branchID]
	if !ok {
		return nil, capacityRepo.ErrVolumeCapacityNotFound
	}
	return &v, nil
}

func (s *memStore) GetSlotCapacity(_ context.Context, branchID int64, _ time.Time) (*domain.SlotCapacity, error) {
	c, ok := s.slots[branchID]
	if !ok {
		return nil, capacityRepo.ErrSlotCapacityNotFound
	}
	return &c, nil
}

func (s *memStore) ReserveVolume(_ context.Context, branchID int64, volume decimal.Decimal) error {
	if s.reserveErr != nil {
		return s.reserveErr
	}
	v := s.volumes[branchID]
	if !v.CanAccept(volume) {
		return capacityRepo.ErrVolumeExceeded
	}
	v.Inventory = v.Inventory.Add(volume)
	s.volumes[branchID] = v
	return nil
}

func (s *memStore) CountActive(_ context.Context, branchID int64, date time.Time, slot domain.Slot) (int, error) {
	n := 0
	for _, a := range s.appointments {
		if a.BranchID == branchID && a.Date.Equal(date) && a.Slot == slot && a.Status != domain.StatusCancelled {
			n++
		}
	}
	return n, nil
}

func (s *memStore) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	for _, existing := range s.appointments {
		if existing.ReferenceNumber == a.ReferenceNumber {
			return nil, appointmentRepo.ErrDuplicateReference
		}
	}
	s.nextID++
	a.ID = s.nextID
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	s.appointments = append(s.appointments, *a)
	return a, nil
}

func (s *memStore) HolidaysInRange(_ context.Context, _ int64, start, end time.Time) (map[string]string, error) {
	out := make(map[string]string)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if name, ok := s.holidays[domain.DateKey(d)]; ok {
			out[domain.DateKey(d)] = name
		}
	}
	return out, nil
}

func (s *memStore) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	volumes := make(map[int64]domain.VolumeCapacity, len(s.volumes))
	for k, v := range s.volumes {
		volumes[k] = v
	}
	appointments := append([]domain.Appointment(nil), s.appointments...)
	nextID := s.nextID

	if err := fn(ctx); err != nil {
		s.volumes = volumes
		s.appointments = appointments
		s.nextID = nextID
		return err
	}
	return nil
}

func (s *memStore) inventory(branchID int64) decimal.Decimal {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.volumes[branchID].Inventory
}

func (s *memStore) count() int {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return len(s.appointments)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// sequenceGenerator выдает номера по порядку, затем повторяет последний
type sequenceGenerator struct {
	mu   sync.Mutex
	refs []string
	i    int
}

func (g *sequenceGenerator) Generate(time.Time) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ref := g.refs[g.i]
	if g.i < len(g.refs)-1 {
		g.i++
	}
	return ref, nil
}

type recordingSideEffects struct {
	mu          sync.Mutex
	invalidated []int64
	published   []string
	outcomes    []string
	fail        bool
}

func (r *recordingSideEffects) Invalidate(_ context.Context, branchID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidated = append(r.invalidated, branchID)
	if r.fail {
		return errors.New("redis down")
	}
	return nil
}

func (r *recordingSideEffects) PublishAppointmentBooked(ctx context.Context, a *domain.Appointment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, a.ReferenceNumber)
	if r.fail {
		return errors.New("kafka down")
	}
	return nil
}

func (r *recordingSideEffects) ObserveBooking(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// stalledPublisher ждет отмены контекста, как брокер без ответа
type stalledPublisher struct {
	ctxErr chan error
}

func (p *stalledPublisher) PublishAppointmentBooked(ctx context.Context, _ *domain.Appointment) error {
	<-ctx.Done()
	p.ctxErr <- ctx.Err()
	return ctx.Err()
}

// cancelAfterCommit отменяет запрос клиента сразу после фиксации
type cancelAfterCommit struct {
	*memStore
	cancel context.CancelFunc
}

func (c cancelAfterCommit) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	err := c.memStore.Do(ctx, fn)
	c.cancel()
	return err
}
