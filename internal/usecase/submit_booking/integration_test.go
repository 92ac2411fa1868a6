package submit_booking

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/appointment"
	capacityRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/capacity"
	directoryRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/directory"
	holidayRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/holiday"
	holidaysService "github.com/m04kA/NFA-DeliveryBookingService/internal/service/holidays"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/testutil"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/usecase/compute_availability"
	"github.com/m04kA/NFA-DeliveryBookingService/pkg/dbmetrics"
	"github.com/m04kA/NFA-DeliveryBookingService/pkg/txmanager"
)

type pgFixture struct {
	db           *sql.DB
	booking      *UseCase
	availability *compute_availability.UseCase
}

func newPgFixture(t *testing.T) *pgFixture {
	t.Helper()
	ctx := context.Background()

	db := testutil.NewTestDB(t)
	testutil.ApplyMigrations(t, ctx, db)
	testutil.TruncateAll(t, ctx, db)

	wrapped := dbmetrics.Wrap(db, nil, "test")
	appointments := appointmentRepo.NewRepository(wrapped)
	capacities := capacityRepo.NewRepository(wrapped)
	directory := directoryRepo.NewRepository(wrapped)
	holidays := holidaysService.NewService(holidayRepo.NewRepository(wrapped), directory, nil, nil, noopLogger{})
	txMgr := txmanager.NewTransactionManager(wrapped)

	return &pgFixture{
		db: db,
		booking: NewUseCase(directory, capacities, appointments, holidays, txMgr, noopLogger{},
			WithTimeProvider(fixedClock{now: friday}),
		),
		availability: compute_availability.NewUseCase(directory, capacities, appointments, holidays, noopLogger{},
			compute_availability.WithSnapshot(txMgr),
		),
	}
}

func (f *pgFixture) submitConcurrently(n int, build func(i int) *Request) []error {
	errs := make([]error, n)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.booking.Execute(context.Background(), build(i))
		}(i)
	}
	close(start)
	wg.Wait()
	return errs
}

func countErrors(errs []error, target error) (ok, matched int) {
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, target):
			matched++
		}
	}
	return ok, matched
}

func TestPostgres_NextMondayScenario(t *testing.T) {
	f := newPgFixture(t)
	ctx := context.Background()
	_, branchID := testutil.InsertBranch(t, ctx, f.db, "Region I", "Ilocos Norte")
	testutil.InsertCapacity(t, ctx, f.db, branchID, decimal.NewFromInt(10000), decimal.Zero, 2, 2)

	req := validRequest()
	req.BranchID = branchID
	req.FarmerTypeID = nil

	for i := 0; i < 2; i++ {
		_, err := f.booking.Execute(ctx, req)
		require.NoError(t, err)
	}
	_, err := f.booking.Execute(ctx, req)
	require.ErrorIs(t, err, ErrSlotFull)

	resp, err := f.availability.Execute(ctx, &compute_availability.Request{
		BranchID:  branchID,
		StartDate: nextMonday,
		EndDate:   nextMonday,
	})
	require.NoError(t, err)
	day := resp.Days["2026-10-19"]
	assert.Equal(t, 0, day.AMRemaining)
	assert.Equal(t, 2, day.PMRemaining)
	assert.False(t, day.IsDisabled)

	assert.Equal(t, 2, testutil.CountAppointments(t, ctx, f.db, branchID))
	assert.True(t, testutil.Inventory(t, ctx, f.db, branchID).Equal(decimal.NewFromInt(200)))
}

func TestPostgres_VolumeExceededLeavesInventory(t *testing.T) {
	f := newPgFixture(t)
	ctx := context.Background()
	_, branchID := testutil.InsertBranch(t, ctx, f.db, "Region III", "Nueva Ecija")
	testutil.InsertCapacity(t, ctx, f.db, branchID, decimal.NewFromInt(1000), decimal.NewFromInt(950), 10, 10)

	req := validRequest()
	req.BranchID = branchID
	req.FarmerTypeID = nil

	_, err := f.booking.Execute(ctx, req)

	require.ErrorIs(t, err, ErrVolumeExceeded)
	assert.True(t, testutil.Inventory(t, ctx, f.db, branchID).Equal(decimal.NewFromInt(950)))
	assert.Equal(t, 0, testutil.CountAppointments(t, ctx, f.db, branchID))
}

func TestPostgres_ConcurrentLastSlot(t *testing.T) {
	f := newPgFixture(t)
	ctx := context.Background()
	_, branchID := testutil.InsertBranch(t, ctx, f.db, "Region II", "Isabela")
	testutil.InsertCapacity(t, ctx, f.db, branchID, decimal.NewFromInt(10000), decimal.Zero, 1, 1)

	errs := f.submitConcurrently(2, func(int) *Request {
		req := validRequest()
		req.BranchID = branchID
		req.FarmerTypeID = nil
		return req
	})

	ok, full := countErrors(errs, ErrSlotFull)
	assert.Equal(t, 1, ok, "errors: %v", errs)
	assert.Equal(t, 1, full, "errors: %v", errs)
	assert.Equal(t, 1, testutil.CountAppointments(t, ctx, f.db, branchID))
}

func TestPostgres_ConcurrentVolume(t *testing.T) {
	f := newPgFixture(t)
	ctx := context.Background()
	_, branchID := testutil.InsertBranch(t, ctx, f.db, "Region IV", "Quezon")
	testutil.InsertCapacity(t, ctx, f.db, branchID, decimal.NewFromInt(1000), decimal.Zero, 10, 10)

	errs := f.submitConcurrently(2, func(int) *Request {
		req := validRequest()
		req.BranchID = branchID
		req.FarmerTypeID = nil
		req.Volume = decimal.NewFromInt(600)
		return req
	})

	ok, exceeded := countErrors(errs, ErrVolumeExceeded)
	assert.Equal(t, 1, ok, "errors: %v", errs)
	assert.Equal(t, 1, exceeded, "errors: %v", errs)

	inventory := testutil.Inventory(t, ctx, f.db, branchID)
	assert.True(t, inventory.Equal(decimal.NewFromInt(600)), "inventory %s", inventory)
}

func TestPostgres_ConcurrentSubmitsWithRoomAllSucceed(t *testing.T) {
	f := newPgFixture(t)
	ctx := context.Background()
	_, branchID := testutil.InsertBranch(t, ctx, f.db, "Region VI", "Iloilo")
	testutil.InsertCapacity(t, ctx, f.db, branchID, decimal.NewFromInt(100000), decimal.Zero, 20, 20)

	const n = 8
	errs := f.submitConcurrently(n, func(i int) *Request {
		req := validRequest()
		req.BranchID = branchID
		req.FarmerTypeID = nil
		if i%2 == 1 {
			req.Slot = domain.SlotPM
		}
		return req
	})

	for i, err := range errs {
		assert.NoError(t, err, "submit #%d", i)
	}
	assert.Equal(t, n, testutil.CountAppointments(t, ctx, f.db, branchID))
	assert.True(t, testutil.Inventory(t, ctx, f.db, branchID).Equal(decimal.NewFromInt(100*n)))
}
