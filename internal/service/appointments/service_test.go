package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/appointments/models"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	items     map[string]*domain.Appointment
	conflict  bool
	getErr    error
	updateErr error
}

func (f *fakeRepo) GetByReference(_ context.Context, ref string) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.items[ref]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, ref string, from, to domain.AppointmentStatus) (*domain.Appointment, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	a, ok := f.items[ref]
	if !ok || a.Status != from || f.conflict {
		return nil, appointmentRepo.ErrStatusConflict
	}
	a.Status = to
	cp := *a
	return &cp, nil
}

type fakeCache struct {
	invalidated []int64
	err         error
}

func (f *fakeCache) Invalidate(_ context.Context, branchID int64) error {
	f.invalidated = append(f.invalidated, branchID)
	return f.err
}

func newRepo(status domain.AppointmentStatus) *fakeRepo {
	return &fakeRepo{items: map[string]*domain.Appointment{
		"NFA20261019ABC123": {
			ID:              1,
			ReferenceNumber: "NFA20261019ABC123",
			BranchID:        7,
			Date:            time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
			Slot:            domain.SlotAM,
			FirstName:       "Juan",
			LastName:        "Dela Cruz",
			Volume:          decimal.NewFromInt(100),
			Status:          status,
		},
	}}
}

func TestGetByReference(t *testing.T) {
	svc := NewService(newRepo(domain.StatusPending), nil, noopLogger{})

	resp, err := svc.GetByReference(context.Background(), " nfa20261019abc123 ")
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.BranchID)
	assert.Equal(t, "pending", resp.Status)
	assert.True(t, resp.Volume.Equal(decimal.NewFromInt(100)))

	_, err = svc.GetByReference(context.Background(), "NFA20261019ZZZZZZ")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = svc.GetByReference(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByReference_RepositoryError(t *testing.T) {
	repo := newRepo(domain.StatusPending)
	repo.getErr = errors.New("connection refused")

	_, err := NewService(repo, nil, noopLogger{}).GetByReference(context.Background(), "NFA20261019ABC123")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.AppointmentStatus
		to      string
		want    string
		wantErr error
	}{
		{name: "pending to confirmed", from: domain.StatusPending, to: "confirmed", want: "confirmed"},
		{name: "pending to cancelled", from: domain.StatusPending, to: "cancelled", want: "cancelled"},
		{name: "confirmed to cancelled", from: domain.StatusConfirmed, to: "CANCELLED", want: "cancelled"},
		{name: "cancelled is final", from: domain.StatusCancelled, to: "confirmed", wantErr: ErrInvalidTransition},
		{name: "confirmed back to pending", from: domain.StatusConfirmed, to: "pending", wantErr: ErrInvalidTransition},
		{name: "unknown status", from: domain.StatusPending, to: "done", wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newRepo(tt.from), nil, noopLogger{})

			resp, err := svc.UpdateStatus(context.Background(), "NFA20261019ABC123", &models.UpdateStatusRequest{ActorID: 1, Status: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Status)
		})
	}
}

func TestUpdateStatus_CancelInvalidatesCache(t *testing.T) {
	cache := &fakeCache{err: errors.New("redis down")}
	svc := NewService(newRepo(domain.StatusPending), cache, noopLogger{})

	_, err := svc.UpdateStatus(context.Background(), "NFA20261019ABC123", &models.UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, cache.invalidated)
}

func TestUpdateStatus_ConfirmKeepsCache(t *testing.T) {
	cache := &fakeCache{}
	svc := NewService(newRepo(domain.StatusPending), cache, noopLogger{})

	_, err := svc.UpdateStatus(context.Background(), "NFA20261019ABC123", &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Empty(t, cache.invalidated)
}

func TestUpdateStatus_Conflict(t *testing.T) {
	repo := newRepo(domain.StatusPending)
	repo.conflict = true

	_, err := NewService(repo, nil, noopLogger{}).UpdateStatus(context.Background(), "NFA20261019ABC123", &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	_, err := NewService(newRepo(domain.StatusPending), nil, noopLogger{}).
		UpdateStatus(context.Background(), "NFA20261019XXXXXX", &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
