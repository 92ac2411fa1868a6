package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/NFA-DeliveryBookingService/internal/infra/storage/appointment"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/appointments/models"
)

// Service сервис просмотра заявок и смены их статуса
type Service struct {
	appointmentRepo AppointmentRepository
	cache           AvailabilityCache
	logger          Logger
}

// NewService создает новый экземпляр сервиса заявок. cache может быть nil.
func NewService(appointmentRepo AppointmentRepository, cache AvailabilityCache, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		cache:           cache,
		logger:          logger,
	}
}

// GetByReference получает заявку по номеру
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.AppointmentResponse, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))
	if reference == "" {
		return nil, fmt.Errorf("%w: reference number is required", ErrInvalidInput)
	}

	a, err := s.appointmentRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByReference: appointment ref=%s not found", reference)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByReference: repository error for ref=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(a), nil
}

// UpdateStatus меняет флаг статуса: pending -> confirmed, pending|confirmed -> cancelled.
// Объем отмененной заявки остается в inventory.
func (s *Service) UpdateStatus(ctx context.Context, reference string, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))
	next := domain.AppointmentStatus(strings.ToLower(strings.TrimSpace(req.Status)))

	s.logger.Info("UpdateStatus: ref=%s -> %s by actor=%d", reference, next, req.ActorID)

	if reference == "" || !next.IsValid() {
		s.logger.Warn("UpdateStatus: invalid input ref=%q status=%q", reference, req.Status)
		return nil, fmt.Errorf("%w: reference and a valid status are required", ErrInvalidInput)
	}

	current, err := s.appointmentRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment ref=%s not found", reference)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for ref=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: UpdateStatus - get appointment: %v", ErrInternal, err)
	}

	if !current.Status.CanTransitionTo(next) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for ref=%s", current.Status, next, reference)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, next)
	}

	// Условный UPDATE по текущему статусу вместо блокировки
	updated, err := s.appointmentRepo.UpdateStatus(ctx, reference, current.Status, next)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusConflict) {
			s.logger.Warn("UpdateStatus: ref=%s changed concurrently", reference)
			return nil, ErrStatusConflict
		}
		s.logger.Error("UpdateStatus: repository error for ref=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: UpdateStatus - update: %v", ErrInternal, err)
	}

	// Отмена освобождает место в слоте
	if next == domain.StatusCancelled && s.cache != nil {
		if err := s.cache.Invalidate(ctx, updated.BranchID); err != nil {
			s.logger.Warn("UpdateStatus: failed to invalidate cache for branch=%d: %v", updated.BranchID, err)
		}
	}

	s.logger.Info("UpdateStatus: ref=%s is now %s", reference, updated.Status)
	return models.FromDomainAppointment(updated), nil
}
