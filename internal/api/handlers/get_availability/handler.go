package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers"
	computeAvailability "github.com/m04kA/NFA-DeliveryBookingService/internal/usecase/compute_availability"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
	msgMissingParams   = "параметры branchId, startDate и endDate обязательны"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange    = "некорректный диапазон дат"
	msgBranchNotFound  = "филиал не найден"
)

type Handler struct {
	useCase ComputeAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ComputeAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: branchId, startDate, endDate (YYYY-MM-DD, включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	branchIDStr, startStr, endStr := q.Get("branchId"), q.Get("startDate"), q.Get("endDate")

	if branchIDStr == "" || startStr == "" || endStr == "" {
		h.logger.Warn("GET /availability - Missing query params")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	branchID, err := strconv.ParseInt(branchIDStr, 10, 64)
	if err != nil || branchID <= 0 {
		h.logger.Warn("GET /availability - Invalid branch ID: %q", branchIDStr)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(branchID, startStr, endStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, computeAvailability.ErrInvalidRange):
			h.logger.Warn("GET /availability - Invalid range: branch_id=%d, %s..%s", branchID, startStr, endStr)
			handlers.RespondError(w, http.StatusBadRequest, handlers.KindInvalidRange, msgInvalidRange)

		case errors.Is(err, computeAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: branch_id=%d: %v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidBranchID)

		case errors.Is(err, computeAvailability.ErrBranchNotFound):
			h.logger.Warn("GET /availability - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, computeAvailability.ErrStoreUnavailable):
			h.logger.Error("GET /availability - Store unavailable: branch_id=%d, error=%v", branchID, err)
			handlers.RespondStoreUnavailable(w)

		default:
			h.logger.Error("GET /availability - Failed to compute availability: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability computed: branch_id=%d, days=%d", branchID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
