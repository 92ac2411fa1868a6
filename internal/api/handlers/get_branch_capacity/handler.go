package get_branch_capacity

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/capacity"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
	msgBranchNotFound  = "филиал не найден"
)

type Handler struct {
	service CapacityService
	logger  Logger
}

func NewHandler(service CapacityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/capacity
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := strconv.ParseInt(mux.Vars(r)["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/capacity - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	result, err := h.service.GetBranchCapacity(r.Context(), branchID)
	if err != nil {
		switch {
		case errors.Is(err, capacity.ErrBranchNotFound):
			h.logger.Warn("GET /branches/{id}/capacity - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		default:
			h.logger.Error("GET /branches/{id}/capacity - Failed to get capacity: branch_id=%d, error=%v", branchID, err)
			handlers.RespondStoreUnavailable(w)
		}
		return
	}

	handlers.RespondData(w, http.StatusOK, FromServiceResponse(result))
}
