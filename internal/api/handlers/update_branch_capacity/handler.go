package update_branch_capacity

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers"
	getBranchCapacity "github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers/get_branch_capacity"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/api/middleware"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/capacity"
)

const (
	msgInvalidBranchID    = "некорректный ID филиала"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные значения вместимости"
	msgBranchNotFound     = "филиал не найден"
	msgBelowInventory     = "вместимость склада не может быть меньше принятого объема"
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

// Handle PUT /api/v1/branches/{branchId}/capacity
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserIDFromContext(r.Context())

	branchID, err := strconv.ParseInt(mux.Vars(r)["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /branches/{id}/capacity - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	var req UpdateCapacityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /branches/{id}/capacity - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PUT /branches/{id}/capacity - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.UpdateBranchCapacity(r.Context(), branchID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, capacity.ErrInvalidInput):
			h.logger.Warn("PUT /branches/{id}/capacity - Invalid input: branch_id=%d: %v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, capacity.ErrBranchNotFound):
			h.logger.Warn("PUT /branches/{id}/capacity - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, capacity.ErrBelowInventory):
			h.logger.Warn("PUT /branches/{id}/capacity - Ceiling below inventory: branch_id=%d", branchID)
			handlers.RespondError(w, http.StatusConflict, handlers.KindConflict, msgBelowInventory)

		default:
			h.logger.Error("PUT /branches/{id}/capacity - Failed to update capacity: branch_id=%d, error=%v", branchID, err)
			handlers.RespondStoreUnavailable(w)
		}
		return
	}

	h.logger.Info("PUT /branches/{id}/capacity - Capacity updated: branch_id=%d, actor=%d", branchID, actorID)
	handlers.RespondData(w, http.StatusOK, getBranchCapacity.FromServiceResponse(result))
}
