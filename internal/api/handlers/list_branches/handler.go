package list_branches

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/directory"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/directory/models"
)

const (
	msgInvalidRegionID = "некорректный ID региона"
	msgRegionNotFound  = "регион не найден"
)

type DirectoryService interface {
	ListBranches(ctx context.Context, regionID int64) ([]models.BranchResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// BranchResponse HTTP response model
type BranchResponse struct {
	BranchID   int64  `json:"branchId"`
	BranchName string `json:"branchName"`
}

type Handler struct {
	service DirectoryService
	logger  Logger
}

func NewHandler(service DirectoryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/regions/{regionId}/branches
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	regionID, err := strconv.ParseInt(mux.Vars(r)["regionId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /regions/{id}/branches - Invalid region ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRegionID)
		return
	}

	branches, err := h.service.ListBranches(r.Context(), regionID)
	if err != nil {
		if errors.Is(err, directory.ErrRegionNotFound) {
			h.logger.Warn("GET /regions/{id}/branches - Region not found: region_id=%d", regionID)
			handlers.RespondNotFound(w, msgRegionNotFound)
			return
		}
		h.logger.Error("GET /regions/{id}/branches - Failed to list branches: region_id=%d, error=%v", regionID, err)
		handlers.RespondStoreUnavailable(w)
		return
	}

	out := make([]BranchResponse, 0, len(branches))
	for _, b := range branches {
		out = append(out, BranchResponse{BranchID: b.BranchID, BranchName: b.BranchName})
	}
	handlers.RespondData(w, http.StatusOK, out)
}
