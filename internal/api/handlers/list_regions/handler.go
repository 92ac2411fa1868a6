package list_regions

import (
	"context"
	"net/http"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/directory/models"
)

type DirectoryService interface {
	ListRegions(ctx context.Context) ([]models.RegionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RegionResponse HTTP response model
type RegionResponse struct {
	RegionID   int64  `json:"regionId"`
	RegionName string `json:"regionName"`
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

// Handle GET /api/v1/regions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	regions, err := h.service.ListRegions(r.Context())
	if err != nil {
		h.logger.Error("GET /regions - Failed to list regions: %v", err)
		handlers.RespondStoreUnavailable(w)
		return
	}

	out := make([]RegionResponse, 0, len(regions))
	for _, reg := range regions {
		out = append(out, RegionResponse{RegionID: reg.RegionID, RegionName: reg.RegionName})
	}
	handlers.RespondData(w, http.StatusOK, out)
}
