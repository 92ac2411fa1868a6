package list_farmer_types

import (
	"context"
	"net/http"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/api/handlers"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/directory/models"
)

type DirectoryService interface {
	ListFarmerTypes(ctx context.Context) ([]models.FarmerTypeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// FarmerTypeResponse HTTP response model
type FarmerTypeResponse struct {
	FarmerTypeID int64  `json:"farmerTypeId"`
	TypeName     string `json:"typeName"`
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

// Handle GET /api/v1/farmer-types
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListFarmerTypes(r.Context())
	if err != nil {
		h.logger.Error("GET /farmer-types - Failed to list farmer types: %v", err)
		handlers.RespondStoreUnavailable(w)
		return
	}

	out := make([]FarmerTypeResponse, 0, len(types))
	for _, ft := range types {
		out = append(out, FarmerTypeResponse{FarmerTypeID: ft.FarmerTypeID, TypeName: ft.TypeName})
	}
	handlers.RespondData(w, http.StatusOK, out)
}
