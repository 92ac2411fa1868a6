package get_branch_capacity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/capacity"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/capacity/models"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeService struct{}

func (fakeService) GetBranchCapacity(_ context.Context, id int64) (*models.BranchCapacityResponse, error) {
	if id != 3 {
		return nil, capacity.ErrBranchNotFound
	}
	return &models.BranchCapacityResponse{
		BranchID:          3,
		BranchName:        "Cabanatuan",
		WarehouseCapacity: decimal.NewFromInt(1000),
		Inventory:         decimal.NewFromInt(950),
		AvailableVolume:   decimal.NewFromInt(50),
		CapacityAM:        2,
		CapacityPM:        2,
	}, nil
}

func serve(id string) *httptest.ResponseRecorder {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"branchId": id})
	rec := httptest.NewRecorder()
	NewHandler(fakeService{}, noopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve("3")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{
		"branchId":3,"branchName":"Cabanatuan",
		"warehouseCapacity":"1000","inventory":"950","availableVolume":"50",
		"capacityAm":2,"capacityPm":2}}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, serve("4").Code)
	assert.Equal(t, http.StatusBadRequest, serve("abc").Code)
}
