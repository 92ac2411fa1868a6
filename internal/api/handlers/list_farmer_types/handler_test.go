package list_farmer_types

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/directory/models"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeService struct{}

func (fakeService) ListFarmerTypes(context.Context) ([]models.FarmerTypeResponse, error) {
	return []models.FarmerTypeResponse{{FarmerTypeID: 1, TypeName: "Individual"}}, nil
}

func TestHandle(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(fakeService{}, noopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/farmer-types", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[{"farmerTypeId":1,"typeName":"Individual"}]}`, rec.Body.String())
}
