package list_regions

import (
	"context"
	"errors"
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

type fakeService struct {
	regions []models.RegionResponse
	err     error
}

func (f fakeService) ListRegions(context.Context) ([]models.RegionResponse, error) {
	return f.regions, f.err
}

func TestHandle(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(fakeService{regions: []models.RegionResponse{{RegionID: 1, RegionName: "Central Luzon"}}}, noopLogger{}).
		Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/regions", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[{"regionId":1,"regionName":"Central Luzon"}]}`, rec.Body.String())
}

func TestHandle_Empty(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(fakeService{}, noopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/regions", nil))

	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
}

func TestHandle_Error(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(fakeService{err: errors.New("down")}, noopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/regions", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
