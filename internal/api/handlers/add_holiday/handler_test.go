package add_holiday

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/holidays"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/holidays/models"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.AddHolidayRequest
	err error
}

func (f *fakeService) AddHoliday(_ context.Context, req *models.AddHolidayRequest) (*models.HolidayResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.HolidayResponse{ID: 5, BranchID: req.BranchID, Date: req.Date, Name: req.Name}, nil
}

func post(svc HolidayService, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, noopLogger{}).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/holidays", strings.NewReader(body)))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := post(svc, `{"date":"2026-11-30","name":"Bonifacio Day"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, svc.got.BranchID)
	assert.JSONEq(t, `{"success":true,"data":{"id":5,"date":"2026-11-30","name":"Bonifacio Day"}}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, post(&fakeService{}, `{"date":"30.11.2026","name":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(&fakeService{err: holidays.ErrInvalidInput}, `{"date":"2026-11-30","name":""}`).Code)
	assert.Equal(t, http.StatusNotFound, post(&fakeService{err: holidays.ErrBranchNotFound}, `{"branchId":9,"date":"2026-11-30","name":"x"}`).Code)
	assert.Equal(t, http.StatusServiceUnavailable, post(&fakeService{err: holidays.ErrInternal}, `{"date":"2026-11-30","name":"x"}`).Code)
}
