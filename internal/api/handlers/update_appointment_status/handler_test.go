package update_appointment_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/api/middleware"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/appointments"
	"github.com/m04kA/NFA-DeliveryBookingService/internal/service/appointments/models"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.UpdateStatusRequest
	err error
}

func (f *fakeService) UpdateStatus(_ context.Context, ref string, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ReferenceNumber: ref, Status: req.Status}, nil
}

// newRouter собирает маршрут с Auth, как в main
func newRouter(svc AppointmentService) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/bookings/{referenceNumber}/status", NewHandler(svc, noopLogger{}).Handle).Methods(http.MethodPatch)
	return r
}

func patch(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/NFA20261019ABC123/status", strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "7")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := patch(newRouter(svc), `{"status":"confirmed"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"referenceNumber":"NFA20261019ABC123","status":"confirmed"}}`, rec.Body.String())
	assert.Equal(t, int64(7), svc.got.ActorID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{name: "bad body", body: `{"state":1}`, wantCode: http.StatusBadRequest},
		{name: "invalid status", body: `{"status":"done"}`, err: appointments.ErrInvalidInput, wantCode: http.StatusBadRequest},
		{name: "not found", body: `{"status":"cancelled"}`, err: appointments.ErrAppointmentNotFound, wantCode: http.StatusNotFound},
		{name: "transition", body: `{"status":"confirmed"}`, err: appointments.ErrInvalidTransition, wantCode: http.StatusConflict},
		{name: "concurrent", body: `{"status":"confirmed"}`, err: appointments.ErrStatusConflict, wantCode: http.StatusConflict},
		{name: "internal", body: `{"status":"confirmed"}`, err: appointments.ErrInternal, wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := patch(newRouter(&fakeService{err: tt.err}), tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
