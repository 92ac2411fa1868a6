package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/NFA-DeliveryBookingService/pkg/metrics"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuth(t *testing.T) {
	var gotID int64
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserIDFromContext(r.Context())
	}))

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{name: "missing", header: "", wantCode: http.StatusUnauthorized},
		{name: "not a number", header: "abc", wantCode: http.StatusUnauthorized},
		{name: "negative", header: "-4", wantCode: http.StatusUnauthorized},
		{name: "ok", header: "42", wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
	assert.Equal(t, int64(42), gotID)
}

func TestAdminOnly(t *testing.T) {
	h := Auth(AdminOnly([]int64{1, 2})(http.HandlerFunc(okHandler)))

	req := httptest.NewRequest(http.MethodPut, "/", nil)
	req.Header.Set(UserIDHeader, "2")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPut, "/", nil)
	req.Header.Set(UserIDHeader, "3")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errorKind":"Forbidden"`)

	rec = httptest.NewRecorder()
	AdminOnly([]int64{1})(http.HandlerFunc(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "from-gateway")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "from-gateway", seen)
}

func TestRecover(t *testing.T) {
	h := Recover(noopLogger{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil map")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "nil map")
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.NewWithRegistry("nfa-booking", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m, "nfa-booking"))
	r.HandleFunc("/api/v1/bookings/{referenceNumber}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/bookings/NFA1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/bookings/NFA2", nil))

	got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("nfa-booking", "GET", "/api/v1/bookings/{referenceNumber}", "404"))
	assert.Equal(t, float64(2), got)
}
