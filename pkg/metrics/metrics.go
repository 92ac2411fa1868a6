package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Исходы бронирования для метрики booking_outcomes_total
const (
	OutcomeBooked           = "booked"
	OutcomeSlotFull         = "slot_full"
	OutcomeVolumeExceeded   = "volume_exceeded"
	OutcomeInvalidInput     = "invalid_input"
	OutcomeNotFound         = "not_found"
	OutcomeStoreUnavailable = "store_unavailable"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal     *prometheus.CounterVec
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	BookingOutcomes   *prometheus.CounterVec
	AvailabilityCache *prometheus.CounterVec
}

// New создает и регистрирует метрики в DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в указанном регистре (для тестов - prometheus.NewRegistry())
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		DBQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		}, []string{"service", "operation", "status"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections to the database",
		}, []string{"service"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		BookingOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_outcomes_total",
			Help: "Booking submissions by outcome",
		}, []string{"service", "outcome"}),
		AvailabilityCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_cache_lookups_total",
			Help: "Availability cache lookups by result",
		}, []string{"service", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.BookingOutcomes,
		m.AvailabilityCache,
	)

	return m
}

// ObserveBooking учитывает исход попытки бронирования
func (m *Metrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.BookingOutcomes.WithLabelValues(m.serviceName, outcome).Inc()
}

// ObserveCacheLookup учитывает попадание/промах кеша доступности
func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.AvailabilityCache.WithLabelValues(m.serviceName, result).Inc()
}
