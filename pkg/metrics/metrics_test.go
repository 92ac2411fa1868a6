package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveBooking(t *testing.T) {
	m := NewWithRegistry("booking", prometheus.NewRegistry())

	m.ObserveBooking(OutcomeBooked)
	m.ObserveBooking(OutcomeBooked)
	m.ObserveBooking(OutcomeSlotFull)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingOutcomes.WithLabelValues("booking", OutcomeBooked)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingOutcomes.WithLabelValues("booking", OutcomeSlotFull)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BookingOutcomes.WithLabelValues("booking", OutcomeVolumeExceeded)))
}

func TestObserveCacheLookup(t *testing.T) {
	m := NewWithRegistry("booking", prometheus.NewRegistry())

	m.ObserveCacheLookup(true)
	m.ObserveCacheLookup(false)
	m.ObserveCacheLookup(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AvailabilityCache.WithLabelValues("booking", "hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AvailabilityCache.WithLabelValues("booking", "miss")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveBooking(OutcomeBooked)
		m.ObserveCacheLookup(true)
	})
}

func TestNewWithRegistry_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewWithRegistry("booking", reg)

	require.Panics(t, func() {
		NewWithRegistry("booking", reg)
	})
}
