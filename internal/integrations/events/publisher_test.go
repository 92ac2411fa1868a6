package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func appointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              15,
		ReferenceNumber: "NFA20261019ABC123",
		BranchID:        3,
		Date:            time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		Slot:            domain.SlotPM,
		Email:           "juan@example.com",
		ContactNumber:   "+639171234567",
		Volume:          decimal.RequireFromString("250.50"),
	}
}

func TestPublishAppointmentBooked(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisher(w, "nfa.appointments", noopLogger{})
	p.now = func() time.Time { return time.Date(2026, 10, 16, 2, 0, 0, 0, time.UTC) }

	require.NoError(t, p.PublishAppointmentBooked(context.Background(), appointment()))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "nfa.appointments", msg.Topic)
	assert.Equal(t, "3", string(msg.Key))
	assert.Equal(t, "event_type", msg.Headers[1].Key)
	assert.Equal(t, EventAppointmentBooked, string(msg.Headers[1].Value))

	var event AppointmentBooked
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "NFA20261019ABC123", event.ReferenceNumber)
	assert.Equal(t, "2026-10-19", event.Date)
	assert.Equal(t, "PM", event.Slot)
	assert.True(t, event.Volume.Equal(decimal.RequireFromString("250.5")))
	assert.Equal(t, string(msg.Headers[0].Value), event.EventID)
	assert.NotEmpty(t, event.EventID)
}

func TestPublishAppointmentBooked_WriterError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := NewPublisher(w, "nfa.appointments", noopLogger{})

	err := p.PublishAppointmentBooked(context.Background(), appointment())
	assert.ErrorIs(t, err, ErrPublish)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
