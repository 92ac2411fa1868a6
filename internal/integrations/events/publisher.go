package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/NFA-DeliveryBookingService/internal/domain"
)

// Publisher публикует события бронирования в Kafka.
// Ключ сообщения - ID филиала, события одного филиала попадают в одну партицию.
type Publisher struct {
	writer MessageWriter
	topic  string
	log    Logger
	now    func() time.Time
}

// NewKafkaWriter создает kafka.Writer с Hash балансировщиком
func NewKafkaWriter(brokers []string, writeTimeout time.Duration) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: writeTimeout,
	}
}

// NewPublisher создает публикатор событий
func NewPublisher(writer MessageWriter, topic string, log Logger) *Publisher {
	return &Publisher{
		writer: writer,
		topic:  topic,
		log:    log,
		now:    time.Now,
	}
}

// PublishAppointmentBooked отправляет событие appointment.booked
func (p *Publisher) PublishAppointmentBooked(ctx context.Context, a *domain.Appointment) error {
	event := AppointmentBooked{
		EventID:         uuid.NewString(),
		OccurredAt:      p.now().UTC(),
		AppointmentID:   a.ID,
		ReferenceNumber: a.ReferenceNumber,
		BranchID:        a.BranchID,
		Date:            domain.DateKey(a.Date),
		Slot:            string(a.Slot),
		Volume:          a.Volume,
		Email:           a.Email,
		ContactNumber:   a.ContactNumber,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(strconv.FormatInt(a.BranchID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(EventAppointmentBooked)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: ref=%s: %v", ErrPublish, a.ReferenceNumber, err)
	}

	p.log.Info("PublishAppointmentBooked: ref=%s published to %s", a.ReferenceNumber, p.topic)
	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}
