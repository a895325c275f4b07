package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Config параметры подключения к Kafka
type Config struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
	MaxAttempts  int
}

// Publisher отправляет события бронирований в Kafka
type Publisher struct {
	writer       MessageWriter
	writeTimeout time.Duration
	now          func() time.Time
	log          Logger
}

// NewPublisher создает издателя поверх kafka.Writer.
// Ключ сообщения - id бронирования, поэтому события одной брони попадают в одну партицию.
func NewPublisher(cfg Config, log Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  cfg.MaxAttempts,
		WriteTimeout: cfg.WriteTimeout,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger:  kafka.LoggerFunc(log.Error),
	}

	return NewPublisherWithWriter(writer, cfg.WriteTimeout, log)
}

// NewPublisherWithWriter создает издателя с заданным writer
func NewPublisherWithWriter(writer MessageWriter, writeTimeout time.Duration, log Logger) *Publisher {
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	return &Publisher{
		writer:       writer,
		writeTimeout: writeTimeout,
		now:          time.Now,
		log:          log,
	}
}

// Publish отправляет событие eventType по бронированию
func (p *Publisher) Publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	msg, err := p.buildMessage(eventType, booking)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("notifications: failed to publish %s for booking id=%d: %v", eventType, booking.ID, err)
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.log.Info("notifications: published %s for booking id=%d", eventType, booking.ID)
	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) buildMessage(eventType string, booking *domain.Booking) (kafka.Message, error) {
	event := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: p.now().UTC(),
		Booking:    toPayload(booking),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	return kafka.Message{
		Key:   []byte(strconv.FormatInt(booking.ID, 10)),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(event.ID)},
			{Key: HeaderEventType, Value: []byte(eventType)},
		},
	}, nil
}

// NoopPublisher используется, когда брокеры не настроены
type NoopPublisher struct{}

// Publish ничего не отправляет и сообщает об этом через ErrDisabled
func (NoopPublisher) Publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	return ErrDisabled
}

// Close ничего не делает
func (NoopPublisher) Close() error {
	return nil
}
