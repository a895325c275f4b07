package notifications

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// EventPublisher синхронная отправка одного события (Publisher или NoopPublisher)
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, booking *domain.Booking) error
}

// MessageWriter часть kafka.Writer, которой пользуется издатель
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
