package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/validation"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// BusinessRepository интерфейс справочника бизнесов
type BusinessRepository interface {
	GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error)
}

// Validator интерфейс проверки бронирования
type Validator interface {
	Validate(ctx context.Context, req *validation.Request) (*validation.Result, error)
}

// Notifier интерфейс фоновой отправки событий бронирования
type Notifier interface {
	Dispatch(ctx context.Context, eventType string, booking *domain.Booking, onSent func(ctx context.Context))
}

// Metrics интерфейс учета операций
type Metrics interface {
	RecordBooking(operation, outcome string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
