package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BusinessRepository интерфейс справочника бизнесов
type BusinessRepository interface {
	GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error)
	GetBusinessBySlug(ctx context.Context, slug string) (*domain.Business, error)
}

// AvailabilityEngine интерфейс движка доступности
type AvailabilityEngine interface {
	GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
	GetDayAvailability(ctx context.Context, businessID, serviceID int64, date time.Time) (*domain.DayAvailability, error)
	GetWeekAvailability(ctx context.Context, businessID, serviceID int64, startDate time.Time) []domain.DayAvailability
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
