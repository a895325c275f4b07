package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CatalogRepository интерфейс справочника услуг и сотрудников
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	ListStaffForService(ctx context.Context, serviceID int64) ([]*domain.StaffMember, error)
}

// RulesRepository интерфейс репозитория правил доступности
type RulesRepository interface {
	ListWeeklyRules(ctx context.Context, scope domain.Scope, weekday int) ([]*domain.WeeklyRule, error)
	ListDateOverrides(ctx context.Context, scope domain.Scope, date time.Time) ([]*domain.DateOverride, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
