package validation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
)

// AvailabilityChecker интерфейс движка доступности
type AvailabilityChecker interface {
	GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
	CheckProposal(ctx context.Context, p *availability.Proposal) ([]string, error)
}

// CatalogRepository интерфейс справочника сотрудников
type CatalogRepository interface {
	GetStaffByID(ctx context.Context, id int64) (*domain.StaffMember, error)
	StaffCanPerform(ctx context.Context, staffID, serviceID int64) (bool, error)
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
