package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
)

// UseCase use case для получения слотов услуги на день или неделю
type UseCase struct {
	businessRepo BusinessRepository
	engine       AvailabilityEngine
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	businessRepo BusinessRepository,
	engine AvailabilityEngine,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo: businessRepo,
		engine:       engine,
		logger:       logger,
	}
}

// Execute возвращает слоты услуги на одну дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%s, service=%d, date=%s",
		req.Business, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация, бизнес и услуга
	business, err := uc.prepare(ctx, "GetAvailableSlots", req)
	if err != nil {
		return nil, err
	}

	// 2. Слоты дня
	day, err := uc.engine.GetDayAvailability(ctx, business.ID, req.ServiceID, req.Date)
	if err != nil {
		if errors.Is(err, availability.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to compute availability: %v", err)
		return nil, fmt.Errorf("%w: failed to compute availability: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: %d slots for business=%d, service=%d, date=%s",
		len(day.Slots), business.ID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		BusinessID: business.ID,
		ServiceID:  req.ServiceID,
		Days:       []Day{toDay(day)},
	}, nil
}

// ExecuteWeek возвращает слоты на семь дней начиная с req.Date.
// День, который не удалось рассчитать, отдается без слотов.
func (uc *UseCase) ExecuteWeek(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetWeekAvailability: business=%s, service=%d, startDate=%s",
		req.Business, req.ServiceID, req.Date.Format(domain.DateFormat))

	business, err := uc.prepare(ctx, "GetWeekAvailability", req)
	if err != nil {
		return nil, err
	}

	week := uc.engine.GetWeekAvailability(ctx, business.ID, req.ServiceID, req.Date)

	days := make([]Day, 0, len(week))
	for i := range week {
		days = append(days, toDay(&week[i]))
	}

	return &Response{
		BusinessID: business.ID,
		ServiceID:  req.ServiceID,
		Days:       days,
	}, nil
}

func (uc *UseCase) prepare(ctx context.Context, op string, req *Request) (*domain.Business, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("%s: validation failed: %v", op, err)
		return nil, err
	}

	business, err := uc.resolveBusiness(ctx, req.Business)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBusinessNotFound) {
			uc.logger.Warn("%s: business %q not found", op, req.Business)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("%s: failed to get business %q: %v", op, req.Business, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.IsActive {
		uc.logger.Warn("%s: business id=%d is inactive", op, business.ID)
		return nil, ErrBusinessNotFound
	}

	// Ошибку услуги отдаем сразу, а не пустой неделей
	if _, err := uc.engine.GetService(ctx, business.ID, req.ServiceID); err != nil {
		if errors.Is(err, availability.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	return business, nil
}

func (uc *UseCase) resolveBusiness(ctx context.Context, ref string) (*domain.Business, error) {
	if id, ok := parseBusinessID(ref); ok {
		return uc.businessRepo.GetBusinessByID(ctx, id)
	}
	return uc.businessRepo.GetBusinessBySlug(ctx, strings.TrimSpace(ref))
}
