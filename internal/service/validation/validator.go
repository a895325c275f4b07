package validation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
)

// Validator проверяет предполагаемое бронирование перед записью
type Validator struct {
	availability AvailabilityChecker
	catalog      CatalogRepository
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewValidator создает новый экземпляр валидатора.
// location задает календарь, по которому определяется "сегодня".
func NewValidator(
	availability AvailabilityChecker,
	catalog CatalogRepository,
	timeProvider TimeProvider,
	location *time.Location,
	logger Logger,
) *Validator {
	if location == nil {
		location = time.UTC
	}
	return &Validator{
		availability: availability,
		catalog:      catalog,
		timeProvider: timeProvider,
		location:     location,
		logger:       logger,
	}
}

// Validate накапливает все применимые ошибки. Единственное исключение - услуга
// не найдена: тогда возвращается ровно одна ошибка. error возвращается только
// при сбоях хранилища.
func (v *Validator) Validate(ctx context.Context, req *Request) (*Result, error) {
	errs := make([]string, 0)

	// 1. Формат времени
	start, startErr := req.StartTime.Minutes()
	if startErr != nil {
		errs = append(errs, MsgInvalidStartTime)
	}
	end, endErr := req.EndTime.Minutes()
	if endErr != nil {
		errs = append(errs, MsgInvalidEndTime)
	}
	windowValid := startErr == nil && endErr == nil

	// 2. Конец позже начала
	if windowValid && end <= start {
		errs = append(errs, MsgEndNotAfterStart)
		windowValid = false
	}

	// 3. Дата не в прошлом по календарю бизнеса
	if v.isPast(req.Date) {
		errs = append(errs, MsgDateInPast)
	}

	// 4. Услуга: при отсутствии проверка прекращается
	service, err := v.availability.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			v.logger.Warn("Validate: service id=%d not found for business=%d", req.ServiceID, req.BusinessID)
			return newResult([]string{MsgServiceNotFound}, nil), nil
		}
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Сотрудник
	staffValid := true
	if service.RequiresStaff {
		staffErrs, err := v.checkStaff(ctx, req, service)
		if err != nil {
			return nil, err
		}
		errs = append(errs, staffErrs...)
		staffValid = len(staffErrs) == 0
	}

	partyValid := req.PartySize >= 1
	if !partyValid {
		errs = append(errs, MsgInvalidPartySize)
	}

	// 6. Правила, закрытия, конфликты и вместимость
	if windowValid && staffValid && partyValid {
		reasons, err := v.availability.CheckProposal(ctx, &availability.Proposal{
			BusinessID:       req.BusinessID,
			Service:          service,
			StaffID:          req.StaffID,
			Date:             req.Date,
			Window:           domain.Interval{Start: start, End: end},
			PartySize:        req.PartySize,
			ExcludeBookingID: req.ExcludeBookingID,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
		}
		errs = append(errs, reasons...)
	}

	if len(errs) > 0 {
		v.logger.Info("Validate: business=%d, service=%d, date=%s rejected: %v",
			req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), errs)
	}

	return newResult(errs, service), nil
}

// checkStaff сотрудник указан, существует, активен и умеет оказывать услугу
func (v *Validator) checkStaff(ctx context.Context, req *Request, service *domain.Service) ([]string, error) {
	if req.StaffID == nil {
		return []string{availability.MsgStaffRequired}, nil
	}

	staff, err := v.catalog.GetStaffByID(ctx, *req.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			return []string{MsgStaffNotFound}, nil
		}
		v.logger.Error("Validate: failed to get staff id=%d: %v", *req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	if !staff.IsActive || staff.BusinessID != req.BusinessID {
		return []string{MsgStaffUnavailable}, nil
	}

	capable, err := v.catalog.StaffCanPerform(ctx, staff.ID, service.ID)
	if err != nil {
		v.logger.Error("Validate: failed to check staff capability: %v", err)
		return nil, fmt.Errorf("%w: failed to check staff capability: %v", ErrInternal, err)
	}
	if !capable {
		return []string{MsgStaffCannotPerform}, nil
	}

	return nil, nil
}

// isPast сравниваются только календарные даты
func (v *Validator) isPast(date time.Time) bool {
	now := v.timeProvider.Now().In(v.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Before(today)
}
