package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
)

// Service движок доступности: слоты на день и неделю, проверка одного слота
type Service struct {
	catalog      CatalogRepository
	bookings     BookingRepository
	resolver     *Resolver
	capacityMode CapacityMode
	logger       Logger
}

// NewService создает новый экземпляр движка доступности
func NewService(
	catalog CatalogRepository,
	rules RulesRepository,
	bookings BookingRepository,
	capacityMode CapacityMode,
	logger Logger,
) *Service {
	return &Service{
		catalog:      catalog,
		bookings:     bookings,
		resolver:     NewResolver(rules),
		capacityMode: capacityMode,
		logger:       logger,
	}
}

// GetDayAvailability возвращает слоты услуги на дату с отметкой доступности.
// Отсутствие слотов не ошибка: закрытый день дает пустой список.
func (s *Service) GetDayAvailability(ctx context.Context, businessID, serviceID int64, date time.Time) (*domain.DayAvailability, error) {
	s.logger.Info("GetDayAvailability: business=%d, service=%d, date=%s",
		businessID, serviceID, date.Format(domain.DateFormat))

	day := &domain.DayAvailability{
		Date:    date,
		Weekday: int(date.Weekday()),
		Slots:   []domain.Slot{},
	}

	// 1. Услуга должна существовать, быть активной и принадлежать бизнесу
	service, err := s.GetService(ctx, businessID, serviceID)
	if err != nil {
		return nil, err
	}

	// 2. Генерируем слоты по правилам (по каждому сотруднику или по бизнесу)
	slots, err := s.generateSlots(ctx, businessID, service, date)
	if err != nil {
		return nil, err
	}

	if len(slots) == 0 {
		s.logger.Info("GetDayAvailability: no open windows for service=%d on %s",
			serviceID, date.Format(domain.DateFormat))
		return day, nil
	}

	// 3. Активные бронирования бизнеса на дату
	bookings, err := s.bookings.GetByBusinessWithFilter(ctx, domain.BusinessBookingsFilter{
		BusinessID: businessID,
		StartDate:  &date,
		EndDate:    &date,
	})
	if err != nil {
		s.logger.Error("GetDayAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Отмечаем конфликты
	s.markConflicts(slots, service, s.toBookedIntervals(bookings))

	// 5. Сортировка и удаление дубликатов
	day.Slots = sortAndDedupe(slots)

	s.logger.Info("GetDayAvailability: %d slots (%d available) for service=%d on %s",
		len(day.Slots), day.AvailableCount(), serviceID, date.Format(domain.DateFormat))

	return day, nil
}

// GetWeekAvailability возвращает ровно 7 дней начиная со startDate.
// Ошибка отдельного дня не прерывает расчет: такой день отдается без слотов.
func (s *Service) GetWeekAvailability(ctx context.Context, businessID, serviceID int64, startDate time.Time) []domain.DayAvailability {
	week := make([]domain.DayAvailability, 0, domain.DaysInWeek)

	for i := 0; i < domain.DaysInWeek; i++ {
		date := startDate.AddDate(0, 0, i)

		day, err := s.GetDayAvailability(ctx, businessID, serviceID, date)
		if err != nil {
			s.logger.Warn("GetWeekAvailability: day %s degraded to empty: %v", date.Format(domain.DateFormat), err)
			day = &domain.DayAvailability{
				Date:    date,
				Weekday: int(date.Weekday()),
				Slots:   []domain.Slot{},
			}
		}

		week = append(week, *day)
	}

	return week
}

// CheckProposal проверяет одно предполагаемое бронирование по тем же правилам,
// что и GetDayAvailability. Возвращает список причин отказа; пустой список - слот свободен.
func (s *Service) CheckProposal(ctx context.Context, p *Proposal) ([]string, error) {
	service := p.Service
	reasons := make([]string, 0)

	if p.PartySize > service.Capacity {
		reasons = append(reasons, fmt.Sprintf(MsgPartyTooLarge, p.PartySize, service.Capacity))
	}

	scope := domain.BusinessScope(p.BusinessID)
	if service.RequiresStaff {
		if p.StaffID == nil {
			return append(reasons, MsgStaffRequired), nil
		}
		scope = domain.StaffScope(p.BusinessID, *p.StaffID)
	}

	// 1. Окно должно целиком лежать в открытых часах; смежные смены считаются одной
	open, err := s.resolver.ResolveOpenIntervals(ctx, scope, p.Date)
	if err != nil {
		if errors.Is(err, domain.ErrDataIntegrity) {
			s.logger.Error("CheckProposal: %v", err)
			return append(reasons, MsgInvalidRules), nil
		}
		return nil, err
	}

	switch {
	case len(open) == 0 && scope.IsStaff():
		return append(reasons, MsgStaffNotWorking), nil
	case len(open) == 0:
		return append(reasons, MsgBusinessClosed), nil
	case !containedInAny(p.Window, union(open)):
		return append(reasons, MsgOutsideHours), nil
	}

	// 2. Конфликты с существующими бронированиями
	bookings, err := s.bookings.GetByBusinessWithFilter(ctx, domain.BusinessBookingsFilter{
		BusinessID: p.BusinessID,
		StartDate:  &p.Date,
		EndDate:    &p.Date,
		ExcludeID:  p.ExcludeBookingID,
	})
	if err != nil {
		s.logger.Error("CheckProposal: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	booked := s.toBookedIntervals(excludeBooking(bookings, p.ExcludeBookingID))

	if service.RequiresStaff {
		if staffBusy(p.Window, *p.StaffID, booked) {
			reasons = append(reasons, MsgStaffAlreadyBooked)
		}
		return reasons, nil
	}

	occupied := occupiedCapacity(p.Window, service.ID, booked, s.capacityMode)
	if !s.fits(occupied, p.PartySize, service.Capacity) {
		reasons = append(reasons, MsgNoCapacity)
	}

	return reasons, nil
}

// GetService загружает услугу и проверяет принадлежность и активность
func (s *Service) GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error) {
	service, err := s.catalog.GetServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.BelongsTo(businessID) || !service.IsActive {
		s.logger.Warn("GetService: service id=%d is inactive or not offered by business=%d", serviceID, businessID)
		return nil, ErrServiceNotFound
	}

	return service, nil
}

// generateSlots слоты по сотрудникам для услуг с сотрудником, иначе по бизнесу
func (s *Service) generateSlots(ctx context.Context, businessID int64, service *domain.Service, date time.Time) ([]domain.Slot, error) {
	if !service.RequiresStaff {
		return s.scopeSlots(ctx, domain.BusinessScope(businessID), service, date, nil, service.Capacity)
	}

	staff, err := s.catalog.ListStaffForService(ctx, service.ID)
	if err != nil {
		s.logger.Error("generateSlots: failed to list staff for service=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}

	slots := make([]domain.Slot, 0)
	for _, member := range staff {
		if !member.IsActive || member.BusinessID != businessID {
			continue
		}
		staffID := member.ID
		memberSlots, err := s.scopeSlots(ctx, domain.StaffScope(businessID, staffID), service, date, &staffID, 1)
		if err != nil {
			return nil, err
		}
		slots = append(slots, memberSlots...)
	}

	return slots, nil
}

// scopeSlots некорректные правила области логируются, область остается без слотов
func (s *Service) scopeSlots(
	ctx context.Context,
	scope domain.Scope,
	service *domain.Service,
	date time.Time,
	staffID *int64,
	capacity int,
) ([]domain.Slot, error) {
	open, err := s.resolver.ResolveOpenIntervals(ctx, scope, date)
	if err != nil {
		if errors.Is(err, domain.ErrDataIntegrity) {
			s.logger.Error("scopeSlots: skipping scope of business=%d: %v", scope.BusinessID, err)
			return nil, nil
		}
		return nil, err
	}

	slots := make([]domain.Slot, 0)
	for _, window := range open {
		intervals := GenerateSlots(window.Start, window.End, service.DurationMinutes, service.BufferAfterMinutes)
		slots = append(slots, toSlots(intervals, staffID, capacity)...)
	}
	return slots, nil
}

// fits в режиме largest слот занят, если самая большая группа >= вместимости
func (s *Service) fits(occupied, partySize, capacity int) bool {
	if s.capacityMode == CapacityLargest {
		return occupied < capacity
	}
	return occupied+partySize <= capacity
}

func containedInAny(window domain.Interval, open []domain.Interval) bool {
	for _, iv := range open {
		if iv.Contains(window) {
			return true
		}
	}
	return false
}

// excludeBooking убирает из выборки переносимое бронирование
func excludeBooking(bookings []*domain.Booking, id *int64) []*domain.Booking {
	if id == nil {
		return bookings
	}
	result := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID != *id {
			result = append(result, b)
		}
	}
	return result
}
