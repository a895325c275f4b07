package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/notifications"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/internal/service/validation"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
)

// Policy настройки правил отмены
type Policy struct {
	Location                 *time.Location // часовой пояс бизнеса для расчета времени начала
	DefaultCancellationHours int            // если у бизнеса не задано свое значение
}

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	validator    Validator
	notifier     Notifier
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	policy       Policy
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	validator Validator,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	timeProvider TimeProvider,
	policy Policy,
	logger Logger,
) *Service {
	if policy.Location == nil {
		policy.Location = time.UTC
	}
	if policy.DefaultCancellationHours <= 0 {
		policy.DefaultCancellationHours = domain.DefaultCancellationHours
	}
	return &Service{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		validator:    validator,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: timeProvider,
		policy:       policy,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.loadBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetBusinessBookings получает бронирования бизнеса на дату и/или по статусу.
// Без статуса и IncludeInactive возвращаются только активные бронирования.
func (s *Service) GetBusinessBookings(ctx context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetBusinessBookings: fetching bookings for business=%d", req.BusinessID)
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if _, err := s.loadBusiness(ctx, req.BusinessID, "GetBusinessBookings"); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBusinessBookings: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessBookings: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessBookings: successfully fetched %d bookings for business=%d", len(bookings), req.BusinessID)
	return models.FromDomainBookingList(bookings), nil
}

// Update применяет частичное изменение. При смене даты, времени, сотрудника или
// размера группы бронирование проверяется заново без учета самого себя.
// Ошибки проверки возвращаются в UpdateResult.Errors.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.UpdateResult, error) {
	return s.update(ctx, "update", id, req)
}

// UpdateStatus переводит бронирование в новый статус (подтверждение, завершение, неявка)
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*models.BookingResponse, error) {
	result, err := s.update(ctx, "status", id, &models.UpdateBookingRequest{Status: &status})
	if err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("%w: unexpected validation errors: %v", ErrInternal, result.Errors)
	}
	return result.Booking, nil
}

// Cancel отменяет бронирование по запросу клиента.
// email должен совпадать с email бронирования без учета регистра.
func (s *Service) Cancel(ctx context.Context, id int64, email string, reason *string) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	// 1. Получаем бронирование
	booking, err := s.loadBooking(ctx, id, "Cancel")
	if err != nil {
		return nil, err
	}

	// 2. Проверяем email клиента
	if !strings.EqualFold(strings.TrimSpace(email), strings.TrimSpace(booking.CustomerEmail)) {
		s.logger.Warn("Cancel: email mismatch for booking id=%d", id)
		s.metrics.RecordBooking("cancel", metrics.OutcomeRejected)
		return nil, ErrAccessDenied
	}

	// 3. Проверяем статус
	if booking.IsCancelled() {
		s.logger.Warn("Cancel: booking id=%d is already cancelled", id)
		return nil, ErrAlreadyCancelled
	}
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", id, booking.Status)
		return nil, ErrCannotCancel
	}

	// 4. Проверяем окно отмены бизнеса
	business, err := s.loadBusiness(ctx, booking.BusinessID, "Cancel")
	if err != nil {
		return nil, err
	}

	threshold := business.CancellationThreshold(s.policy.DefaultCancellationHours)
	startsAt, err := booking.StartsAt(s.policy.Location)
	if err != nil {
		s.logger.Error("Cancel: booking id=%d has malformed start time: %v", id, err)
		return nil, fmt.Errorf("%w: malformed booking time: %v", ErrInternal, err)
	}

	hoursUntil := startsAt.Sub(s.timeProvider.Now()).Hours()
	if hoursUntil < float64(threshold) {
		s.logger.Warn("Cancel: booking id=%d starts in %.1f hours, threshold is %d", id, hoursUntil, threshold)
		s.metrics.RecordBooking("cancel", metrics.OutcomeRejected)
		return nil, &CancellationWindowError{Hours: threshold}
	}

	// 5. Отменяем через общий путь изменения
	status := string(domain.StatusCancelled)
	result, err := s.update(ctx, "cancel", id, &models.UpdateBookingRequest{
		Status:             &status,
		CancellationReason: reason,
	})
	if err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("%w: unexpected validation errors: %v", ErrInternal, result.Errors)
	}

	return result.Booking, nil
}

func (s *Service) update(ctx context.Context, operation string, id int64, req *models.UpdateBookingRequest) (*models.UpdateResult, error) {
	s.logger.Info("Update: %s booking id=%d", operation, id)

	// 1. Валидация входных данных
	if err := validatePatch(req); err != nil {
		s.logger.Warn("Update: invalid input for booking id=%d: %v", id, err)
		s.metrics.RecordBooking(operation, metrics.OutcomeRejected)
		return nil, err
	}

	var (
		saved      *domain.Booking
		errs       []string
		cancelling bool
	)

	// 2. Изменение в сериализуемой транзакции
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование с блокировкой
		current, err := s.loadBooking(txCtx, id, "Update")
		if err != nil {
			return err
		}

		if current.Status.IsTerminal() {
			s.logger.Warn("Update: booking id=%d is finalized, status=%s", id, current.Status)
			return ErrBookingFinalized
		}

		// 2.2. Применяем разрешенные поля
		next := *current
		rescheduled := applyPatch(&next, req)

		if req.Status != nil {
			status, err := domain.ParseBookingStatus(*req.Status)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if status != current.Status {
				if !current.Status.CanTransitionTo(status) {
					s.logger.Warn("Update: transition %s -> %s is not allowed for booking id=%d",
						current.Status, status, id)
					return ErrInvalidTransition
				}
				next.Status = status
			}
		}

		if next.Status == domain.StatusCancelled && next.CancelledAt == nil {
			now := s.timeProvider.Now()
			next.CancelledAt = &now
		}

		// 2.3. Повторная проверка слота без учета самого бронирования
		if rescheduled && next.IsActive() {
			result, err := s.validator.Validate(txCtx, &validation.Request{
				BusinessID:       next.BusinessID,
				ServiceID:        next.ServiceID,
				StaffID:          next.StaffID,
				Date:             next.BookingDate,
				StartTime:        next.StartTime,
				EndTime:          next.EndTime,
				PartySize:        next.PartySize,
				ExcludeBookingID: &current.ID,
			})
			if err != nil {
				s.logger.Error("Update: validation failed for booking id=%d: %v", id, err)
				return fmt.Errorf("%w: failed to validate booking: %v", ErrInternal, err)
			}
			if !result.Valid {
				errs = result.Errors
				return nil
			}
			if next.PartySize != current.PartySize {
				next.TotalAmount = result.Service.TotalFor(next.PartySize)
			}
		}

		// 2.4. Сохраняем
		saved, err = s.bookingRepo.Update(txCtx, &next)
		if err != nil {
			if bookingRepo.IsConcurrencyConflict(err) {
				return err
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Update: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		cancelling = current.Status != domain.StatusCancelled && saved.Status == domain.StatusCancelled
		return nil
	})

	if err != nil {
		if bookingRepo.IsConcurrencyConflict(err) {
			s.logger.Warn("Update: concurrent change of slot for booking id=%d: %v", id, err)
			s.metrics.RecordBooking(operation, metrics.OutcomeConflict)
			return &models.UpdateResult{Errors: []string{MsgSlotTaken}}, nil
		}
		if errors.Is(err, domain.ErrConflict) {
			s.metrics.RecordBooking(operation, metrics.OutcomeConflict)
		} else {
			s.metrics.RecordBooking(operation, metrics.OutcomeError)
		}
		return nil, err
	}

	if len(errs) > 0 {
		s.logger.Info("Update: booking id=%d rejected: %v", id, errs)
		s.metrics.RecordBooking(operation, metrics.OutcomeRejected)
		return &models.UpdateResult{Errors: errs}, nil
	}

	s.logger.Info("Update: successfully updated booking id=%d, status=%s", id, saved.Status)
	s.metrics.RecordBooking(operation, metrics.OutcomeSuccess)

	// 3. Уведомление в фоне; сбой не откатывает изменение
	eventType := notifications.EventBookingUpdated
	if cancelling {
		eventType = notifications.EventBookingCancelled
	}
	s.notifier.Dispatch(ctx, eventType, saved, nil)

	return &models.UpdateResult{
		Errors:  []string{},
		Booking: models.FromDomainBooking(saved),
	}, nil
}

func (s *Service) loadBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) loadBusiness(ctx context.Context, id int64, op string) (*domain.Business, error) {
	business, err := s.businessRepo.GetBusinessByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBusinessNotFound) {
			s.logger.Warn("%s: business id=%d not found", op, id)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("%s: failed to get business id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - failed to get business: %v", ErrInternal, op, err)
	}
	return business, nil
}
