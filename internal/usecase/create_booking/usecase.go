package create_booking

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/notifications"
	"github.com/m04kA/SMC-SchedulingService/internal/service/validation"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

const operationName = "create"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	validator    Validator
	notifier     Notifier
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	validator Validator,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		validator:    validator,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка и вставка выполняются в одной сериализуемой транзакции, бронирования дня
// читаются с блокировкой (FOR UPDATE). Ошибки проверки возвращаются в Response.Errors.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: business=%d, service=%d, date=%s, time=%s-%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: invalid input: %v", err)
		uc.metrics.RecordBooking(operationName, metrics.OutcomeRejected)
		return nil, err
	}

	// 2. Бизнес должен существовать и принимать бронирования
	business, err := uc.businessRepo.GetBusinessByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBusinessNotFound) {
			uc.logger.Warn("CreateBooking: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateBooking: failed to get business id=%d: %v", req.BusinessID, err)
		uc.metrics.RecordBooking(operationName, metrics.OutcomeError)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.IsActive {
		uc.logger.Warn("CreateBooking: business id=%d is inactive", req.BusinessID)
		return nil, ErrBusinessInactive
	}

	// 3. Телефон, если бизнес его требует
	errs := make([]string, 0)
	if business.RequirePhone && strings.TrimSpace(ptr.Value(req.CustomerPhone)) == "" {
		errs = append(errs, MsgPhoneRequired)
	}

	partySize := domain.DefaultPartySize
	if req.PartySize != nil {
		partySize = *req.PartySize
	}

	var created *domain.Booking

	// 4. Проверка и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Повторная проверка слота под блокировкой
		result, err := uc.validator.Validate(txCtx, &validation.Request{
			BusinessID: req.BusinessID,
			ServiceID:  req.ServiceID,
			StaffID:    req.StaffID,
			Date:       req.Date,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			PartySize:  partySize,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: validation failed: %v", err)
			return fmt.Errorf("%w: failed to validate booking: %v", ErrInternal, err)
		}

		// Неизвестная услуга - единственная ошибка, прочие проверки не имеют смысла
		if slices.Equal(result.Errors, []string{validation.MsgServiceNotFound}) {
			errs = result.Errors
			return nil
		}

		errs = append(errs, result.Errors...)
		if len(errs) > 0 {
			return nil
		}

		// 4.2. Создаем бронирование
		booking := &domain.Booking{
			BusinessID:      req.BusinessID,
			ServiceID:       req.ServiceID,
			StaffID:         req.StaffID,
			CustomerName:    strings.TrimSpace(req.CustomerName),
			CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
			CustomerPhone:   req.CustomerPhone,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			PartySize:       partySize,
			Status:          domain.StatusPending,
			PaymentStatus:   domain.PaymentPending,
			TotalAmount:     result.Service.TotalFor(partySize),
			SpecialRequests: req.SpecialRequests,
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if bookingRepo.IsConcurrencyConflict(err) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		// Слот заняли параллельно: ограничение БД или откат сериализуемой транзакции
		if bookingRepo.IsConcurrencyConflict(err) {
			uc.logger.Warn("CreateBooking: concurrent booking for service=%d on %s %s: %v",
				req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, err)
			uc.metrics.RecordBooking(operationName, metrics.OutcomeConflict)
			return rejected([]string{MsgSlotTaken}), nil
		}
		uc.metrics.RecordBooking(operationName, metrics.OutcomeError)
		return nil, err
	}

	if len(errs) > 0 {
		uc.logger.Info("CreateBooking: rejected: %v", errs)
		uc.metrics.RecordBooking(operationName, metrics.OutcomeRejected)
		return rejected(errs), nil
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", created.ID)
	uc.metrics.RecordBooking(operationName, metrics.OutcomeSuccess)

	// 5. Уведомление в фоне; сбой не отменяет бронирование
	bookingID := created.ID
	uc.notifier.Dispatch(ctx, notifications.EventBookingCreated, created, func(sendCtx context.Context) {
		uc.markConfirmationSent(sendCtx, bookingID)
	})

	return toResponse(created), nil
}

// markConfirmationSent отмечает время подтверждения после доставки booking.created
func (uc *UseCase) markConfirmationSent(ctx context.Context, bookingID int64) {
	sentAt := uc.timeProvider.Now()
	if err := uc.bookingRepo.MarkConfirmationSent(ctx, bookingID, sentAt); err != nil {
		uc.logger.Warn("CreateBooking: failed to mark confirmation sent for booking id=%d: %v", bookingID, err)
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffId must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerEmail) == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: specialRequests must not exceed %d characters", ErrInvalidInput, domain.MaxSpecialRequestsLength)
	}

	return nil
}
