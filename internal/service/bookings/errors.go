package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: booking not found", domain.ErrNotFound)

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = fmt.Errorf("%w: business not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда email не совпадает с email бронирования
	ErrAccessDenied = fmt.Errorf("%w: email does not match the booking", domain.ErrForbidden)

	// ErrBookingFinalized возвращается при попытке изменить отмененное или завершенное бронирование
	ErrBookingFinalized = fmt.Errorf("%w: booking is finalized and cannot be changed", domain.ErrConflict)

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = fmt.Errorf("%w: status transition is not allowed", domain.ErrConflict)

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = fmt.Errorf("%w: booking is already cancelled", domain.ErrConflict)

	// ErrCannotCancel возвращается, когда бронирование уже завершено или клиент не пришел
	ErrCannotCancel = fmt.Errorf("%w: booking cannot be cancelled", domain.ErrConflict)

	// ErrCancellationWindow возвращается, когда до начала осталось меньше допустимого
	ErrCancellationWindow = fmt.Errorf("%w: cancellation window has passed", domain.ErrPolicy)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrFormat)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)

// CancellationWindowError отказ в отмене с порогом бизнеса
type CancellationWindowError struct {
	Hours int
}

func (e *CancellationWindowError) Error() string {
	return fmt.Sprintf("bookings can only be cancelled at least %d hours in advance", e.Hours)
}

// Unwrap позволяет проверять errors.Is(err, ErrCancellationWindow) и domain.ErrPolicy
func (e *CancellationWindowError) Unwrap() error {
	return ErrCancellationWindow
}

// MsgSlotTaken слот заняли параллельно во время переноса
const MsgSlotTaken = "selected time is no longer available"
