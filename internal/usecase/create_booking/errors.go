package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = fmt.Errorf("%w: create_booking: business not found", domain.ErrNotFound)

	// ErrBusinessInactive возвращается, когда бизнес не принимает бронирования
	ErrBusinessInactive = fmt.Errorf("%w: create_booking: business is not accepting bookings", domain.ErrPolicy)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrFormat)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// Сообщения об ошибках, возвращаемые в Response.Errors
const (
	MsgPhoneRequired = "phone number is required for this business"
	MsgSlotTaken     = "selected time is no longer available"
)
