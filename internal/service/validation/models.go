package validation

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request предполагаемое бронирование
type Request struct {
	BusinessID       int64
	ServiceID        int64
	StaffID          *int64
	Date             time.Time
	StartTime        types.TimeString
	EndTime          types.TimeString
	PartySize        int
	ExcludeBookingID *int64 // бронирование, которое переносится
}

// Result итог проверки; Valid == (len(Errors) == 0)
type Result struct {
	Valid   bool
	Errors  []string
	Service *domain.Service // заполняется, если услуга найдена
}

// Сообщения об ошибках проверки
const (
	MsgInvalidStartTime   = "start time must be in HH:MM format"
	MsgInvalidEndTime     = "end time must be in HH:MM format"
	MsgEndNotAfterStart   = "end time must be after start time"
	MsgDateInPast         = "booking date cannot be in the past"
	MsgServiceNotFound    = "service not found"
	MsgStaffNotFound      = "staff member not found"
	MsgStaffUnavailable   = "staff member is not available for booking"
	MsgStaffCannotPerform = "staff member cannot perform this service"
	MsgInvalidPartySize   = "party size must be at least 1"
)

func newResult(errs []string, service *domain.Service) *Result {
	return &Result{
		Valid:   len(errs) == 0,
		Errors:  errs,
		Service: service,
	}
}
