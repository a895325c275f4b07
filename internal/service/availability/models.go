package availability

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CapacityMode способ подсчета занятости услуги без сотрудника
type CapacityMode string

const (
	// CapacitySum суммирует размер всех пересекающихся бронирований
	CapacitySum CapacityMode = "sum"

	// CapacityLargest учитывает только самое большое пересекающееся бронирование
	CapacityLargest CapacityMode = "largest"
)

// ParseCapacityMode пустое значение означает CapacitySum
func ParseCapacityMode(s string) (CapacityMode, bool) {
	switch CapacityMode(s) {
	case "", CapacitySum:
		return CapacitySum, true
	case CapacityLargest:
		return CapacityLargest, true
	}
	return "", false
}

// Proposal предполагаемое бронирование для проверки одного слота
type Proposal struct {
	BusinessID       int64
	Service          *domain.Service
	StaffID          *int64
	Date             time.Time
	Window           domain.Interval
	PartySize        int
	ExcludeBookingID *int64
}

// Сообщения об отказе, возвращаемые CheckProposal
const (
	MsgPartyTooLarge      = "party size %d exceeds service capacity of %d"
	MsgStaffRequired      = "a staff member must be selected for this service"
	MsgInvalidRules       = "availability rules for this date are invalid"
	MsgBusinessClosed     = "business is closed on this date"
	MsgStaffNotWorking    = "staff member is not working on this date"
	MsgOutsideHours       = "requested time is outside of working hours"
	MsgStaffAlreadyBooked = "staff member is already booked at this time"
	MsgNoCapacity         = "not enough capacity left at this time"
)
