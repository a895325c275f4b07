package domain

// Defaults
const (
	DefaultCancellationHours = 24
	DefaultPartySize         = 1
)

// Limits
const (
	MaxSpecialRequestsLength    = 500
	MaxCancellationReasonLength = 500
	DaysInWeek                  = 7
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses statuses that occupy time on the calendar
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses statuses that release the slot
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}
