package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// PaymentStatus payment state; payments themselves are handled elsewhere
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// allowed status transitions
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted, StatusNoShow},
}

// ParseBookingStatus validates a raw status value
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	switch status {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return status, nil
	}
	return "", fmt.Errorf("%w: unknown booking status %q", ErrFormat, s)
}

// CanTransitionTo reports whether the state machine allows moving to next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal true for cancelled, completed and no_show
func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// IsActive true when the booking still occupies its time slot
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Booking a customer's reservation of a service on a date and time range
type Booking struct {
	ID         int64
	BusinessID int64
	ServiceID  int64
	StaffID    *int64

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string

	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	PartySize   int

	Status        BookingStatus
	PaymentStatus PaymentStatus
	TotalAmount   *float64

	SpecialRequests    *string
	CancellationReason *string
	CancelledAt        *time.Time

	ConfirmationSentAt *time.Time
	ReminderSentAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking blocks its time slot
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// Interval returns the booking time range in minutes since midnight
func (b *Booking) Interval() (Interval, error) {
	start, err := b.StartTime.Minutes()
	if err != nil {
		return Interval{}, err
	}
	end, err := b.EndTime.Minutes()
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}

// StartsAt absolute start of the booking in loc
func (b *Booking) StartsAt(loc *time.Location) (time.Time, error) {
	return b.StartTime.On(b.BookingDate, loc)
}

// SameStaff true when both refer to the same staff member (nil means none)
func SameStaff(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// BusinessBookingsFilter фильтр для получения бронирований бизнеса
type BusinessBookingsFilter struct {
	BusinessID      int64          // Обязательный параметр
	ServiceID       *int64         // Фильтр по услуге
	StaffID         *int64         // Фильтр по сотруднику
	StartDate       *time.Time     // Начало периода (включительно)
	EndDate         *time.Time     // Конец периода (включительно)
	Status          *BookingStatus // Фильтр по статусу
	IncludeInactive bool           // Включать отмененные, завершенные и no-show
	ExcludeID       *int64         // Исключить бронирование (при переносе)
}

// IsSingleDay true when the filter targets exactly one date
func (f BusinessBookingsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}
