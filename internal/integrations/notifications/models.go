package notifications

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Типы событий бронирования
const (
	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCancelled = "booking.cancelled"
)

// Заголовки сообщения
const (
	HeaderEventID   = "event_id"
	HeaderEventType = "event_type"
)

// Event конверт события, уходящего в топик
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Booking    BookingPayload `json:"booking"`
}

// BookingPayload данные бронирования для сервиса уведомлений
type BookingPayload struct {
	ID                 int64    `json:"id"`
	BusinessID         int64    `json:"business_id"`
	ServiceID          int64    `json:"service_id"`
	StaffID            *int64   `json:"staff_id,omitempty"`
	CustomerName       string   `json:"customer_name"`
	CustomerEmail      string   `json:"customer_email"`
	CustomerPhone      *string  `json:"customer_phone,omitempty"`
	BookingDate        string   `json:"booking_date"`
	StartTime          string   `json:"start_time"`
	EndTime            string   `json:"end_time"`
	PartySize          int      `json:"party_size"`
	Status             string   `json:"status"`
	TotalAmount        *float64 `json:"total_amount,omitempty"`
	CancellationReason *string  `json:"cancellation_reason,omitempty"`
}

func toPayload(b *domain.Booking) BookingPayload {
	return BookingPayload{
		ID:                 b.ID,
		BusinessID:         b.BusinessID,
		ServiceID:          b.ServiceID,
		StaffID:            b.StaffID,
		CustomerName:       b.CustomerName,
		CustomerEmail:      b.CustomerEmail,
		CustomerPhone:      b.CustomerPhone,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		PartySize:          b.PartySize,
		Status:             string(b.Status),
		TotalAmount:        b.TotalAmount,
		CancellationReason: b.CancellationReason,
	}
}
