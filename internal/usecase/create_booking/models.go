package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	BusinessID      int64
	ServiceID       int64
	StaffID         *int64 // обязателен для услуг с сотрудником
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   *string
	Date            time.Time // Дата бронирования (без времени)
	StartTime       types.TimeString
	EndTime         types.TimeString
	PartySize       *int // nil - одна персона
	SpecialRequests *string
}

// Response созданное бронирование либо список ошибок проверки
type Response struct {
	Errors []string // непустой - бронирование не создано

	ID              int64
	BusinessID      int64
	ServiceID       int64
	StaffID         *int64
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   *string
	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	PartySize       int
	Status          string
	PaymentStatus   string
	TotalAmount     *float64
	SpecialRequests *string

	ConfirmationSentAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func rejected(errs []string) *Response {
	return &Response{Errors: errs}
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		Errors:             []string{},
		ID:                 b.ID,
		BusinessID:         b.BusinessID,
		ServiceID:          b.ServiceID,
		StaffID:            b.StaffID,
		CustomerName:       b.CustomerName,
		CustomerEmail:      b.CustomerEmail,
		CustomerPhone:      b.CustomerPhone,
		BookingDate:        b.BookingDate,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		PartySize:          b.PartySize,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		TotalAmount:        b.TotalAmount,
		SpecialRequests:    b.SpecialRequests,
		ConfirmationSentAt: b.ConfirmationSentAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}
