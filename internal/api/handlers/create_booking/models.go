package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// CreateBookingRequest HTTP request model.
// Формат времени и размер группы проверяет валидатор бронирований.
type CreateBookingRequest struct {
	BusinessID      int64   `json:"businessId" validate:"gt=0"`
	ServiceID       int64   `json:"serviceId" validate:"gt=0"`
	StaffID         *int64  `json:"staffId,omitempty" validate:"omitempty,gt=0"`
	CustomerName    string  `json:"customerName" validate:"required,max=255"`
	CustomerEmail   string  `json:"customerEmail" validate:"required,email,max=255"`
	CustomerPhone   *string `json:"customerPhone,omitempty" validate:"omitempty,max=32"`
	BookingDate     string  `json:"bookingDate" validate:"required,datetime=2006-01-02"` // "2025-10-15"
	StartTime       string  `json:"startTime" validate:"required"`                       // "10:00"
	EndTime         string  `json:"endTime" validate:"required"`                         // "11:00"
	PartySize       *int    `json:"partySize,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty" validate:"omitempty,max=500"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                 int64    `json:"id"`
	BusinessID         int64    `json:"businessId"`
	ServiceID          int64    `json:"serviceId"`
	StaffID            *int64   `json:"staffId,omitempty"`
	CustomerName       string   `json:"customerName"`
	CustomerEmail      string   `json:"customerEmail"`
	CustomerPhone      *string  `json:"customerPhone,omitempty"`
	BookingDate        string   `json:"bookingDate"`
	StartTime          string   `json:"startTime"`
	EndTime            string   `json:"endTime"`
	PartySize          int      `json:"partySize"`
	Status             string   `json:"status"`
	PaymentStatus      string   `json:"paymentStatus"`
	TotalAmount        *float64 `json:"totalAmount,omitempty"`
	SpecialRequests    *string  `json:"specialRequests,omitempty"`
	ConfirmationSentAt *string  `json:"confirmationSentAt,omitempty"`
	CreatedAt          string   `json:"createdAt"`
	UpdatedAt          string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		BusinessID:      r.BusinessID,
		ServiceID:       r.ServiceID,
		StaffID:         r.StaffID,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		Date:            bookingDate,
		StartTime:       types.TimeString(r.StartTime),
		EndTime:         types.TimeString(r.EndTime),
		PartySize:       r.PartySize,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:              resp.ID,
		BusinessID:      resp.BusinessID,
		ServiceID:       resp.ServiceID,
		StaffID:         resp.StaffID,
		CustomerName:    resp.CustomerName,
		CustomerEmail:   resp.CustomerEmail,
		CustomerPhone:   resp.CustomerPhone,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		PartySize:       resp.PartySize,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		TotalAmount:     resp.TotalAmount,
		SpecialRequests: resp.SpecialRequests,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.ConfirmationSentAt != nil {
		sent := resp.ConfirmationSentAt.Format(time.RFC3339)
		out.ConfirmationSentAt = &sent
	}

	return out
}
