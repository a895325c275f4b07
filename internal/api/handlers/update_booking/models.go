package update_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// UpdateBookingRequest HTTP request model; отсутствующие поля не меняются
type UpdateBookingRequest struct {
	StaffID            *int64  `json:"staffId,omitempty" validate:"omitempty,gt=0"`
	CustomerName       *string `json:"customerName,omitempty" validate:"omitempty,max=255"`
	CustomerEmail      *string `json:"customerEmail,omitempty" validate:"omitempty,email,max=255"`
	CustomerPhone      *string `json:"customerPhone,omitempty" validate:"omitempty,max=32"`
	BookingDate        *string `json:"bookingDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime          *string `json:"startTime,omitempty"`
	EndTime            *string `json:"endTime,omitempty"`
	PartySize          *int    `json:"partySize,omitempty"`
	SpecialRequests    *string `json:"specialRequests,omitempty" validate:"omitempty,max=500"`
	Status             *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed no_show"`
	CancellationReason *string `json:"cancellationReason,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateBookingRequest) ToServiceRequest() (*models.UpdateBookingRequest, error) {
	req := &models.UpdateBookingRequest{
		StaffID:            r.StaffID,
		CustomerName:       r.CustomerName,
		CustomerEmail:      r.CustomerEmail,
		CustomerPhone:      r.CustomerPhone,
		PartySize:          r.PartySize,
		SpecialRequests:    r.SpecialRequests,
		Status:             r.Status,
		CancellationReason: r.CancellationReason,
	}

	if r.BookingDate != nil {
		date, err := time.Parse(domain.DateFormat, *r.BookingDate)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		start := types.TimeString(*r.StartTime)
		req.StartTime = &start
	}

	if r.EndTime != nil {
		end := types.TimeString(*r.EndTime)
		req.EndTime = &end
	}

	return req, nil
}
