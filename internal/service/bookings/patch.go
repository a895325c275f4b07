package bookings

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// validatePatch проверяет поля, не требующие обращения к хранилищу
func validatePatch(req *models.UpdateBookingRequest) error {
	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffId must be positive", ErrInvalidInput)
	}

	if req.CustomerName != nil && strings.TrimSpace(*req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName cannot be empty", ErrInvalidInput)
	}

	if req.CustomerEmail != nil && strings.TrimSpace(*req.CustomerEmail) == "" {
		return fmt.Errorf("%w: customerEmail cannot be empty", ErrInvalidInput)
	}

	if req.Date != nil && req.Date.IsZero() {
		return fmt.Errorf("%w: date cannot be empty", ErrInvalidInput)
	}

	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: specialRequests must not exceed %d characters", ErrInvalidInput, domain.MaxSpecialRequestsLength)
	}

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellationReason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return nil
}

// applyPatch переносит разрешенные поля в b. Статус обрабатывается отдельно.
// Возвращает true, если изменились дата, время, сотрудник или размер группы.
func applyPatch(b *domain.Booking, req *models.UpdateBookingRequest) bool {
	rescheduled := false

	if req.StaffID != nil && !domain.SameStaff(req.StaffID, b.StaffID) {
		staffID := *req.StaffID
		b.StaffID = &staffID
		rescheduled = true
	}
	if req.Date != nil && !sameDate(*req.Date, b) {
		b.BookingDate = *req.Date
		rescheduled = true
	}
	if req.StartTime != nil && *req.StartTime != b.StartTime {
		b.StartTime = *req.StartTime
		rescheduled = true
	}
	if req.EndTime != nil && *req.EndTime != b.EndTime {
		b.EndTime = *req.EndTime
		rescheduled = true
	}
	if req.PartySize != nil && *req.PartySize != b.PartySize {
		b.PartySize = *req.PartySize
		rescheduled = true
	}

	if req.CustomerName != nil {
		b.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.CustomerEmail != nil {
		b.CustomerEmail = strings.TrimSpace(*req.CustomerEmail)
	}
	if req.CustomerPhone != nil {
		b.CustomerPhone = req.CustomerPhone
	}
	if req.SpecialRequests != nil {
		b.SpecialRequests = req.SpecialRequests
	}
	if req.CancellationReason != nil {
		b.CancellationReason = req.CancellationReason
	}

	return rescheduled
}

func sameDate(date time.Time, b *domain.Booking) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := b.BookingDate.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
