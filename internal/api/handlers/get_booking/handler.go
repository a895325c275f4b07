package get_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
)

const route = "GET /bookings/{id}"

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgMissingUserID    = "отсутствует ID пользователя"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
// Возвращает бронирование вместе с полями аудита (created_at, cancelled_at и т.д.)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		h.logger.Warn("%s - Missing user ID: request_id=%s", route, requestID)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - %v: request_id=%s", route, err, requestID)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(ctx, bookingID)
	switch {
	case err == nil:
		h.logger.Info("%s - Booking %d (%s) read by user %d: request_id=%s",
			route, bookingID, booking.Status, userID, requestID)
		handlers.RespondJSON(w, http.StatusOK, booking)

	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("%s - Booking %d not found: request_id=%s", route, bookingID, requestID)
		handlers.RespondNotFound(w, msgNotFound)

	default:
		h.logger.Error("%s - Failed to load booking %d: request_id=%s, error=%v", route, bookingID, requestID, err)
		handlers.RespondInternalError(w)
	}
}
