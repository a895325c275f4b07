package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgBusinessNotFound   = "бизнес не найден"
	msgBusinessInactive   = "бизнес не принимает бронирования"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if errs := handlers.ValidateStruct(&req); len(errs) > 0 {
		h.logger.Warn("POST /bookings - Request validation failed: %v", errs)
		handlers.RespondValidationErrors(w, errs)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrBusinessNotFound):
			h.logger.Warn("POST /bookings - Business not found: business_id=%d", req.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createBooking.ErrBusinessInactive):
			h.logger.Warn("POST /bookings - Business inactive: business_id=%d", req.BusinessID)
			handlers.RespondUnprocessable(w, msgBusinessInactive)

		case errors.Is(err, domain.ErrFormat):
			h.logger.Warn("POST /bookings - Invalid input: business_id=%d, error=%v", req.BusinessID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: business_id=%d, service_id=%d, error=%v",
				req.BusinessID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if len(result.Errors) > 0 {
		h.logger.Info("POST /bookings - Booking rejected: business_id=%d, service_id=%d, errors=%v",
			req.BusinessID, req.ServiceID, result.Errors)
		handlers.RespondValidationErrors(w, result.Errors)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, business_id=%d",
		result.ID, req.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
