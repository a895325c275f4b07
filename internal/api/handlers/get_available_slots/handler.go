package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBusinessNotFound = "бизнес не найден"
	msgServiceNotFound  = "услуга не найдена"
	msgInvalidParams    = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{business}/services/{serviceId}/availability
// Query params: date (required, YYYY-MM-DD). {business} - ID или slug.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	const route = "GET /businesses/{business}/services/{id}/availability"

	useCaseReq, ok := h.parseRequest(w, r, route, "date")
	if !ok {
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, route, useCaseReq, err)
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("%s - Slots retrieved successfully: business_id=%d, service_id=%d, slots_count=%d",
		route, result.BusinessID, result.ServiceID, len(response.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}

// HandleWeek GET /api/v1/businesses/{business}/services/{serviceId}/availability/week
// Query params: startDate (required, YYYY-MM-DD)
func (h *Handler) HandleWeek(w http.ResponseWriter, r *http.Request) {
	const route = "GET /businesses/{business}/services/{id}/availability/week"

	useCaseReq, ok := h.parseRequest(w, r, route, "startDate")
	if !ok {
		return
	}

	result, err := h.useCase.ExecuteWeek(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, route, useCaseReq, err)
		return
	}

	h.logger.Info("%s - Week retrieved successfully: business_id=%d, service_id=%d",
		route, result.BusinessID, result.ServiceID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseWeekResponse(result))
}

func (h *Handler) parseRequest(w http.ResponseWriter, r *http.Request, route, dateParam string) (*getAvailableSlots.Request, bool) {
	vars := mux.Vars(r)

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("%s - Invalid service ID: %q", route, vars["serviceId"])
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return nil, false
	}

	dateStr := r.URL.Query().Get(dateParam)
	if dateStr == "" {
		h.logger.Warn("%s - Missing %s", route, dateParam)
		handlers.RespondBadRequest(w, msgMissingDate)
		return nil, false
	}

	useCaseReq, err := ToUseCaseRequest(vars["business"], serviceID, dateStr)
	if err != nil {
		h.logger.Warn("%s - Invalid date format: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return nil, false
	}

	return useCaseReq, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, req *getAvailableSlots.Request, err error) {
	switch {
	case errors.Is(err, getAvailableSlots.ErrBusinessNotFound):
		h.logger.Warn("%s - Business not found: business=%s", route, req.Business)
		handlers.RespondNotFound(w, msgBusinessNotFound)

	case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found: business=%s, service_id=%d", route, req.Business, req.ServiceID)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, domain.ErrFormat):
		h.logger.Warn("%s - Invalid parameters: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidParams)

	default:
		h.logger.Error("%s - Failed to get slots: business=%s, service_id=%d, error=%v",
			route, req.Business, req.ServiceID, err)
		handlers.RespondInternalError(w)
	}
}
