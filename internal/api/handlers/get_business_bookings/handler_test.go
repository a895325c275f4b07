package get_business_bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeService struct {
	err error
	req *models.GetBusinessBookingsRequest
}

func (s *fakeService) GetBusinessBookings(ctx context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1}, {ID: 2}}}, nil
}

func serve(svc *fakeService, businessID, query string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses/"+businessID+"/bookings?"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"businessId": businessID})
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_List(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "3", "date=2025-06-02&status=cancelled&includeInactive=true", 9)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), svc.req.BusinessID)
	require.NotNil(t, svc.req.Date)
	assert.Equal(t, "2025-06-02", svc.req.Date.Format("2006-01-02"))
	assert.Equal(t, "cancelled", *svc.req.Status)
	assert.True(t, svc.req.IncludeInactive)

	var body []models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, int64(2), body[1].ID)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, serve(&fakeService{}, "3", "", 0).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "x", "", 9).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "3", "date=tomorrow", 9).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "3", "includeInactive=maybe", 9).Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: bookings.ErrBusinessNotFound}, "3", "", 9).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{err: bookings.ErrInvalidInput}, "3", "status=lost", 9).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: bookings.ErrInternal}, "3", "", 9).Code)
}
