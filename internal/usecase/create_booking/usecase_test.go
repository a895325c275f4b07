package create_booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/notifications"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/service/validation"
	"github.com/m04kA/SMC-SchedulingService/internal/testutil"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const (
	businessID = int64(1)
	tableID    = int64(10)
	massageID  = int64(20)
	annaID     = int64(7)
)

// 2025-06-02 is a Monday
var monday = testutil.Date(2025, time.June, 2)

type fixture struct {
	uc         *UseCase
	store      *testutil.Store
	tx         *testutil.TxManager
	notifier   *testutil.Notifier
	dispatcher *notifications.Dispatcher
	metrics    *testutil.Metrics
	clock      *testutil.Clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := testutil.NewStore(monday)
	store.AddBusiness(&domain.Business{ID: businessID, Slug: "bistro", IsActive: true})
	store.AddService(&domain.Service{
		ID: tableID, BusinessID: businessID, DurationMinutes: 60, Capacity: 4,
		Price: ptr.Ptr(12.5), IsActive: true,
	})
	store.AddService(&domain.Service{
		ID: massageID, BusinessID: businessID, DurationMinutes: 60, Capacity: 1,
		RequiresStaff: true, IsActive: true,
	})
	store.AddStaff(&domain.StaffMember{ID: annaID, BusinessID: businessID, IsActive: true}, massageID)
	store.AddWeekly(
		testutil.Weekly(businessID, nil, time.Monday, "09:00", "18:00"),
		testutil.Weekly(businessID, ptr.Ptr(annaID), time.Monday, "09:00", "13:00"),
	)

	log := logger.NewNop()
	clock := &testutil.Clock{T: time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)}
	engine := availability.NewService(store, store, store, availability.CapacitySum, log)
	validator := validation.NewValidator(engine, store, clock, time.UTC, log)

	f := &fixture{
		store:    store,
		tx:       &testutil.TxManager{},
		notifier: &testutil.Notifier{},
		metrics:  &testutil.Metrics{},
		clock:    clock,
	}
	f.dispatcher = notifications.NewDispatcher(f.notifier, time.Second, log)
	f.uc = NewUseCase(store, store, validator, f.dispatcher, f.metrics, f.tx, clock, log)
	return f
}

// execute выполняет use case и дожидается фоновой отправки событий
func (f *fixture) execute(req *Request) (*Response, error) {
	resp, err := f.uc.Execute(context.Background(), req)
	f.dispatcher.Wait()
	return resp, err
}

func tableRequest(start, end string, party int) *Request {
	return &Request{
		BusinessID:    businessID,
		ServiceID:     tableID,
		CustomerName:  "Ivan Petrov",
		CustomerEmail: "ivan@example.com",
		Date:          monday,
		StartTime:     types.TimeString(start),
		EndTime:       types.TimeString(end),
		PartySize:     ptr.Ptr(party),
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	f := newFixture(t)

	resp, err := f.execute(tableRequest("10:00", "11:00", 2))
	require.NoError(t, err)
	require.Empty(t, resp.Errors)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.PaymentPending), resp.PaymentStatus)
	require.NotNil(t, resp.TotalAmount)
	assert.InDelta(t, 25.0, *resp.TotalAmount, 0.0001)
	assert.Equal(t, 2, resp.PartySize)
	assert.Equal(t, 1, f.tx.Calls)

	stored := f.store.Booking(resp.ID)
	require.NotNil(t, stored)
	assert.Equal(t, domain.StatusPending, stored.Status)
	require.NotNil(t, stored.ConfirmationSentAt)
	assert.Equal(t, f.clock.T, *stored.ConfirmationSentAt)
	// ответ уходит до доставки события, отметка появляется только в хранилище
	assert.Nil(t, resp.ConfirmationSentAt)

	assert.Equal(t, []string{notifications.EventBookingCreated}, f.notifier.Events)
	assert.Equal(t, []int64{resp.ID}, f.notifier.IDs)
	assert.Equal(t, 1, f.metrics.Counts["create/success"])
}

func TestExecute_DefaultPartySizeAndNoPrice(t *testing.T) {
	f := newFixture(t)

	resp, err := f.execute(&Request{
		BusinessID:    businessID,
		ServiceID:     massageID,
		StaffID:       ptr.Ptr(annaID),
		CustomerName:  "Olga",
		CustomerEmail: "olga@example.com",
		Date:          monday,
		StartTime:     "09:00",
		EndTime:       "10:00",
	})
	require.NoError(t, err)
	require.Empty(t, resp.Errors)
	assert.Equal(t, domain.DefaultPartySize, resp.PartySize)
	assert.Nil(t, resp.TotalAmount)
	assert.Equal(t, annaID, *resp.StaffID)
}

func TestExecute_ValidationErrorsReturnedAsData(t *testing.T) {
	f := newFixture(t)

	resp, err := f.execute(tableRequest("17:30", "18:30", 1))
	require.NoError(t, err)
	assert.Equal(t, []string{availability.MsgOutsideHours}, resp.Errors)
	assert.Zero(t, resp.ID)
	assert.Empty(t, f.store.Bookings)
	assert.Empty(t, f.notifier.Events)
	assert.Equal(t, 1, f.metrics.Counts["create/rejected"])
}

func TestExecute_PhoneRequired(t *testing.T) {
	f := newFixture(t)
	f.store.Businesses[businessID].RequirePhone = true

	req := tableRequest("10:00", "11:00", 1)
	req.CustomerPhone = ptr.Ptr("   ")
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{MsgPhoneRequired}, resp.Errors)

	req.CustomerPhone = ptr.Ptr("+7 900 000-00-00")
	resp, err = f.execute(req)
	require.NoError(t, err)
	assert.Empty(t, resp.Errors)
}

func TestExecute_PhoneAndSlotErrorsAccumulate(t *testing.T) {
	f := newFixture(t)
	f.store.Businesses[businessID].RequirePhone = true

	resp, err := f.execute(tableRequest("11:00", "10:00", 1))
	require.NoError(t, err)
	assert.Equal(t, []string{MsgPhoneRequired, validation.MsgEndNotAfterStart}, resp.Errors)
}

func TestExecute_SecondBookingOfStaffRejected(t *testing.T) {
	f := newFixture(t)
	req := &Request{
		BusinessID:    businessID,
		ServiceID:     massageID,
		StaffID:       ptr.Ptr(annaID),
		CustomerName:  "First",
		CustomerEmail: "first@example.com",
		Date:          monday,
		StartTime:     "10:00",
		EndTime:       "11:00",
	}

	first, err := f.execute(req)
	require.NoError(t, err)
	require.Empty(t, first.Errors)

	req.CustomerName = "Second"
	req.StartTime, req.EndTime = "10:30", "11:30"
	second, err := f.execute(req)
	require.NoError(t, err)
	assert.Equal(t, []string{availability.MsgStaffAlreadyBooked}, second.Errors)
	assert.Len(t, f.store.Bookings, 1)
}

func TestExecute_ConcurrentInsertReportedAsTaken(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{name: "exclusion constraint", err: bookingRepo.ErrSlotNotAvailable},
		{name: "serialization failure", err: &pq.Error{Code: "40001"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.store.FailCreate = tc.err

			resp, err := f.execute(tableRequest("10:00", "11:00", 1))
			require.NoError(t, err)
			assert.Equal(t, []string{MsgSlotTaken}, resp.Errors)
			assert.Empty(t, f.notifier.Events)
			assert.Equal(t, 1, f.metrics.Counts["create/conflict"])
		})
	}
}

func TestExecute_InsertFailure(t *testing.T) {
	f := newFixture(t)
	f.store.FailCreate = errors.New("disk full")

	_, err := f.execute(tableRequest("10:00", "11:00", 1))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_Business(t *testing.T) {
	f := newFixture(t)

	req := tableRequest("10:00", "11:00", 1)
	req.BusinessID = 404
	_, err := f.execute(req)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	f.store.Businesses[businessID].IsActive = false
	_, err = f.execute(tableRequest("10:00", "11:00", 1))
	assert.ErrorIs(t, err, ErrBusinessInactive)
	assert.ErrorIs(t, err, domain.ErrPolicy)
}

func TestExecute_InvalidInput(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "no name", mutate: func(r *Request) { r.CustomerName = " " }},
		{name: "no email", mutate: func(r *Request) { r.CustomerEmail = "" }},
		{name: "no date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "bad staff", mutate: func(r *Request) { r.StaffID = ptr.Ptr(int64(0)) }},
		{name: "long requests", mutate: func(r *Request) {
			r.SpecialRequests = ptr.Ptr(strings.Repeat("x", domain.MaxSpecialRequestsLength+1))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			req := tableRequest("10:00", "11:00", 1)
			tc.mutate(req)

			_, err := f.execute(req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrFormat)
			assert.Zero(t, f.tx.Calls)
		})
	}
}

func TestExecute_NotificationFailureKeepsBooking(t *testing.T) {
	f := newFixture(t)
	f.notifier.Err = errors.New("broker down")

	resp, err := f.execute(tableRequest("10:00", "11:00", 1))
	require.NoError(t, err)
	require.Empty(t, resp.Errors)
	assert.Nil(t, resp.ConfirmationSentAt)

	stored := f.store.Booking(resp.ID)
	require.NotNil(t, stored)
	assert.Nil(t, stored.ConfirmationSentAt)
}

func TestExecute_DisabledNotificationsLeaveConfirmationEmpty(t *testing.T) {
	f := newFixture(t)
	f.dispatcher = notifications.NewDispatcher(notifications.NoopPublisher{}, time.Second, logger.NewNop())
	f.uc.notifier = f.dispatcher

	resp, err := f.execute(tableRequest("10:00", "11:00", 1))
	require.NoError(t, err)
	require.Empty(t, resp.Errors)

	stored := f.store.Booking(resp.ID)
	require.NotNil(t, stored)
	assert.Nil(t, stored.ConfirmationSentAt)
	assert.Equal(t, 1, f.metrics.Counts["create/success"])
}

func TestExecute_UnknownServiceIsTheOnlyError(t *testing.T) {
	f := newFixture(t)
	f.store.Businesses[businessID].RequirePhone = true

	req := tableRequest("10:00", "11:00", 1)
	req.ServiceID = 999
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{validation.MsgServiceNotFound}, resp.Errors)
	assert.Empty(t, f.store.Bookings)
}
