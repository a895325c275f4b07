package validation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
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

func newValidator(t *testing.T) (*Validator, *testutil.Store, *testutil.Clock) {
	t.Helper()

	store := testutil.NewStore(monday)
	store.AddBusiness(&domain.Business{ID: businessID, Slug: "spa", IsActive: true})
	store.AddService(&domain.Service{
		ID: tableID, BusinessID: businessID, DurationMinutes: 60, Capacity: 2, IsActive: true,
	})
	store.AddService(&domain.Service{
		ID: massageID, BusinessID: businessID, DurationMinutes: 60, Capacity: 1, RequiresStaff: true, IsActive: true,
	})
	store.AddStaff(&domain.StaffMember{ID: annaID, BusinessID: businessID, IsActive: true}, massageID)
	store.AddWeekly(
		testutil.Weekly(businessID, nil, time.Monday, "09:00", "18:00"),
		testutil.Weekly(businessID, ptr.Ptr(annaID), time.Monday, "09:00", "13:00"),
	)

	clock := &testutil.Clock{T: time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)}
	log := logger.NewNop()
	engine := availability.NewService(store, store, store, availability.CapacitySum, log)

	return NewValidator(engine, store, clock, time.UTC, log), store, clock
}

func request(serviceID int64, staffID *int64, start, end string, party int) *Request {
	return &Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		StaffID:    staffID,
		Date:       monday,
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
		PartySize:  party,
	}
}

func TestValidate_Valid(t *testing.T) {
	v, _, _ := newValidator(t)

	result, err := v.Validate(context.Background(), request(tableID, nil, "10:00", "11:00", 2))
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	require.NotNil(t, result.Service)
	assert.Equal(t, tableID, result.Service.ID)
}

func TestValidate_AccumulatesFormatErrors(t *testing.T) {
	v, _, clock := newValidator(t)
	clock.T = time.Date(2025, time.June, 3, 8, 0, 0, 0, time.UTC)

	result, err := v.Validate(context.Background(), request(tableID, nil, "9:75", "25:00", 1))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{MsgInvalidStartTime, MsgInvalidEndTime, MsgDateInPast}, result.Errors)
}

func TestValidate_EndNotAfterStart(t *testing.T) {
	v, _, _ := newValidator(t)

	result, err := v.Validate(context.Background(), request(tableID, nil, "11:00", "11:00", 1))
	require.NoError(t, err)
	assert.Equal(t, []string{MsgEndNotAfterStart}, result.Errors)
}

func TestValidate_TodayIsAllowed(t *testing.T) {
	v, _, clock := newValidator(t)
	clock.T = time.Date(2025, time.June, 2, 23, 0, 0, 0, time.UTC)

	result, err := v.Validate(context.Background(), request(tableID, nil, "10:00", "11:00", 1))
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidate_TodayInBusinessLocation(t *testing.T) {
	v, _, clock := newValidator(t)
	// 2025-06-02 22:30 UTC is already June 3rd in Moscow
	v.location = time.FixedZone("MSK", 3*60*60)
	clock.T = time.Date(2025, time.June, 2, 22, 30, 0, 0, time.UTC)

	result, err := v.Validate(context.Background(), request(tableID, nil, "10:00", "11:00", 1))
	require.NoError(t, err)
	assert.Contains(t, result.Errors, MsgDateInPast)
}

func TestValidate_ServiceNotFoundIsHardStop(t *testing.T) {
	v, _, clock := newValidator(t)
	clock.T = time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	result, err := v.Validate(context.Background(), request(999, nil, "bad", "11:00", 0))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{MsgServiceNotFound}, result.Errors)
	assert.Nil(t, result.Service)
}

func TestValidate_Staff(t *testing.T) {
	cases := []struct {
		name    string
		setup   func(store *testutil.Store)
		staffID *int64
		errors  []string
	}{
		{name: "missing", staffID: nil, errors: []string{availability.MsgStaffRequired}},
		{name: "unknown", staffID: ptr.Ptr(int64(404)), errors: []string{MsgStaffNotFound}},
		{
			name: "inactive",
			setup: func(store *testutil.Store) {
				store.Staff[annaID].IsActive = false
			},
			staffID: ptr.Ptr(annaID),
			errors:  []string{MsgStaffUnavailable},
		},
		{
			name: "other business",
			setup: func(store *testutil.Store) {
				store.AddStaff(&domain.StaffMember{ID: 8, BusinessID: 2, IsActive: true}, massageID)
			},
			staffID: ptr.Ptr(int64(8)),
			errors:  []string{MsgStaffUnavailable},
		},
		{
			name: "not capable",
			setup: func(store *testutil.Store) {
				store.AddStaff(&domain.StaffMember{ID: 9, BusinessID: businessID, IsActive: true})
			},
			staffID: ptr.Ptr(int64(9)),
			errors:  []string{MsgStaffCannotPerform},
		},
		{name: "ok", staffID: ptr.Ptr(annaID), errors: []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, store, _ := newValidator(t)
			if tc.setup != nil {
				tc.setup(store)
			}

			result, err := v.Validate(context.Background(), request(massageID, tc.staffID, "10:00", "11:00", 1))
			require.NoError(t, err)
			assert.Equal(t, tc.errors, result.Errors)
			assert.Equal(t, len(tc.errors) == 0, result.Valid)
		})
	}
}

func TestValidate_StaffOutsideOwnHours(t *testing.T) {
	v, _, _ := newValidator(t)

	// бизнес открыт до 18:00, но Анна работает до 13:00
	result, err := v.Validate(context.Background(), request(massageID, ptr.Ptr(annaID), "14:00", "15:00", 1))
	require.NoError(t, err)
	assert.Equal(t, []string{availability.MsgOutsideHours}, result.Errors)
}

func TestValidate_InvalidPartySize(t *testing.T) {
	v, _, _ := newValidator(t)

	result, err := v.Validate(context.Background(), request(tableID, nil, "10:00", "11:00", 0))
	require.NoError(t, err)
	assert.Equal(t, []string{MsgInvalidPartySize}, result.Errors)
}

func TestValidate_PartyExceedsCapacity(t *testing.T) {
	v, _, _ := newValidator(t)

	result, err := v.Validate(context.Background(), request(tableID, nil, "10:00", "11:00", 3))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "party size 3 exceeds service capacity of 2")
}

func TestValidate_ConflictAndExclude(t *testing.T) {
	v, store, _ := newValidator(t)
	existing := store.AddBooking(testutil.ActiveBooking(businessID, massageID, ptr.Ptr(annaID), monday, "10:00", "11:00", 1))

	req := request(massageID, ptr.Ptr(annaID), "10:30", "11:30", 1)
	result, err := v.Validate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{availability.MsgStaffAlreadyBooked}, result.Errors)

	req.ExcludeBookingID = &existing.ID
	result, err = v.Validate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

// слот из GetDayAvailability с Available=true всегда проходит проверку
func TestValidate_AgreesWithAvailableSlots(t *testing.T) {
	v, store, _ := newValidator(t)
	store.AddBooking(testutil.ActiveBooking(businessID, tableID, nil, monday, "12:00", "13:00", 2))
	store.AddOverride(testutil.Closure(businessID, nil, monday, "15:00", "16:00"))

	engine := availability.NewService(store, store, store, availability.CapacitySum, logger.NewNop())
	day, err := engine.GetDayAvailability(context.Background(), businessID, tableID, monday)
	require.NoError(t, err)
	require.NotEmpty(t, day.Slots)

	for _, slot := range day.Slots {
		result, err := v.Validate(context.Background(), request(tableID, nil, slot.StartTime.String(), slot.EndTime.String(), 1))
		require.NoError(t, err)
		assert.Equal(t, slot.Available, result.Valid, "slot %s-%s: %v", slot.StartTime, slot.EndTime, result.Errors)
	}
}

func TestValidate_StorageFailure(t *testing.T) {
	v, store, _ := newValidator(t)
	store.FailCatalog = errors.New("connection refused")

	_, err := v.Validate(context.Background(), request(tableID, nil, "10:00", "11:00", 1))
	assert.ErrorIs(t, err, ErrInternal)
}
