package get_available_slots

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

// 2025-06-02 is a Monday
var monday = testutil.Date(2025, time.June, 2)

func newUseCase(t *testing.T) (*UseCase, *testutil.Store) {
	t.Helper()

	store := testutil.NewStore(monday)
	store.AddBusiness(&domain.Business{ID: 1, Slug: "corner-cafe", IsActive: true})
	store.AddBusiness(&domain.Business{ID: 2, Slug: "closed-down", IsActive: false})
	store.AddService(&domain.Service{ID: 10, BusinessID: 1, DurationMinutes: 60, Capacity: 4, IsActive: true})
	store.AddWeekly(testutil.Weekly(1, nil, time.Monday, "09:00", "12:00"))

	log := logger.NewNop()
	engine := availability.NewService(store, store, store, availability.CapacitySum, log)
	return NewUseCase(store, engine, log), store
}

func TestExecute_ByIDAndSlug(t *testing.T) {
	uc, store := newUseCase(t)
	store.AddBooking(testutil.ActiveBooking(1, 10, nil, monday, "10:00", "11:00", 3))

	for _, ref := range []string{"1", "corner-cafe"} {
		resp, err := uc.Execute(context.Background(), &Request{Business: ref, ServiceID: 10, Date: monday})
		require.NoError(t, err, ref)

		assert.Equal(t, int64(1), resp.BusinessID)
		require.Len(t, resp.Days, 1)
		day := resp.Days[0]
		assert.Equal(t, int(time.Monday), day.Weekday)
		require.Len(t, day.Slots, 3)

		assert.Equal(t, types.TimeString("09:00"), day.Slots[0].StartTime)
		assert.Equal(t, types.TimeString("10:00"), day.Slots[0].EndTime)
		assert.True(t, day.Slots[0].Available)
		assert.Equal(t, 4, day.Slots[0].RemainingCapacity)

		assert.True(t, day.Slots[1].Available)
		assert.Equal(t, 1, day.Slots[1].RemainingCapacity)
	}
}

func TestExecute_ClosedDay(t *testing.T) {
	uc, _ := newUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{Business: "1", ServiceID: 10, Date: monday.AddDate(0, 0, 1)})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Empty(t, resp.Days[0].Slots)
	assert.NotNil(t, resp.Days[0].Slots)
}

func TestExecuteWeek(t *testing.T) {
	uc, _ := newUseCase(t)

	resp, err := uc.ExecuteWeek(context.Background(), &Request{Business: "corner-cafe", ServiceID: 10, Date: monday})
	require.NoError(t, err)
	require.Len(t, resp.Days, domain.DaysInWeek)

	assert.Len(t, resp.Days[0].Slots, 3)
	for i, day := range resp.Days[1:] {
		assert.Empty(t, day.Slots)
		assert.Equal(t, monday.AddDate(0, 0, i+1), day.Date)
	}
}

func TestExecute_Errors(t *testing.T) {
	cases := []struct {
		name string
		req  *Request
		err  error
	}{
		{name: "empty business", req: &Request{ServiceID: 10, Date: monday}, err: ErrInvalidInput},
		{name: "bad service id", req: &Request{Business: "1", Date: monday}, err: ErrInvalidInput},
		{name: "no date", req: &Request{Business: "1", ServiceID: 10}, err: ErrInvalidInput},
		{name: "unknown id", req: &Request{Business: "42", ServiceID: 10, Date: monday}, err: ErrBusinessNotFound},
		{name: "unknown slug", req: &Request{Business: "nowhere", ServiceID: 10, Date: monday}, err: ErrBusinessNotFound},
		{name: "inactive business", req: &Request{Business: "closed-down", ServiceID: 10, Date: monday}, err: ErrBusinessNotFound},
		{name: "unknown service", req: &Request{Business: "1", ServiceID: 99, Date: monday}, err: ErrServiceNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, _ := newUseCase(t)

			_, err := uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.err)

			_, err = uc.ExecuteWeek(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestExecute_ServiceOfOtherBusiness(t *testing.T) {
	uc, store := newUseCase(t)
	store.AddBusiness(&domain.Business{ID: 3, Slug: "other", IsActive: true})
	store.AddService(&domain.Service{ID: 30, BusinessID: 3, DurationMinutes: 30, Capacity: 1, IsActive: true})

	_, err := uc.Execute(context.Background(), &Request{Business: "1", ServiceID: 30, Date: monday})
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_StorageFailure(t *testing.T) {
	uc, store := newUseCase(t)
	store.FailCatalog = errors.New("connection refused")

	_, err := uc.Execute(context.Background(), &Request{Business: "1", ServiceID: 10, Date: monday})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_StaffSlotsTagged(t *testing.T) {
	uc, store := newUseCase(t)
	store.AddService(&domain.Service{ID: 20, BusinessID: 1, DurationMinutes: 30, Capacity: 1, RequiresStaff: true, IsActive: true})
	store.AddStaff(&domain.StaffMember{ID: 7, BusinessID: 1, IsActive: true}, 20)
	store.AddWeekly(testutil.Weekly(1, ptr.Ptr(int64(7)), time.Monday, "14:00", "15:00"))

	resp, err := uc.Execute(context.Background(), &Request{Business: "1", ServiceID: 20, Date: monday})
	require.NoError(t, err)
	require.Len(t, resp.Days[0].Slots, 2)
	for _, slot := range resp.Days[0].Slots {
		require.NotNil(t, slot.StaffID)
		assert.Equal(t, int64(7), *slot.StaffID)
	}
}

func TestParseBusinessID(t *testing.T) {
	id, ok := parseBusinessID("15")
	assert.True(t, ok)
	assert.Equal(t, int64(15), id)

	for _, ref := range []string{"spa-15", "0", "-3", ""} {
		_, ok := parseBusinessID(ref)
		assert.False(t, ok, ref)
	}
}
