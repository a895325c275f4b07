package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/testutil"
)

const businessID = int64(1)

// 2025-06-02 is a Monday
var monday = testutil.Date(2025, time.June, 2)

func TestResolve_NoRules(t *testing.T) {
	store := testutil.NewStore(monday)
	r := NewResolver(store)

	open, err := r.ResolveOpenIntervals(context.Background(), domain.BusinessScope(businessID), monday)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestResolve_SplitShiftsKeptUnmerged(t *testing.T) {
	store := testutil.NewStore(monday)
	store.AddWeekly(
		testutil.Weekly(businessID, nil, time.Monday, "13:00", "17:00"),
		testutil.Weekly(businessID, nil, time.Monday, "09:00", "12:00"),
		testutil.Weekly(businessID, nil, time.Monday, "11:00", "12:30"),
		testutil.Weekly(businessID, nil, time.Tuesday, "06:00", "22:00"),
	)
	r := NewResolver(store)

	open, err := r.ResolveOpenIntervals(context.Background(), domain.BusinessScope(businessID), monday)
	require.NoError(t, err)
	assert.Equal(t, []domain.Interval{
		{Start: 9 * 60, End: 12 * 60},
		{Start: 11 * 60, End: 12*60 + 30},
		{Start: 13 * 60, End: 17 * 60},
	}, open)
}

func TestResolve_ClosureCutsEveryOverlappingRule(t *testing.T) {
	store := testutil.NewStore(monday)
	store.AddWeekly(
		testutil.Weekly(businessID, nil, time.Monday, "09:00", "11:00"),
		testutil.Weekly(businessID, nil, time.Monday, "09:30", "11:30"),
	)
	store.AddOverride(testutil.Closure(businessID, nil, monday, "10:00", "10:30"))
	r := NewResolver(store)

	open, err := r.ResolveOpenIntervals(context.Background(), domain.BusinessScope(businessID), monday)
	require.NoError(t, err)
	assert.Equal(t, []domain.Interval{
		{Start: 9 * 60, End: 10 * 60},
		{Start: 9*60 + 30, End: 10 * 60},
		{Start: 10*60 + 30, End: 11 * 60},
		{Start: 10*60 + 30, End: 11*60 + 30},
	}, open)
}

func TestUnion(t *testing.T) {
	assert.Equal(t, []domain.Interval{{Start: 540, End: 750}, {Start: 780, End: 1020}},
		union([]domain.Interval{{Start: 780, End: 1020}, {Start: 660, End: 750}, {Start: 540, End: 720}}))
	assert.Equal(t, []domain.Interval{{Start: 540, End: 720}},
		union([]domain.Interval{{Start: 600, End: 720}, {Start: 540, End: 600}}), "touching shifts join")
}

func TestResolve_PartialClosureSplitsInterval(t *testing.T) {
	store := testutil.NewStore(monday)
	store.AddWeekly(testutil.Weekly(businessID, nil, time.Monday, "09:00", "17:00"))
	store.AddOverride(testutil.Closure(businessID, nil, monday, "12:00", "13:00"))
	r := NewResolver(store)

	open, err := r.ResolveOpenIntervals(context.Background(), domain.BusinessScope(businessID), monday)
	require.NoError(t, err)
	assert.Equal(t, []domain.Interval{
		{Start: 9 * 60, End: 12 * 60},
		{Start: 13 * 60, End: 17 * 60},
	}, open)
}

func TestResolve_ClosureAtEdges(t *testing.T) {
	store := testutil.NewStore(monday)
	store.AddWeekly(testutil.Weekly(businessID, nil, time.Monday, "09:00", "17:00"))
	store.AddOverride(
		testutil.Closure(businessID, nil, monday, "08:00", "10:00"),
		testutil.Closure(businessID, nil, monday, "16:00", "18:00"),
	)
	r := NewResolver(store)

	open, err := r.ResolveOpenIntervals(context.Background(), domain.BusinessScope(businessID), monday)
	require.NoError(t, err)
	assert.Equal(t, []domain.Interval{{Start: 10 * 60, End: 16 * 60}}, open)
}

func TestResolve_WholeDayClosure(t *testing.T) {
	store := testutil.NewStore(monday)
	store.AddWeekly(testutil.Weekly(businessID, nil, time.Monday, "09:00", "17:00"))
	store.AddOverride(testutil.Closure(businessID, nil, monday, "", ""))
	r := NewResolver(store)

	open, err := r.ResolveOpenIntervals(context.Background(), domain.BusinessScope(businessID), monday)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestResolve_AvailableOverrideIsInert(t *testing.T) {
	store := testutil.NewStore(monday)
	store.AddWeekly(testutil.Weekly(businessID, nil, time.Monday, "09:00", "12:00"))
	extra := testutil.Closure(businessID, nil, monday, "18:00", "20:00")
	extra.IsAvailable = true
	store.AddOverride(extra)
	r := NewResolver(store)

	open, err := r.ResolveOpenIntervals(context.Background(), domain.BusinessScope(businessID), monday)
	require.NoError(t, err)
	assert.Equal(t, []domain.Interval{{Start: 540, End: 720}}, open)
}

func TestResolve_ScopesAreSeparate(t *testing.T) {
	staffID := int64(7)
	store := testutil.NewStore(monday)
	store.AddWeekly(
		testutil.Weekly(businessID, nil, time.Monday, "09:00", "17:00"),
		testutil.Weekly(businessID, &staffID, time.Monday, "10:00", "14:00"),
	)
	store.AddOverride(testutil.Closure(businessID, nil, monday, "", ""))
	r := NewResolver(store)

	open, err := r.ResolveOpenIntervals(context.Background(), domain.StaffScope(businessID, staffID), monday)
	require.NoError(t, err)
	assert.Equal(t, []domain.Interval{{Start: 600, End: 840}}, open)
}

func TestResolve_MalformedRule(t *testing.T) {
	store := testutil.NewStore(monday)
	store.AddWeekly(testutil.Weekly(businessID, nil, time.Monday, "9am", "17:00"))
	r := NewResolver(store)

	_, err := r.ResolveOpenIntervals(context.Background(), domain.BusinessScope(businessID), monday)
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)
	assert.ErrorIs(t, err, ErrMalformedRule)
}

func TestResolve_InvertedRule(t *testing.T) {
	store := testutil.NewStore(monday)
	store.AddWeekly(testutil.Weekly(businessID, nil, time.Monday, "17:00", "09:00"))
	r := NewResolver(store)

	_, err := r.ResolveOpenIntervals(context.Background(), domain.BusinessScope(businessID), monday)
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)
}

func TestResolve_StorageError(t *testing.T) {
	store := testutil.NewStore(monday)
	store.FailRules = errors.New("connection refused")
	r := NewResolver(store)

	_, err := r.ResolveOpenIntervals(context.Background(), domain.BusinessScope(businessID), monday)
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, domain.ErrDataIntegrity)
}

func TestSubtract(t *testing.T) {
	open := []domain.Interval{{Start: 0, End: 100}, {Start: 200, End: 300}}

	assert.Equal(t, []domain.Interval{{Start: 0, End: 50}, {Start: 60, End: 100}, {Start: 200, End: 300}},
		subtract(open, domain.Interval{Start: 50, End: 60}))
	assert.Equal(t, []domain.Interval{{Start: 0, End: 100}, {Start: 200, End: 300}},
		subtract(open, domain.Interval{Start: 100, End: 200}), "touching closures change nothing")
	assert.Equal(t, []domain.Interval{{Start: 0, End: 90}},
		subtract(open, domain.Interval{Start: 90, End: 400}))
}
