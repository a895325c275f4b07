package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	allowed := map[BookingStatus][]BookingStatus{
		StatusPending:   {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusCancelled, StatusCompleted, StatusNoShow},
	}
	all := []BookingStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("no_show")
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, s)

	_, err = ParseBookingStatus("in_progress")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestServiceTotalFor(t *testing.T) {
	price := 25.5
	svc := &Service{Price: &price}
	total := svc.TotalFor(3)
	require.NotNil(t, total)
	assert.InDelta(t, 76.5, *total, 0.0001)

	assert.Nil(t, (&Service{}).TotalFor(2))
}

func TestCancellationThreshold(t *testing.T) {
	assert.Equal(t, 24, (&Business{}).CancellationThreshold(DefaultCancellationHours))
	hours := 2
	assert.Equal(t, 2, (&Business{CancellationHours: &hours}).CancellationThreshold(DefaultCancellationHours))
}

func TestSameStaff(t *testing.T) {
	a, b := int64(1), int64(2)
	a2 := int64(1)
	assert.True(t, SameStaff(nil, nil))
	assert.True(t, SameStaff(&a, &a2))
	assert.False(t, SameStaff(&a, &b))
	assert.False(t, SameStaff(&a, nil))
}
