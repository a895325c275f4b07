package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:30", want: 570},
		{in: "9:30", want: 570},
		{in: "23:59", want: 1439},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "1230", wantErr: true},
		{in: "", wantErr: true},
		{in: "09:00:00", wantErr: true},
		{in: "ab:cd", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ToMinutes(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFromMinutesRoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m += 7 {
		got, err := ToMinutes(FromMinutes(m).String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(600, 660, 630, 690))
	assert.True(t, Overlaps(600, 660, 600, 660))
	assert.True(t, Overlaps(600, 720, 630, 650))
	assert.False(t, Overlaps(600, 660, 660, 720), "touching intervals must not overlap")
	assert.False(t, Overlaps(660, 720, 600, 660))
	assert.False(t, Overlaps(600, 630, 700, 730))
}

func TestNewTimeStringFromStringPads(t *testing.T) {
	ts, err := NewTimeStringFromString("9:05")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:05"), ts)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestAddMinutes(t *testing.T) {
	ts, err := TimeString("10:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), ts)

	_, err = TimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:01").IsAfter("10:00"))
	assert.False(t, TimeString("bad").IsAfter("10:00"))
}

func TestScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("09:15:00"))
	assert.Equal(t, TimeString("09:15"), ts)

	require.NoError(t, ts.Scan([]byte("18:00")))
	assert.Equal(t, TimeString("18:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	require.NoError(t, ts.Scan("nonsense"))
	assert.Error(t, ts.Validate())

	assert.Error(t, ts.Scan(42))
}

func TestOn(t *testing.T) {
	loc := time.FixedZone("local", 3*60*60)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	at, err := TimeString("14:30").On(day, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, loc), at)
}
