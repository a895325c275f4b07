package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func TestGenerateSlots_Basic(t *testing.T) {
	slots := GenerateSlots(9*60, 12*60, 60, 0)

	assert.Equal(t, []domain.Interval{
		{Start: 540, End: 600},
		{Start: 600, End: 660},
		{Start: 660, End: 720},
	}, slots)
}

func TestGenerateSlots_BufferAfter(t *testing.T) {
	// 09:00-11:00, 45 min + 15 min buffer
	slots := GenerateSlots(540, 660, 45, 15)

	assert.Equal(t, []domain.Interval{
		{Start: 540, End: 585},
		{Start: 600, End: 645},
	}, slots)
}

func TestGenerateSlots_WindowShorterThanDuration(t *testing.T) {
	assert.Empty(t, GenerateSlots(540, 570, 60, 0))
}

func TestGenerateSlots_DegenerateInputs(t *testing.T) {
	assert.Empty(t, GenerateSlots(540, 600, 0, 0))
	assert.Empty(t, GenerateSlots(540, 600, -30, 0))
	assert.Len(t, GenerateSlots(540, 600, 30, -10), 2, "negative buffer is treated as zero")
}

func TestGenerateSlots_Properties(t *testing.T) {
	windows := []struct{ start, end string }{
		{"08:00", "17:00"},
		{"09:15", "12:40"},
		{"00:00", "23:59"},
		{"13:00", "13:30"},
	}
	params := []struct{ duration, buffer int }{
		{15, 0}, {30, 10}, {45, 15}, {60, 0}, {90, 30},
	}

	for _, w := range windows {
		start, _ := types.ToMinutes(w.start)
		end, _ := types.ToMinutes(w.end)

		for _, p := range params {
			slots := GenerateSlots(start, end, p.duration, p.buffer)
			step := p.duration + p.buffer

			expected := 0
			if end-start >= p.duration {
				expected = (end-start-p.duration)/step + 1
			}
			assert.Len(t, slots, expected, "window %s-%s d=%d b=%d", w.start, w.end, p.duration, p.buffer)

			for i, s := range slots {
				assert.GreaterOrEqual(t, s.Start, start)
				assert.LessOrEqual(t, s.End, end)
				assert.Equal(t, p.duration, s.Duration())
				if i > 0 {
					assert.Equal(t, step, s.Start-slots[i-1].Start)
				}
			}
		}
	}
}

func TestGenerateSlots_Restartable(t *testing.T) {
	assert.Equal(t, GenerateSlots(600, 780, 30, 5), GenerateSlots(600, 780, 30, 5))
}

func TestSortAndDedupe(t *testing.T) {
	staffA, staffB := int64(1), int64(2)
	slots := []domain.Slot{
		{StartTime: "10:00", EndTime: "11:00", StaffID: &staffB},
		{StartTime: "09:00", EndTime: "10:00", StaffID: &staffA},
		{StartTime: "10:00", EndTime: "11:00", StaffID: &staffA},
		{StartTime: "10:00", EndTime: "11:00", StaffID: &staffB},
		{StartTime: "09:00", EndTime: "10:00"},
	}

	result := sortAndDedupe(slots)

	assert.Len(t, result, 4)
	assert.Nil(t, result[0].StaffID)
	assert.Equal(t, types.TimeString("09:00"), result[1].StartTime)
	assert.Equal(t, staffA, *result[1].StaffID)
	assert.Equal(t, staffA, *result[2].StaffID)
	assert.Equal(t, staffB, *result[3].StaffID)
}
