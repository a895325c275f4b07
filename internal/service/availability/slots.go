package availability

import (
	"slices"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// GenerateSlots нарезает окно [windowStart, windowEnd) на слоты длительностью duration.
// Следующий слот начинается через duration+bufferAfter после предыдущего.
// Слот, не помещающийся в окно целиком, не выдается.
func GenerateSlots(windowStart, windowEnd, duration, bufferAfter int) []domain.Interval {
	if duration <= 0 {
		return nil
	}
	if bufferAfter < 0 {
		bufferAfter = 0
	}

	step := duration + bufferAfter
	slots := make([]domain.Interval, 0, max(0, (windowEnd-windowStart)/step+1))
	for cursor := windowStart; cursor+duration <= windowEnd; cursor += step {
		slots = append(slots, domain.Interval{Start: cursor, End: cursor + duration})
	}

	return slots
}

// toSlots переводит интервалы в слоты, по умолчанию доступные
func toSlots(intervals []domain.Interval, staffID *int64, capacity int) []domain.Slot {
	slots := make([]domain.Slot, 0, len(intervals))
	for _, iv := range intervals {
		slots = append(slots, domain.Slot{
			StartTime:         types.FromMinutes(iv.Start),
			EndTime:           types.FromMinutes(iv.End),
			Available:         true,
			StaffID:           staffID,
			RemainingCapacity: capacity,
		})
	}
	return slots
}

// sortAndDedupe упорядочивает по (начало, конец, сотрудник) и удаляет дубликаты
func sortAndDedupe(slots []domain.Slot) []domain.Slot {
	slices.SortStableFunc(slots, compareSlots)

	return slices.CompactFunc(slots, func(a, b domain.Slot) bool {
		return compareSlots(a, b) == 0
	})
}

func compareSlots(a, b domain.Slot) int {
	if a.StartTime != b.StartTime {
		return compareTime(a.StartTime, b.StartTime)
	}
	if a.EndTime != b.EndTime {
		return compareTime(a.EndTime, b.EndTime)
	}
	return compareStaff(a.StaffID, b.StaffID)
}

// compareTime слоты всегда в формате HH:MM с ведущим нулем, поэтому строки сравнимы
func compareTime(a, b types.TimeString) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareStaff(a, b *int64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}
