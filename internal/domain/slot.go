package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Interval half-open range [Start, End) in minutes since midnight
type Interval struct {
	Start int
	End   int
}

// Duration length in minutes
func (i Interval) Duration() int {
	return i.End - i.Start
}

// Contains reports whether other lies entirely inside i
func (i Interval) Contains(other Interval) bool {
	return i.Start <= other.Start && other.End <= i.End
}

// Overlaps reports whether the two ranges intersect; touching ranges do not
func (i Interval) Overlaps(other Interval) bool {
	return types.Overlaps(i.Start, i.End, other.Start, other.End)
}

// Slot a candidate booking window
type Slot struct {
	StartTime         types.TimeString
	EndTime           types.TimeString
	Available         bool
	StaffID           *int64
	RemainingCapacity int
}

// DayAvailability slots of one calendar date
type DayAvailability struct {
	Date    time.Time
	Weekday int // 0 = Sunday
	Slots   []Slot
}

// AvailableCount number of bookable slots
func (d *DayAvailability) AvailableCount() int {
	n := 0
	for _, s := range d.Slots {
		if s.Available {
			n++
		}
	}
	return n
}
