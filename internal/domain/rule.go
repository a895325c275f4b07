package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Scope owner of availability rules: the whole business or one staff member
type Scope struct {
	BusinessID int64
	StaffID    *int64
}

// BusinessScope rules of the business itself
func BusinessScope(businessID int64) Scope {
	return Scope{BusinessID: businessID}
}

// StaffScope rules of a single staff member
func StaffScope(businessID, staffID int64) Scope {
	return Scope{BusinessID: businessID, StaffID: &staffID}
}

// IsStaff true for staff-level scope
func (s Scope) IsStaff() bool {
	return s.StaffID != nil
}

// WeeklyRule recurring open window on a weekday (0 = Sunday)
type WeeklyRule struct {
	ID         int64
	BusinessID int64
	StaffID    *int64
	Weekday    int
	StartTime  types.TimeString
	EndTime    types.TimeString
	IsActive   bool
}

// DateOverride one-off change for a specific date.
// IsAvailable=false closes the window, or the whole day when times are empty.
type DateOverride struct {
	ID          int64
	BusinessID  int64
	StaffID     *int64
	Date        time.Time
	StartTime   *types.TimeString
	EndTime     *types.TimeString
	IsAvailable bool
	Reason      *string
}

// IsWholeDay true when the override has no time range
func (o *DateOverride) IsWholeDay() bool {
	return o.StartTime == nil || o.EndTime == nil || o.StartTime.IsZero() || o.EndTime.IsZero()
}
