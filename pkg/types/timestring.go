package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// MinutesPerDay upper bound for minute offsets within a day
	MinutesPerDay = 24 * 60

	timeLayout = "15:04"
)

var (
	// ErrInvalidFormat возвращается, если строка не соответствует формату HH:MM
	ErrInvalidFormat = errors.New("invalid time string format")

	// ErrOutOfRange возвращается, если результат выходит за пределы суток
	ErrOutOfRange = errors.New("time is out of day range")

	timePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// TimeString wall-clock time of day in "HH:MM" form
type TimeString string

// NewTimeString returns the time of day of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString validates s and returns it zero-padded
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := ToMinutes(s)
	if err != nil {
		return "", err
	}
	return FromMinutes(minutes), nil
}

// ToMinutes converts "HH:MM" into minutes since midnight
func ToMinutes(s string) (int, error) {
	if !timePattern.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	hh, mm, _ := strings.Cut(s, ":")
	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	return hours*60 + minutes, nil
}

// FromMinutes formats minutes since midnight as "HH:MM"
func FromMinutes(minutes int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

// Overlaps reports whether half-open intervals [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// Minutes returns minutes since midnight
func (t TimeString) Minutes() (int, error) {
	return ToMinutes(string(t))
}

// Validate checks the HH:MM format
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// IsZero true for an empty value
func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) String() string {
	return string(t)
}

// AddMinutes shifts the time, staying within the same day
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return "", err
	}

	result := minutes + n
	if result < 0 || result >= MinutesPerDay {
		return "", fmt.Errorf("%w: %s%+d min", ErrOutOfRange, t, n)
	}

	return FromMinutes(result), nil
}

// IsBefore false when either side is malformed
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter false when either side is malformed
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// On combines the time of day with the calendar date of day in loc
func (t TimeString) On(day time.Time, loc *time.Location) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc), nil
}

// Scan implements sql.Scanner.
// Postgres TIME columns arrive as "HH:MM:SS"; seconds are dropped.
// Malformed values are kept as is so callers can report them.
func (t *TimeString) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidFormat, src)
	}

	if len(s) > 5 && s[len(s)-3] == ':' {
		s = s[:len(s)-3]
	}
	*t = TimeString(s)
	return nil
}

// Value implements driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}
