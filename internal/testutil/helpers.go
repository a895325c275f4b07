package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// TxManager runs callbacks inline, without a database
type TxManager struct {
	Calls int
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

// Clock fixed time provider
type Clock struct {
	T time.Time
}

func (c *Clock) Now() time.Time {
	return c.T
}

// Date midnight UTC of the given day
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Weekly business-scope (staffID nil) or staff-scope weekly rule
func Weekly(businessID int64, staffID *int64, weekday time.Weekday, start, end string) *domain.WeeklyRule {
	return &domain.WeeklyRule{
		BusinessID: businessID,
		StaffID:    staffID,
		Weekday:    int(weekday),
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
		IsActive:   true,
	}
}

// Closure is_available=false override; empty start/end closes the whole day
func Closure(businessID int64, staffID *int64, date time.Time, start, end string) *domain.DateOverride {
	o := &domain.DateOverride{
		BusinessID:  businessID,
		StaffID:     staffID,
		Date:        date,
		IsAvailable: false,
	}
	if start != "" && end != "" {
		s, e := types.TimeString(start), types.TimeString(end)
		o.StartTime, o.EndTime = &s, &e
	}
	return o
}

// ActiveBooking confirmed booking for tests
func ActiveBooking(businessID, serviceID int64, staffID *int64, date time.Time, start, end string, partySize int) *domain.Booking {
	return &domain.Booking{
		BusinessID:    businessID,
		ServiceID:     serviceID,
		StaffID:       staffID,
		CustomerName:  "Existing Customer",
		CustomerEmail: "existing@example.com",
		BookingDate:   date,
		StartTime:     types.TimeString(start),
		EndTime:       types.TimeString(end),
		PartySize:     partySize,
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPending,
	}
}

// Notifier records published events. Safe for use from dispatch goroutines;
// read Events and IDs after the dispatcher's Wait.
type Notifier struct {
	mu     sync.Mutex
	Events []string
	IDs    []int64
	Err    error
}

func (n *Notifier) Publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.Err != nil {
		return n.Err
	}
	n.Events = append(n.Events, eventType)
	n.IDs = append(n.IDs, booking.ID)
	return nil
}

// Metrics counts booking outcomes by "operation/outcome"
type Metrics struct {
	Counts map[string]int
}

func (m *Metrics) RecordBooking(operation, outcome string) {
	if m.Counts == nil {
		m.Counts = map[string]int{}
	}
	m.Counts[operation+"/"+outcome]++
}
