// Package testutil in-memory collaborators for package tests.
package testutil

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
)

// Store implements the catalog, rules and booking repositories in memory.
// Errors set in the Fail* fields are returned by the matching group of methods.
type Store struct {
	mu sync.Mutex

	Businesses   map[int64]*domain.Business
	Services     map[int64]*domain.Service
	Staff        map[int64]*domain.StaffMember
	Capabilities map[int64][]int64 // service id -> staff ids
	Weekly       []*domain.WeeklyRule
	Overrides    []*domain.DateOverride
	Bookings     map[int64]*domain.Booking

	FailCatalog  error
	FailRules    error
	FailBookings error
	FailCreate   error

	nextID int64
	now    time.Time
}

// NewStore empty store; now is used for created_at/updated_at
func NewStore(now time.Time) *Store {
	return &Store{
		Businesses:   map[int64]*domain.Business{},
		Services:     map[int64]*domain.Service{},
		Staff:        map[int64]*domain.StaffMember{},
		Capabilities: map[int64][]int64{},
		Bookings:     map[int64]*domain.Booking{},
		nextID:       1000,
		now:          now,
	}
}

func (s *Store) AddBusiness(b *domain.Business) *domain.Business {
	s.Businesses[b.ID] = b
	return b
}

func (s *Store) AddService(svc *domain.Service) *domain.Service {
	s.Services[svc.ID] = svc
	return svc
}

// AddStaff registers a staff member able to perform the given services
func (s *Store) AddStaff(m *domain.StaffMember, serviceIDs ...int64) *domain.StaffMember {
	s.Staff[m.ID] = m
	for _, id := range serviceIDs {
		s.Capabilities[id] = append(s.Capabilities[id], m.ID)
	}
	return m
}

func (s *Store) AddWeekly(rules ...*domain.WeeklyRule) {
	s.Weekly = append(s.Weekly, rules...)
}

func (s *Store) AddOverride(overrides ...*domain.DateOverride) {
	s.Overrides = append(s.Overrides, overrides...)
}

// AddBooking stores a copy of b, assigning an id when it has none
func (s *Store) AddBooking(b *domain.Booking) *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		s.nextID++
		b.ID = s.nextID
	}
	stored := *b
	s.Bookings[b.ID] = &stored
	return b
}

func (s *Store) GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error) {
	if s.FailCatalog != nil {
		return nil, s.FailCatalog
	}
	b, ok := s.Businesses[id]
	if !ok {
		return nil, catalogRepo.ErrBusinessNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *Store) GetBusinessBySlug(ctx context.Context, slug string) (*domain.Business, error) {
	if s.FailCatalog != nil {
		return nil, s.FailCatalog
	}
	for _, b := range s.Businesses {
		if b.Slug == slug {
			cp := *b
			return &cp, nil
		}
	}
	return nil, catalogRepo.ErrBusinessNotFound
}

func (s *Store) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	if s.FailCatalog != nil {
		return nil, s.FailCatalog
	}
	svc, ok := s.Services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	cp := *svc
	return &cp, nil
}

func (s *Store) GetStaffByID(ctx context.Context, id int64) (*domain.StaffMember, error) {
	if s.FailCatalog != nil {
		return nil, s.FailCatalog
	}
	m, ok := s.Staff[id]
	if !ok {
		return nil, catalogRepo.ErrStaffNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *Store) ListStaffForService(ctx context.Context, serviceID int64) ([]*domain.StaffMember, error) {
	if s.FailCatalog != nil {
		return nil, s.FailCatalog
	}
	result := make([]*domain.StaffMember, 0)
	for _, id := range s.Capabilities[serviceID] {
		if m, ok := s.Staff[id]; ok {
			cp := *m
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (s *Store) StaffCanPerform(ctx context.Context, staffID, serviceID int64) (bool, error) {
	if s.FailCatalog != nil {
		return false, s.FailCatalog
	}
	return slices.Contains(s.Capabilities[serviceID], staffID), nil
}

func (s *Store) ListWeeklyRules(ctx context.Context, scope domain.Scope, weekday int) ([]*domain.WeeklyRule, error) {
	if s.FailRules != nil {
		return nil, s.FailRules
	}
	result := make([]*domain.WeeklyRule, 0)
	for _, r := range s.Weekly {
		if r.BusinessID == scope.BusinessID && domain.SameStaff(r.StaffID, scope.StaffID) &&
			r.Weekday == weekday && r.IsActive {
			result = append(result, r)
		}
	}
	return result, nil
}

func (s *Store) ListDateOverrides(ctx context.Context, scope domain.Scope, date time.Time) ([]*domain.DateOverride, error) {
	if s.FailRules != nil {
		return nil, s.FailRules
	}
	result := make([]*domain.DateOverride, 0)
	for _, o := range s.Overrides {
		if o.BusinessID == scope.BusinessID && domain.SameStaff(o.StaffID, scope.StaffID) && sameDay(o.Date, date) {
			result = append(result, o)
		}
	}
	return result, nil
}

func (s *Store) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if s.FailCreate != nil {
		return nil, s.FailCreate
	}
	b.CreatedAt = s.now
	b.UpdatedAt = s.now
	return s.AddBooking(b), nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if s.FailBookings != nil {
		return nil, s.FailBookings
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.Bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *Store) GetByBusinessWithFilter(ctx context.Context, f domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	if s.FailBookings != nil {
		return nil, s.FailBookings
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.Bookings {
		switch {
		case b.BusinessID != f.BusinessID:
			continue
		case f.ServiceID != nil && b.ServiceID != *f.ServiceID:
			continue
		case f.StaffID != nil && !domain.SameStaff(b.StaffID, f.StaffID):
			continue
		case f.StartDate != nil && dateOnly(b.BookingDate).Before(dateOnly(*f.StartDate)):
			continue
		case f.EndDate != nil && dateOnly(b.BookingDate).After(dateOnly(*f.EndDate)):
			continue
		case f.Status != nil && b.Status != *f.Status:
			continue
		case f.Status == nil && !f.IncludeInactive && !b.IsActive():
			continue
		case f.ExcludeID != nil && b.ID == *f.ExcludeID:
			continue
		}
		cp := *b
		result = append(result, &cp)
	}

	slices.SortFunc(result, func(a, b *domain.Booking) int {
		if c := a.BookingDate.Compare(b.BookingDate); c != 0 {
			return c
		}
		if c := strings.Compare(string(a.StartTime), string(b.StartTime)); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})
	return result, nil
}

func (s *Store) Update(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if s.FailBookings != nil {
		return nil, s.FailBookings
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Bookings[b.ID]; !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b.UpdatedAt = s.now
	stored := *b
	s.Bookings[b.ID] = &stored
	return b, nil
}

func (s *Store) MarkConfirmationSent(ctx context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.Bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.ConfirmationSentAt = &at
	return nil
}

// Booking stored copy by id, nil when absent
func (s *Store) Booking(id int64) *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.Bookings[id]
	if !ok {
		return nil
	}
	cp := *b
	return &cp
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return dateOnly(a).Equal(dateOnly(b))
}
