package domain

// Business a tenant offering bookable services
type Business struct {
	ID                int64
	Slug              string
	Name              string
	IsActive          bool
	CancellationHours *int // nil means the configured default
	RequirePhone      bool
	RequireDeposit    bool
}

// CancellationThreshold minimum hours before start a customer may cancel
func (b *Business) CancellationThreshold(defaultHours int) int {
	if b.CancellationHours == nil {
		return defaultHours
	}
	return *b.CancellationHours
}

// Service a bookable offering of a business
type Service struct {
	ID                  int64
	BusinessID          int64
	Name                string
	DurationMinutes     int
	Capacity            int
	RequiresStaff       bool
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	Price               *float64
	IsActive            bool
}

// BelongsTo reports whether the service is offered by the business
func (s *Service) BelongsTo(businessID int64) bool {
	return s.BusinessID == businessID
}

// TotalFor price for a party, nil when the service has no price
func (s *Service) TotalFor(partySize int) *float64 {
	if s.Price == nil {
		return nil
	}
	total := *s.Price * float64(partySize)
	return &total
}

// StaffMember an employee who can perform some services
type StaffMember struct {
	ID         int64
	BusinessID int64
	Name       string
	IsActive   bool
}
