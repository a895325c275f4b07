package cancel_booking

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Email              string  `json:"email" validate:"required,email"`
	CancellationReason *string `json:"cancellationReason,omitempty" validate:"omitempty,max=500"`
}
