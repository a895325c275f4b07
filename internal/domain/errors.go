package domain

import "errors"

// Error categories shared by every layer.
// Package-level errors wrap one of these so handlers can map them with errors.Is.
var (
	// ErrFormat malformed input (time/date strings, ids)
	ErrFormat = errors.New("format error")

	// ErrNotFound referenced business, service, staff member or booking does not exist
	ErrNotFound = errors.New("not found")

	// ErrPolicy business rule violated (cancellation window, closed day, capacity)
	ErrPolicy = errors.New("policy violation")

	// ErrForbidden caller is not allowed to act on the resource
	ErrForbidden = errors.New("forbidden")

	// ErrConflict state conflict (already cancelled, slot taken)
	ErrConflict = errors.New("conflict")

	// ErrDataIntegrity stored data is malformed
	ErrDataIntegrity = errors.New("data integrity error")
)
