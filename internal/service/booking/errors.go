package booking

import "errors"

// Booking-rule errors. All of them are expected, recoverable-by-caller
// outcomes; callers match them with errors.Is. Storage faults surface as
// *store.PersistenceError instead.
var (
	ErrInvalidDateTime     = errors.New("invalid datetime format")
	ErrPastDateTime        = errors.New("cannot book appointments in the past")
	ErrPhoneLimitExceeded  = errors.New("a maximum of 2 upcoming appointments are allowed per phone number")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrSchedulingConflict  = errors.New("conflicting appointment")
	ErrAppointmentNotFound = errors.New("appointment not found")
)
