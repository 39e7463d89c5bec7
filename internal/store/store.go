package store

import (
	"context"

	"clinicbook/internal/domain"
)

// State is a view over the two persisted collections. Doctors are seeded
// externally and never written back; appointments are the only collection a
// mutation may change.
type State struct {
	Doctors      []domain.Doctor
	Appointments []domain.Appointment
}

// Store is the single serialization point for the appointment collection.
//
// View runs fn over a snapshot of the last committed state; concurrent views
// do not block each other or mutations. Update runs fn over a mutable copy
// while holding the write lock, so a read-check-append sequence inside fn is
// atomic with respect to every other mutation. If fn returns an error nothing
// is written; if fn succeeds the appointment set is persisted durably before
// the in-memory state advances, and a failed save (reported as a
// *PersistenceError) leaves both in-memory and durable state at the previous
// committed version.
type Store interface {
	View(ctx context.Context, fn func(s State) error) error
	Update(ctx context.Context, fn func(s *State) error) error
}
