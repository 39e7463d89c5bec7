package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"clinicbook/internal/domain"
	"clinicbook/internal/store"
)

const (
	// exclusionWindow blocks the ±29 minutes around an existing appointment
	// for the same doctor, so two bookings exactly 30 minutes apart are the
	// closest permitted pair.
	exclusionWindow = 29 * time.Minute

	maxUpcomingPerPhone = 2
)

// Service is the booking engine: the only writer of the appointment
// collection.
type Service struct {
	store store.Store
	now   func() time.Time
}

func NewService(st store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

type CreateInput struct {
	DoctorID    int
	PatientName string
	PhoneNumber string
	DateTime    string
}

// Create validates the request and appends the appointment. Rules run in a
// fixed order and short-circuit: datetime format, past date, per-phone limit,
// doctor existence, scheduling conflict. The limit and conflict checks run
// inside one store.Update so the read-check-append sequence is atomic against
// concurrent bookings.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Appointment, error) {
	dt, err := domain.ParseDateTime(strings.TrimSpace(in.DateTime))
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("%w: use ISO format (YYYY-MM-DDTHH:MM:SS)", ErrInvalidDateTime)
	}

	now := domain.NewDateTime(s.now())
	if dt.Before(now) {
		return domain.Appointment{}, ErrPastDateTime
	}

	var created domain.Appointment
	err = s.store.Update(ctx, func(st *store.State) error {
		upcoming := 0
		for _, a := range st.Appointments {
			if a.PhoneNumber == in.PhoneNumber && !a.DateTime.Before(now) {
				upcoming++
			}
		}
		if upcoming >= maxUpcomingPerPhone {
			return ErrPhoneLimitExceeded
		}

		if !doctorExists(st.Doctors, in.DoctorID) {
			return fmt.Errorf("%w: id %d", ErrDoctorNotFound, in.DoctorID)
		}

		for _, a := range st.Appointments {
			if a.DoctorID == in.DoctorID && withinExclusionWindow(dt, a.DateTime) {
				return fmt.Errorf("doctor %d has a %w within 30 minutes of %s",
					in.DoctorID, ErrSchedulingConflict, dt)
			}
		}

		created = domain.Appointment{
			ID:          uuid.NewString(),
			DoctorID:    in.DoctorID,
			PatientName: in.PatientName,
			PhoneNumber: in.PhoneNumber,
			DateTime:    dt,
			Status:      domain.StatusScheduled,
		}
		st.Appointments = append(st.Appointments, created)
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return created, nil
}

// Cancel removes the appointment with the given id. A second cancel of the
// same id fails with ErrAppointmentNotFound; redundant calls are reported
// failures, not silent no-ops.
func (s *Service) Cancel(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(st *store.State) error {
		for i, a := range st.Appointments {
			if a.ID == id {
				st.Appointments = append(st.Appointments[:i:i], st.Appointments[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: id %s", ErrAppointmentNotFound, id)
	})
}

func doctorExists(doctors []domain.Doctor, id int) bool {
	for _, d := range doctors {
		if d.ID == id {
			return true
		}
	}
	return false
}

func withinExclusionWindow(t, existing domain.DateTime) bool {
	diff := t.Sub(existing)
	if diff < 0 {
		diff = -diff
	}
	return diff <= exclusionWindow
}
