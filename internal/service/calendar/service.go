package calendar

import (
	"context"
	"sort"
	"time"

	"clinicbook/internal/domain"
	"clinicbook/internal/store"
)

// Service serves read-only projections of the doctor and appointment
// collections. It never mutates state and an empty collection yields an empty
// result, not an error.
type Service struct {
	store store.Store
	now   func() time.Time
}

func NewService(st store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// List returns every appointment ordered ascending by datetime. The sort is
// stable, so ties keep insertion order.
func (s *Service) List(ctx context.Context) ([]domain.Appointment, error) {
	return s.list(ctx, func(domain.Appointment) bool { return true })
}

// ListByDoctor returns the appointments for one doctor, same ordering as List.
func (s *Service) ListByDoctor(ctx context.Context, doctorID int) ([]domain.Appointment, error) {
	return s.list(ctx, func(a domain.Appointment) bool { return a.DoctorID == doctorID })
}

// ListUpcoming returns appointments whose datetime is at or after the current
// instant.
func (s *Service) ListUpcoming(ctx context.Context) ([]domain.Appointment, error) {
	now := domain.NewDateTime(s.now())
	return s.list(ctx, func(a domain.Appointment) bool { return !a.DateTime.Before(now) })
}

// Doctors returns the full doctor set in load order.
func (s *Service) Doctors(ctx context.Context) ([]domain.Doctor, error) {
	out := []domain.Doctor{}
	err := s.store.View(ctx, func(st store.State) error {
		out = append(out, st.Doctors...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) list(ctx context.Context, keep func(domain.Appointment) bool) ([]domain.Appointment, error) {
	out := []domain.Appointment{}
	err := s.store.View(ctx, func(st store.State) error {
		for _, a := range st.Appointments {
			if keep(a) {
				out = append(out, a)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateTime.Before(out[j].DateTime)
	})
	return out, nil
}
