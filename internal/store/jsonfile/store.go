package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"clinicbook/internal/domain"
	"clinicbook/internal/store"
)

const (
	doctorsFile      = "doctors.json"
	appointmentsFile = "appointments.json"
)

// Store keeps both collections in memory and rewrites appointments.json as a
// complete snapshot on every successful mutation. Saves go through a temp
// file in the same directory followed by a rename, so a concurrent reader of
// the file never observes a truncated or mixed-version snapshot.
type Store struct {
	dir string

	mu           sync.RWMutex
	doctors      []domain.Doctor
	appointments []domain.Appointment
}

// Open loads both collections from dir. A missing or corrupt file yields an
// empty collection rather than an error: doctors are provisioned out-of-band
// and appointments start empty on first run.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &store.PersistenceError{Op: "create data dir " + dir, Err: err}
	}

	s := &Store{dir: dir}
	s.doctors = readArray[domain.Doctor](filepath.Join(dir, doctorsFile))
	s.appointments = readArray[domain.Appointment](filepath.Join(dir, appointmentsFile))
	return s, nil
}

// readArray returns nil for a missing or corrupt file.
func readArray[T any](path string) []T {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}

func (s *Store) View(ctx context.Context, fn func(st store.State) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	st := store.State{
		Doctors:      append([]domain.Doctor(nil), s.doctors...),
		Appointments: append([]domain.Appointment(nil), s.appointments...),
	}
	s.mu.RUnlock()

	return fn(st)
}

func (s *Store) Update(ctx context.Context, fn func(st *store.State) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := store.State{
		Doctors:      append([]domain.Doctor(nil), s.doctors...),
		Appointments: append([]domain.Appointment(nil), s.appointments...),
	}
	if err := fn(&st); err != nil {
		return err
	}
	if err := s.saveAppointments(st.Appointments); err != nil {
		return err
	}
	s.appointments = st.Appointments
	return nil
}

func (s *Store) saveAppointments(appts []domain.Appointment) error {
	if appts == nil {
		appts = []domain.Appointment{}
	}
	b, err := json.MarshalIndent(appts, "", "    ")
	if err != nil {
		return &store.PersistenceError{Op: "encode appointments", Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, appointmentsFile+".tmp-*")
	if err != nil {
		return &store.PersistenceError{Op: "create temp file", Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &store.PersistenceError{Op: "write " + tmpName, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &store.PersistenceError{Op: "sync " + tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &store.PersistenceError{Op: "close " + tmpName, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return &store.PersistenceError{Op: "chmod " + tmpName, Err: err}
	}

	dst := filepath.Join(s.dir, appointmentsFile)
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return &store.PersistenceError{Op: "rename " + tmpName + " to " + dst, Err: err}
	}
	return nil
}
