package booking

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"clinicbook/internal/store"
	"clinicbook/internal/store/jsonfile"
)

func openSeededStore(t *testing.T) (*jsonfile.Store, string) {
	t.Helper()
	dir := t.TempDir()
	seed := `[{"doctor_id": 1, "name": "Dr. Rivera", "specialty": "Cardiology"}]`
	if err := os.WriteFile(filepath.Join(dir, "doctors.json"), []byte(seed), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	st, err := jsonfile.Open(dir)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	return st, dir
}

// Two concurrent requests for the same doctor and overlapping times must not
// both commit: the store serializes the read-check-append sequence.
func TestCreate_ConcurrentOverlappingBookings(t *testing.T) {
	st, _ := openSeededStore(t)
	svc := NewService(st)

	const workers = 16

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Create(context.Background(), CreateInput{
				DoctorID:    1,
				PatientName: "Patient",
				PhoneNumber: fmt.Sprintf("555-%04d", i),
				DateTime:    "2099-01-01T10:00:00",
			})
			errs[i] = err
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSchedulingConflict):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("successful bookings = %d, want exactly 1", succeeded)
	}
}

// After any successful create or cancel, reloading from disk yields exactly
// the in-memory appointment set.
func TestCreateAndCancel_DurableRoundTrip(t *testing.T) {
	st, dir := openSeededStore(t)
	svc := NewService(st)

	a, err := svc.Create(context.Background(), CreateInput{
		DoctorID:    1,
		PatientName: "Alice",
		PhoneNumber: "555-1000",
		DateTime:    "2099-01-01T10:00:00",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	b, err := svc.Create(context.Background(), CreateInput{
		DoctorID:    1,
		PatientName: "Bob",
		PhoneNumber: "555-2000",
		DateTime:    "2099-01-01T11:00:00",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if got := reloadIDs(t, dir); !sameIDSet(got, []string{a.ID, b.ID}) {
		t.Fatalf("reloaded ids = %v, want {%s, %s}", got, a.ID, b.ID)
	}

	if err := svc.Cancel(context.Background(), a.ID); err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if got := reloadIDs(t, dir); !sameIDSet(got, []string{b.ID}) {
		t.Fatalf("reloaded ids = %v, want {%s}", got, b.ID)
	}
}

func reloadIDs(t *testing.T, dir string) []string {
	t.Helper()
	reloaded, err := jsonfile.Open(dir)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	var ids []string
	err = reloaded.View(context.Background(), func(st store.State) error {
		for _, a := range st.Appointments {
			ids = append(ids, a.ID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View error: %v", err)
	}
	return ids
}

func sameIDSet(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	set := make(map[string]struct{}, len(want))
	for _, id := range want {
		set[id] = struct{}{}
	}
	for _, id := range got {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}
