package store

// PersistenceError reports that a mutation did not durably commit. It is
// distinct from the booking-rule errors so callers do not retry a business
// rejection as if it were a storage fault.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence failure: " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }
