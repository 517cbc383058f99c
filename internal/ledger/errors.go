package ledger

import "fmt"

// ValidationError reports a missing required field on a quote draft.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ledger: missing required field %s", e.Field)
}

// CorruptStateError reports an unreadable persisted payload. The ledger
// recovers by reseeding; the error is surfaced so the caller can log it.
type CorruptStateError struct {
	Key string
	Err error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("ledger: corrupt state at key %s: %v", e.Key, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }
