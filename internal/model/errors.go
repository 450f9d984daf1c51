package model

import "fmt"

// MigrationError reports a failed schema upgrade. It is fatal at startup:
// the migration transaction has been rolled back and re-running at next
// launch is the only recovery path.
type MigrationError struct {
	Version int
	Err     error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migrate database to version %d: %v", e.Version, e.Err)
}

func (e *MigrationError) Unwrap() error { return e.Err }

// StorageError reports a failed repository read or write. The underlying
// data is unchanged; callers must not advance derived state.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// LookupError reports a catalog lookup that failed for transport reasons.
// "Product not found" is not a LookupError; absence is an expected outcome
// and surfaces as a nil result.
type LookupError struct {
	Barcode    string
	StatusCode int
	Err        error
}

func (e *LookupError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog lookup for %q failed with status %d", e.Barcode, e.StatusCode)
	}
	return fmt.Sprintf("catalog lookup for %q: %v", e.Barcode, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }
