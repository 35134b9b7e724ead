package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrRotationConflict is returned when a compare-and-set of the
	// refresh rotation identifier finds the stored value has changed,
	// e.g. a concurrent refresh or a logout won the race.
	ErrRotationConflict = errors.New("refresh rotation conflict")

	// ErrDuplicate is returned when a unique constraint (user name or
	// email, status name) would be violated.
	ErrDuplicate = errors.New("record already exists")
)
