// Package storage defines the error taxonomy shared by both storage backends.
package storage

import "errors"

// ErrNotFound is returned when a get, update or delete targets an id that
// does not exist in its collection. Callers must distinguish it from an
// empty list result.
var ErrNotFound = errors.New("record not found")

// ErrInvalidReference is returned when a record references another record
// (appointment -> patient/doctor) that does not resolve.
var ErrInvalidReference = errors.New("referenced record does not exist")
