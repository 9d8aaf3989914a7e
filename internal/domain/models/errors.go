package models

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested record does not exist in the backing store.
var ErrNotFound = errors.New("record not found")

// ErrConflict indicates the request collides with the current state of a record.
var ErrConflict = errors.New("conflict")

// ErrInvalidTransition is a conflict caused by a state change the record cannot make.
var ErrInvalidTransition = fmt.Errorf("%w: invalid state transition", ErrConflict)

// ErrUnavailable wraps every backing store failure that is not a domain outcome.
var ErrUnavailable = errors.New("backing store unavailable")
