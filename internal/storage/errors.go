package storage

import "errors"

var ErrNotFound = errors.New("record not found")
var ErrConflict = errors.New("record conflict (e.g., duplicate key)")

// ErrDuplicateEmail is returned by UserRepository.Create for a taken email.
var ErrDuplicateEmail = errors.New("email already registered")
