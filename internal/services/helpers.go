package services

import (
	"errors"
	"fmt"

	"job-tracker-api/internal/storage"

	log "github.com/sirupsen/logrus"
)

// mapRepoError maps storage errors to service errors
func mapRepoError(err error, operation string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	}
	if errors.Is(err, storage.ErrDuplicateEmail) {
		return fmt.Errorf("%w: %s (duplicate email)", ErrConflict, operation)
	}
	if errors.Is(err, storage.ErrConflict) {
		return fmt.Errorf("%w: %s (%v)", ErrConflict, operation, err)
	}
	log.WithError(err).WithField("op", operation).Error("Unexpected repository error")
	return fmt.Errorf("internal error during %s: %w", operation, err)
}

// opLogger returns an entry tagged with the operation and optional entity ids.
func opLogger(op string, fields log.Fields) *log.Entry {
	entry := log.WithField("op", op)
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	return entry
}
