package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidState     = errors.New("invalid state")
	ErrConflict         = errors.New("conflict")
)

// ConflictError reports an overlapping active window. It carries the
// conflicting record so the caller can react; it is a client error, not a
// transient condition to retry.
type ConflictError struct {
	Kind         ResourceKind
	RecordType   string // "assignment" or "block"
	ConflictID   uuid.UUID
	WindowStart  time.Time
	WindowEnd    time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s schedule conflict with %s %s [%s, %s)",
		e.Kind, e.RecordType, e.ConflictID,
		e.WindowStart.Format(time.RFC3339), e.WindowEnd.Format(time.RFC3339))
}

// Is lets errors.Is(err, ErrConflict) match a ConflictError.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
