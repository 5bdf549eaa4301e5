package service

import (
	"github.com/google/uuid"

	"fleet-service/internal/model"
)

// The conflict detector scans already-fetched window sets. It must be called
// inside the same lock scope as the write that follows, so the scan and the
// insert observe one snapshot of the schedule.

// findAssignmentConflict returns the first active assignment whose window
// overlaps candidate, ignoring excludeID (so a record being modified does not
// conflict with itself). Completed and cancelled assignments never conflict.
func findAssignmentConflict(existing []model.Assignment, candidate model.Window, excludeID uuid.UUID) *model.Assignment {
	for i := range existing {
		a := &existing[i]
		if !a.IsActive() {
			continue
		}
		if a.ID == excludeID {
			continue
		}
		if a.Window().Overlaps(candidate) {
			return a
		}
	}
	return nil
}

// findBlockConflict is the block-set counterpart of findAssignmentConflict.
func findBlockConflict(existing []model.VehicleBlock, candidate model.Window, excludeID uuid.UUID) *model.VehicleBlock {
	for i := range existing {
		b := &existing[i]
		if !b.IsActive() {
			continue
		}
		if b.ID == excludeID {
			continue
		}
		if b.Window().Overlaps(candidate) {
			return b
		}
	}
	return nil
}

func assignmentConflictError(kind ResourceKind, a *model.Assignment) error {
	return &ConflictError{
		Kind:        kind,
		RecordType:  "assignment",
		ConflictID:  a.ID,
		WindowStart: a.StartTime,
		WindowEnd:   a.EndTime,
	}
}

func blockConflictError(b *model.VehicleBlock) error {
	return &ConflictError{
		Kind:        ResourceKindVehicle,
		RecordType:  "block",
		ConflictID:  b.ID,
		WindowStart: b.StartTime,
		WindowEnd:   b.EndTime,
	}
}
