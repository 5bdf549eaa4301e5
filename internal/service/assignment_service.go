package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fleet-service/internal/clock"
	"fleet-service/internal/model"
)

// AssignmentService owns the assignment lifecycle and is, together with
// BlockService, the only writer of Vehicle.Status. Every mutation runs the
// conflict check and its writes inside one lock scope covering the affected
// vehicle and driver, so no interleaving of concurrent calls can produce two
// overlapping active windows for the same resource.
type AssignmentService struct {
	store    FleetStore
	notifier Notifier
	clock    clock.Clock
	log      zerolog.Logger
}

func NewAssignmentService(store FleetStore, notifier Notifier, clk clock.Clock, log zerolog.Logger) *AssignmentService {
	return &AssignmentService{
		store:    store,
		notifier: notifier,
		clock:    clk,
		log:      log,
	}
}

type CreateAssignmentInput struct {
	VehicleID string
	DriverID  string
	StartTime string
	EndTime   string
	Reason    string
}

func (s *AssignmentService) Create(ctx context.Context, principal model.Principal, input CreateAssignmentInput) (*model.Assignment, error) {
	if !principal.CanSchedule() {
		return nil, ErrPermissionDenied
	}

	vehicleID, err := uuid.Parse(input.VehicleID)
	if err != nil {
		return nil, ErrInvalidInput
	}
	driverID, err := uuid.Parse(input.DriverID)
	if err != nil {
		return nil, ErrInvalidInput
	}

	window, err := parseWindow(input.StartTime, input.EndTime)
	if err != nil {
		return nil, ErrInvalidInput
	}

	keys := SortKeys([]ResourceKey{
		{Kind: ResourceKindVehicle, ID: vehicleID},
		{Kind: ResourceKindDriver, ID: driverID},
	})

	assignment := &model.Assignment{
		VehicleID: vehicleID,
		DriverID:  driverID,
		StartTime: window.Start,
		EndTime:   window.End,
		Reason:    input.Reason,
		Status:    model.AssignmentStatusActive,
		CreatedBy: principal.UserID,
	}

	err = s.store.WithLock(ctx, keys, func(tx FleetTx) error {
		vehicle, err := tx.Vehicle(ctx, vehicleID)
		if err != nil {
			return err
		}
		if vehicle == nil {
			return ErrNotFound
		}
		driver, err := tx.Driver(ctx, driverID)
		if err != nil {
			return err
		}
		if driver == nil {
			return ErrNotFound
		}

		vehicleAssignments, err := tx.ActiveAssignments(ctx, ResourceKindVehicle, vehicleID)
		if err != nil {
			return err
		}
		if hit := findAssignmentConflict(vehicleAssignments, window, uuid.Nil); hit != nil {
			return assignmentConflictError(ResourceKindVehicle, hit)
		}

		blocks, err := tx.ActiveBlocks(ctx, vehicleID)
		if err != nil {
			return err
		}
		if hit := findBlockConflict(blocks, window, uuid.Nil); hit != nil {
			return blockConflictError(hit)
		}

		driverAssignments, err := tx.ActiveAssignments(ctx, ResourceKindDriver, driverID)
		if err != nil {
			return err
		}
		if hit := findAssignmentConflict(driverAssignments, window, uuid.Nil); hit != nil {
			return assignmentConflictError(ResourceKindDriver, hit)
		}

		if err := tx.InsertAssignment(ctx, assignment); err != nil {
			return err
		}

		status := deriveVehicleStatus(s.clock.Now(), append(vehicleAssignments, *assignment), blocks)
		return tx.SetVehicleStatus(ctx, vehicleID, status)
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, EventAssignmentCreated, *assignment)
	return assignment, nil
}

// Complete closes an active assignment. completionAt, when supplied, must
// fall inside the scheduled window and becomes the new end time (early
// return of the vehicle).
func (s *AssignmentService) Complete(ctx context.Context, principal model.Principal, id string, completionAt *time.Time) (*model.Assignment, error) {
	return s.finish(ctx, principal, id, model.AssignmentStatusCompleted, completionAt, nil)
}

// Cancel voids an active assignment. The scheduled window is kept for audit.
func (s *AssignmentService) Cancel(ctx context.Context, principal model.Principal, id string, reason *string) (*model.Assignment, error) {
	return s.finish(ctx, principal, id, model.AssignmentStatusCancelled, nil, reason)
}

func (s *AssignmentService) finish(ctx context.Context, principal model.Principal, id string, target model.AssignmentStatus, completionAt *time.Time, reason *string) (*model.Assignment, error) {
	if !principal.CanSchedule() {
		return nil, ErrPermissionDenied
	}

	assignmentID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidInput
	}

	// First read is only to learn which resources to lock; state is
	// re-checked inside the lock scope.
	peek, err := s.store.Assignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if peek == nil {
		return nil, ErrNotFound
	}

	keys := SortKeys([]ResourceKey{
		{Kind: ResourceKindVehicle, ID: peek.VehicleID},
		{Kind: ResourceKindDriver, ID: peek.DriverID},
	})

	var result *model.Assignment
	err = s.store.WithLock(ctx, keys, func(tx FleetTx) error {
		assignment, err := tx.Assignment(ctx, assignmentID)
		if err != nil {
			return err
		}
		if assignment == nil {
			return ErrNotFound
		}
		if !assignment.IsActive() {
			return ErrInvalidState
		}

		if completionAt != nil {
			t := completionAt.UTC()
			if !t.After(assignment.StartTime) || t.After(assignment.EndTime) {
				return ErrInvalidInput
			}
			assignment.EndTime = t
		}
		assignment.Status = target
		if reason != nil {
			assignment.CancelReason = reason
		}

		if err := tx.SaveAssignment(ctx, assignment); err != nil {
			return err
		}

		// The saved row is no longer active, so it drops out of this query.
		remaining, err := tx.ActiveAssignments(ctx, ResourceKindVehicle, assignment.VehicleID)
		if err != nil {
			return err
		}
		blocks, err := tx.ActiveBlocks(ctx, assignment.VehicleID)
		if err != nil {
			return err
		}
		if err := tx.SetVehicleStatus(ctx, assignment.VehicleID, deriveVehicleStatus(s.clock.Now(), remaining, blocks)); err != nil {
			return err
		}

		result = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	if target == model.AssignmentStatusCompleted {
		s.emit(ctx, EventAssignmentCompleted, *result)
	} else {
		s.emit(ctx, EventAssignmentCancelled, *result)
	}
	return result, nil
}

func (s *AssignmentService) Get(ctx context.Context, principal model.Principal, id string) (*model.Assignment, error) {
	assignmentID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidInput
	}
	assignment, err := s.store.Assignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, ErrNotFound
	}
	return assignment, nil
}

func (s *AssignmentService) List(ctx context.Context, principal model.Principal, filter AssignmentFilter) ([]model.Assignment, error) {
	return s.store.Assignments(ctx, filter)
}

// emit delivers a post-commit event. Failures are logged and swallowed; the
// committed transaction stands regardless.
func (s *AssignmentService) emit(ctx context.Context, eventType EventType, assignment model.Assignment) {
	if err := s.notifier.Notify(ctx, Event{Type: eventType, Assignment: assignment}); err != nil {
		s.log.Warn().Err(err).
			Str("event", string(eventType)).
			Str("assignment_id", assignment.ID.String()).
			Msg("notification delivery failed")
	}
}

func parseWindow(start, end string) (model.Window, error) {
	startAt, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return model.Window{}, err
	}
	endAt, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return model.Window{}, err
	}
	w := model.Window{Start: startAt.UTC(), End: endAt.UTC()}
	if !w.Valid() {
		return model.Window{}, ErrInvalidInput
	}
	return w, nil
}
