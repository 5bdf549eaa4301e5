package service_test

import (
	"context"
	"errors"
	"testing"

	"fleet-service/internal/model"
	"fleet-service/internal/service"
)

func TestCreateBlockCoveringNow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	vehicle := env.addVehicle(t)

	// Clock is pinned to 2024-01-02; this window covers it.
	block, err := env.blocks.Create(ctx, env.dispatcher, service.CreateBlockInput{
		VehicleID: vehicle.ID.String(),
		StartTime: "2024-01-01T00:00:00Z",
		EndTime:   "2024-01-10T00:00:00Z",
		Reason:    "engine overhaul",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if block.Status != model.BlockStatusActive {
		t.Errorf("block status = %s, want ACTIVE", block.Status)
	}
	if got := env.vehicleStatus(t, vehicle); got != model.VehicleStatusBlocked {
		t.Errorf("vehicle status = %s, want BLOCKED", got)
	}

	completed, err := env.blocks.Complete(ctx, env.dispatcher, block.ID.String())
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if completed.Status != model.BlockStatusCompleted {
		t.Errorf("status = %s, want COMPLETED", completed.Status)
	}
	if got := env.vehicleStatus(t, vehicle); got != model.VehicleStatusAvailable {
		t.Errorf("vehicle status after completion = %s, want AVAILABLE", got)
	}

	if _, err := env.blocks.Complete(ctx, env.dispatcher, block.ID.String()); !errors.Is(err, service.ErrInvalidState) {
		t.Errorf("double complete: got %v, want invalid state", err)
	}
}

func TestCreateBlockFutureWindow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	vehicle := env.addVehicle(t)

	// Future block reserves the window but does not change today's status.
	if _, err := env.blocks.Create(ctx, env.dispatcher, service.CreateBlockInput{
		VehicleID: vehicle.ID.String(),
		StartTime: "2024-03-01T00:00:00Z",
		EndTime:   "2024-03-05T00:00:00Z",
		Reason:    "scheduled inspection",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := env.vehicleStatus(t, vehicle); got != model.VehicleStatusAvailable {
		t.Errorf("vehicle status = %s, want AVAILABLE", got)
	}
}

func TestBlockAssignmentMutualExclusion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	vehicle := env.addVehicle(t)
	driver := env.addDriver(t, "DL-B1")

	assignment, err := env.assignments.Create(ctx, env.dispatcher, service.CreateAssignmentInput{
		VehicleID: vehicle.ID.String(),
		DriverID:  driver.ID.String(),
		StartTime: "2024-01-05T00:00:00Z",
		EndTime:   "2024-01-08T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}

	// Block overlapping the assignment window is rejected.
	_, err = env.blocks.Create(ctx, env.dispatcher, service.CreateBlockInput{
		VehicleID: vehicle.ID.String(),
		StartTime: "2024-01-07T00:00:00Z",
		EndTime:   "2024-01-09T00:00:00Z",
		Reason:    "tire change",
	})
	if !errors.Is(err, service.ErrConflict) {
		t.Fatalf("overlapping block: got %v, want conflict", err)
	}
	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) && conflictErr.ConflictID != assignment.ID {
		t.Errorf("conflict names %s, want assignment %s", conflictErr.ConflictID, assignment.ID)
	}

	// Adjacent block is fine.
	block, err := env.blocks.Create(ctx, env.dispatcher, service.CreateBlockInput{
		VehicleID: vehicle.ID.String(),
		StartTime: "2024-01-08T00:00:00Z",
		EndTime:   "2024-01-09T00:00:00Z",
		Reason:    "tire change",
	})
	if err != nil {
		t.Fatalf("adjacent block should succeed: %v", err)
	}

	// And the other direction: an assignment overlapping the block is rejected.
	_, err = env.assignments.Create(ctx, env.dispatcher, service.CreateAssignmentInput{
		VehicleID: vehicle.ID.String(),
		DriverID:  driver.ID.String(),
		StartTime: "2024-01-08T12:00:00Z",
		EndTime:   "2024-01-10T00:00:00Z",
	})
	if !errors.Is(err, service.ErrConflict) {
		t.Fatalf("assignment over block: got %v, want conflict", err)
	}
	if errors.As(err, &conflictErr) && conflictErr.ConflictID != block.ID {
		t.Errorf("conflict names %s, want block %s", conflictErr.ConflictID, block.ID)
	}
}

func TestCreateBlockValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	vehicle := env.addVehicle(t)

	if _, err := env.blocks.Create(ctx, env.dispatcher, service.CreateBlockInput{
		VehicleID: vehicle.ID.String(),
		StartTime: "2024-01-01T00:00:00Z",
		EndTime:   "2024-01-02T00:00:00Z",
	}); !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("missing reason: got %v, want invalid input", err)
	}

	if _, err := env.blocks.Create(ctx, env.dispatcher, service.CreateBlockInput{
		VehicleID: "ab0e9b00-9f3d-4c2a-9d18-efc99caa4f52",
		StartTime: "2024-01-01T00:00:00Z",
		EndTime:   "2024-01-02T00:00:00Z",
		Reason:    "wash",
	}); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("unknown vehicle: got %v, want not found", err)
	}

	viewer := model.Principal{UserID: "u-view", Role: model.RoleViewer}
	if _, err := env.blocks.Create(ctx, viewer, service.CreateBlockInput{}); !errors.Is(err, service.ErrPermissionDenied) {
		t.Errorf("viewer create: got %v, want permission denied", err)
	}
}
