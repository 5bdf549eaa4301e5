package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"fleet-service/internal/model"
)

func window(t *testing.T, start, end string) model.Window {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		t.Fatalf("parse %q: %v", start, err)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		t.Fatalf("parse %q: %v", end, err)
	}
	return model.Window{Start: s, End: e}
}

func TestFindAssignmentConflict(t *testing.T) {
	active := model.Assignment{
		ID:        uuid.New(),
		StartTime: window(t, "2024-01-01T00:00:00Z", "2024-01-05T00:00:00Z").Start,
		EndTime:   window(t, "2024-01-01T00:00:00Z", "2024-01-05T00:00:00Z").End,
		Status:    model.AssignmentStatusActive,
	}
	completed := model.Assignment{
		ID:        uuid.New(),
		StartTime: active.StartTime,
		EndTime:   active.EndTime,
		Status:    model.AssignmentStatusCompleted,
	}
	cancelled := model.Assignment{
		ID:        uuid.New(),
		StartTime: active.StartTime,
		EndTime:   active.EndTime,
		Status:    model.AssignmentStatusCancelled,
	}

	existing := []model.Assignment{completed, cancelled, active}

	overlapping := window(t, "2024-01-03T00:00:00Z", "2024-01-06T00:00:00Z")
	hit := findAssignmentConflict(existing, overlapping, uuid.Nil)
	if hit == nil {
		t.Fatalf("expected conflict with active assignment")
	}
	if hit.ID != active.ID {
		t.Errorf("conflict id = %s, want %s", hit.ID, active.ID)
	}

	// Terminal records never conflict, even with identical windows.
	if hit := findAssignmentConflict([]model.Assignment{completed, cancelled}, overlapping, uuid.Nil); hit != nil {
		t.Errorf("terminal assignments should not conflict, got %s", hit.ID)
	}

	// Adjacency is not conflict.
	adjacent := window(t, "2024-01-05T00:00:00Z", "2024-01-07T00:00:00Z")
	if hit := findAssignmentConflict(existing, adjacent, uuid.Nil); hit != nil {
		t.Errorf("adjacent window should not conflict, got %s", hit.ID)
	}

	// A record being edited ignores itself.
	if hit := findAssignmentConflict(existing, overlapping, active.ID); hit != nil {
		t.Errorf("excluded record should not conflict with itself, got %s", hit.ID)
	}
}

func TestFindBlockConflict(t *testing.T) {
	active := model.VehicleBlock{
		ID:        uuid.New(),
		StartTime: window(t, "2024-02-01T00:00:00Z", "2024-02-03T00:00:00Z").Start,
		EndTime:   window(t, "2024-02-01T00:00:00Z", "2024-02-03T00:00:00Z").End,
		Status:    model.BlockStatusActive,
	}
	completed := model.VehicleBlock{
		ID:        uuid.New(),
		StartTime: active.StartTime,
		EndTime:   active.EndTime,
		Status:    model.BlockStatusCompleted,
	}

	existing := []model.VehicleBlock{completed, active}

	if hit := findBlockConflict(existing, window(t, "2024-02-02T00:00:00Z", "2024-02-04T00:00:00Z"), uuid.Nil); hit == nil {
		t.Fatalf("expected block conflict")
	}
	if hit := findBlockConflict(existing, window(t, "2024-02-03T00:00:00Z", "2024-02-05T00:00:00Z"), uuid.Nil); hit != nil {
		t.Errorf("adjacent block window should not conflict")
	}
	if hit := findBlockConflict(existing, window(t, "2024-02-02T00:00:00Z", "2024-02-04T00:00:00Z"), active.ID); hit != nil {
		t.Errorf("excluded block should not conflict with itself")
	}
}

func TestSortKeysOrder(t *testing.T) {
	a := uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000000")
	b := uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000000")

	keys := []ResourceKey{
		{Kind: ResourceKindVehicle, ID: b},
		{Kind: ResourceKindDriver, ID: a},
		{Kind: ResourceKindVehicle, ID: a},
	}

	sorted := SortKeys(keys)
	if sorted[0].Kind != ResourceKindDriver {
		t.Fatalf("driver keys must sort before vehicle keys, got %v first", sorted[0].Kind)
	}
	if sorted[1].ID != a || sorted[2].ID != b {
		t.Errorf("vehicle keys not ordered by id: %v, %v", sorted[1].ID, sorted[2].ID)
	}

	// Input order must not matter.
	reversed := SortKeys([]ResourceKey{keys[2], keys[1], keys[0]})
	for i := range sorted {
		if sorted[i] != reversed[i] {
			t.Errorf("sort not canonical at %d: %v vs %v", i, sorted[i], reversed[i])
		}
	}
}

func TestDeriveVehicleStatus(t *testing.T) {
	now, _ := time.Parse(time.RFC3339, "2024-03-10T12:00:00Z")

	activeAssignment := model.Assignment{Status: model.AssignmentStatusActive}
	coveringBlock := model.VehicleBlock{
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(time.Hour),
		Status:    model.BlockStatusActive,
	}
	futureBlock := model.VehicleBlock{
		StartTime: now.Add(24 * time.Hour),
		EndTime:   now.Add(48 * time.Hour),
		Status:    model.BlockStatusActive,
	}

	if got := deriveVehicleStatus(now, nil, nil); got != model.VehicleStatusAvailable {
		t.Errorf("empty schedule: got %s, want AVAILABLE", got)
	}
	if got := deriveVehicleStatus(now, []model.Assignment{activeAssignment}, nil); got != model.VehicleStatusAssigned {
		t.Errorf("active assignment: got %s, want ASSIGNED", got)
	}
	if got := deriveVehicleStatus(now, []model.Assignment{activeAssignment}, []model.VehicleBlock{coveringBlock}); got != model.VehicleStatusBlocked {
		t.Errorf("covering block wins: got %s, want BLOCKED", got)
	}
	if got := deriveVehicleStatus(now, nil, []model.VehicleBlock{futureBlock}); got != model.VehicleStatusAvailable {
		t.Errorf("future block does not cover now: got %s, want AVAILABLE", got)
	}
}
