package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"fleet-service/internal/model"
)

type ResourceKind string

const (
	ResourceKindVehicle ResourceKind = "VEHICLE"
	ResourceKindDriver  ResourceKind = "DRIVER"
)

// ResourceKey identifies one non-overlap domain (a vehicle's schedule or a
// driver's schedule) for lock acquisition.
type ResourceKey struct {
	Kind ResourceKind
	ID   uuid.UUID
}

// SortKeys orders resource keys by (kind, id). Every caller that locks more
// than one resource must acquire in this order, otherwise two concurrent
// schedulers could deadlock against each other.
func SortKeys(keys []ResourceKey) []ResourceKey {
	sorted := make([]ResourceKey, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Kind != sorted[j].Kind {
			return sorted[i].Kind < sorted[j].Kind
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})
	return sorted
}

// FleetTx is the storage view inside one transaction / lock scope. The
// conflict check and the writes that follow it always run against the same
// FleetTx, so they observe one consistent snapshot.
type FleetTx interface {
	Vehicle(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	VehicleByPlate(ctx context.Context, plate string) (*model.Vehicle, error)
	Vehicles(ctx context.Context) ([]model.Vehicle, error)
	InsertVehicle(ctx context.Context, v *model.Vehicle) error
	SaveVehicle(ctx context.Context, v *model.Vehicle) error
	SetVehicleStatus(ctx context.Context, id uuid.UUID, status model.VehicleStatus) error

	Driver(ctx context.Context, id uuid.UUID) (*model.Driver, error)
	Drivers(ctx context.Context) ([]model.Driver, error)
	InsertDriver(ctx context.Context, d *model.Driver) error

	Assignment(ctx context.Context, id uuid.UUID) (*model.Assignment, error)
	Assignments(ctx context.Context, filter AssignmentFilter) ([]model.Assignment, error)
	ActiveAssignments(ctx context.Context, kind ResourceKind, id uuid.UUID) ([]model.Assignment, error)
	InsertAssignment(ctx context.Context, a *model.Assignment) error
	SaveAssignment(ctx context.Context, a *model.Assignment) error

	Block(ctx context.Context, id uuid.UUID) (*model.VehicleBlock, error)
	ActiveBlocks(ctx context.Context, vehicleID uuid.UUID) ([]model.VehicleBlock, error)
	BlocksByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]model.VehicleBlock, error)
	InsertBlock(ctx context.Context, b *model.VehicleBlock) error
	SaveBlock(ctx context.Context, b *model.VehicleBlock) error

	DocumentsByOwner(ctx context.Context, ownerType model.OwnerType, ownerID uuid.UUID) ([]model.Document, error)
	InsertDocument(ctx context.Context, d *model.Document) error

	ServiceRecordsByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]model.ServiceRecord, error)
	InsertServiceRecord(ctx context.Context, r *model.ServiceRecord) error
}

// FleetStore is the durable storage consumed by the services. Reads outside a
// lock scope observe committed data. WithLock runs fn in a single atomic
// unit while holding per-resource locks for every key, acquired in the
// SortKeys order; either everything fn wrote commits, or nothing does.
type FleetStore interface {
	FleetTx
	WithLock(ctx context.Context, keys []ResourceKey, fn func(tx FleetTx) error) error
}

// AssignmentFilter narrows assignment listings. Nil fields match everything.
type AssignmentFilter struct {
	VehicleID *uuid.UUID
	DriverID  *uuid.UUID
	Status    *model.AssignmentStatus
}
