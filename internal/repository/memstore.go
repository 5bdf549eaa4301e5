package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"fleet-service/internal/model"
	"fleet-service/internal/service"
)

// MemStore is an in-memory FleetStore for tests and local development. One
// mutex serializes every lock scope, which trivially satisfies the "conflict
// check and insert see one snapshot" requirement; a failed callback restores
// the pre-scope snapshot so partial writes never become visible.
type MemStore struct {
	mu   sync.Mutex
	data memData
}

type memData struct {
	vehicles       map[uuid.UUID]model.Vehicle
	drivers        map[uuid.UUID]model.Driver
	assignments    map[uuid.UUID]model.Assignment
	blocks         map[uuid.UUID]model.VehicleBlock
	documents      map[uuid.UUID]model.Document
	serviceRecords map[uuid.UUID]model.ServiceRecord
}

func NewMemStore() *MemStore {
	return &MemStore{data: newMemData()}
}

func newMemData() memData {
	return memData{
		vehicles:       make(map[uuid.UUID]model.Vehicle),
		drivers:        make(map[uuid.UUID]model.Driver),
		assignments:    make(map[uuid.UUID]model.Assignment),
		blocks:         make(map[uuid.UUID]model.VehicleBlock),
		documents:      make(map[uuid.UUID]model.Document),
		serviceRecords: make(map[uuid.UUID]model.ServiceRecord),
	}
}

func (d memData) clone() memData {
	out := newMemData()
	for k, v := range d.vehicles {
		out.vehicles[k] = v
	}
	for k, v := range d.drivers {
		out.drivers[k] = v
	}
	for k, v := range d.assignments {
		out.assignments[k] = v
	}
	for k, v := range d.blocks {
		out.blocks[k] = v
	}
	for k, v := range d.documents {
		out.documents[k] = v
	}
	for k, v := range d.serviceRecords {
		out.serviceRecords[k] = v
	}
	return out
}

func (s *MemStore) WithLock(ctx context.Context, keys []service.ResourceKey, fn func(tx service.FleetTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(&memTx{data: &s.data}); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// Plain reads and writes outside a lock scope take the mutex per call.

func (s *MemStore) Vehicle(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).Vehicle(ctx, id)
}

func (s *MemStore) VehicleByPlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).VehicleByPlate(ctx, plate)
}

func (s *MemStore) Vehicles(ctx context.Context) ([]model.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).Vehicles(ctx)
}

func (s *MemStore) InsertVehicle(ctx context.Context, v *model.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).InsertVehicle(ctx, v)
}

func (s *MemStore) SaveVehicle(ctx context.Context, v *model.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).SaveVehicle(ctx, v)
}

func (s *MemStore) SetVehicleStatus(ctx context.Context, id uuid.UUID, status model.VehicleStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).SetVehicleStatus(ctx, id, status)
}

func (s *MemStore) Driver(ctx context.Context, id uuid.UUID) (*model.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).Driver(ctx, id)
}

func (s *MemStore) Drivers(ctx context.Context) ([]model.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).Drivers(ctx)
}

func (s *MemStore) InsertDriver(ctx context.Context, d *model.Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).InsertDriver(ctx, d)
}

func (s *MemStore) Assignment(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).Assignment(ctx, id)
}

func (s *MemStore) Assignments(ctx context.Context, filter service.AssignmentFilter) ([]model.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).Assignments(ctx, filter)
}

func (s *MemStore) ActiveAssignments(ctx context.Context, kind service.ResourceKind, id uuid.UUID) ([]model.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).ActiveAssignments(ctx, kind, id)
}

func (s *MemStore) InsertAssignment(ctx context.Context, a *model.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).InsertAssignment(ctx, a)
}

func (s *MemStore) SaveAssignment(ctx context.Context, a *model.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).SaveAssignment(ctx, a)
}

func (s *MemStore) Block(ctx context.Context, id uuid.UUID) (*model.VehicleBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).Block(ctx, id)
}

func (s *MemStore) ActiveBlocks(ctx context.Context, vehicleID uuid.UUID) ([]model.VehicleBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).ActiveBlocks(ctx, vehicleID)
}

func (s *MemStore) BlocksByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]model.VehicleBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).BlocksByVehicle(ctx, vehicleID)
}

func (s *MemStore) InsertBlock(ctx context.Context, b *model.VehicleBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).InsertBlock(ctx, b)
}

func (s *MemStore) SaveBlock(ctx context.Context, b *model.VehicleBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).SaveBlock(ctx, b)
}

func (s *MemStore) DocumentsByOwner(ctx context.Context, ownerType model.OwnerType, ownerID uuid.UUID) ([]model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).DocumentsByOwner(ctx, ownerType, ownerID)
}

func (s *MemStore) InsertDocument(ctx context.Context, d *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).InsertDocument(ctx, d)
}

func (s *MemStore) ServiceRecordsByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]model.ServiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).ServiceRecordsByVehicle(ctx, vehicleID)
}

func (s *MemStore) InsertServiceRecord(ctx context.Context, r *model.ServiceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{data: &s.data}).InsertServiceRecord(ctx, r)
}

// memTx assumes the store mutex is held by its creator.
type memTx struct {
	data *memData
}

func (t *memTx) Vehicle(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	if v, ok := t.data.vehicles[id]; ok {
		out := v
		return &out, nil
	}
	return nil, nil
}

func (t *memTx) VehicleByPlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	for _, v := range t.data.vehicles {
		if v.PlateNumber == plate {
			out := v
			return &out, nil
		}
	}
	return nil, nil
}

func (t *memTx) Vehicles(ctx context.Context) ([]model.Vehicle, error) {
	out := make([]model.Vehicle, 0, len(t.data.vehicles))
	for _, v := range t.data.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlateNumber < out[j].PlateNumber })
	return out, nil
}

func (t *memTx) InsertVehicle(ctx context.Context, v *model.Vehicle) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	t.data.vehicles[v.ID] = *v
	return nil
}

func (t *memTx) SaveVehicle(ctx context.Context, v *model.Vehicle) error {
	t.data.vehicles[v.ID] = *v
	return nil
}

func (t *memTx) SetVehicleStatus(ctx context.Context, id uuid.UUID, status model.VehicleStatus) error {
	v, ok := t.data.vehicles[id]
	if !ok {
		return nil
	}
	v.Status = status
	t.data.vehicles[id] = v
	return nil
}

func (t *memTx) Driver(ctx context.Context, id uuid.UUID) (*model.Driver, error) {
	if d, ok := t.data.drivers[id]; ok {
		out := d
		return &out, nil
	}
	return nil, nil
}

func (t *memTx) Drivers(ctx context.Context) ([]model.Driver, error) {
	out := make([]model.Driver, 0, len(t.data.drivers))
	for _, d := range t.data.drivers {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (t *memTx) InsertDriver(ctx context.Context, d *model.Driver) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	t.data.drivers[d.ID] = *d
	return nil
}

func (t *memTx) Assignment(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	if a, ok := t.data.assignments[id]; ok {
		out := a
		return &out, nil
	}
	return nil, nil
}

func (t *memTx) Assignments(ctx context.Context, filter service.AssignmentFilter) ([]model.Assignment, error) {
	out := make([]model.Assignment, 0, len(t.data.assignments))
	for _, a := range t.data.assignments {
		if filter.VehicleID != nil && a.VehicleID != *filter.VehicleID {
			continue
		}
		if filter.DriverID != nil && a.DriverID != *filter.DriverID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (t *memTx) ActiveAssignments(ctx context.Context, kind service.ResourceKind, id uuid.UUID) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, a := range t.data.assignments {
		if a.Status != model.AssignmentStatusActive {
			continue
		}
		if kind == service.ResourceKindDriver {
			if a.DriverID != id {
				continue
			}
		} else if a.VehicleID != id {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (t *memTx) InsertAssignment(ctx context.Context, a *model.Assignment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	t.data.assignments[a.ID] = *a
	return nil
}

func (t *memTx) SaveAssignment(ctx context.Context, a *model.Assignment) error {
	t.data.assignments[a.ID] = *a
	return nil
}

func (t *memTx) Block(ctx context.Context, id uuid.UUID) (*model.VehicleBlock, error) {
	if b, ok := t.data.blocks[id]; ok {
		out := b
		return &out, nil
	}
	return nil, nil
}

func (t *memTx) ActiveBlocks(ctx context.Context, vehicleID uuid.UUID) ([]model.VehicleBlock, error) {
	var out []model.VehicleBlock
	for _, b := range t.data.blocks {
		if b.VehicleID == vehicleID && b.Status == model.BlockStatusActive {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (t *memTx) BlocksByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]model.VehicleBlock, error) {
	var out []model.VehicleBlock
	for _, b := range t.data.blocks {
		if b.VehicleID == vehicleID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (t *memTx) InsertBlock(ctx context.Context, b *model.VehicleBlock) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	t.data.blocks[b.ID] = *b
	return nil
}

func (t *memTx) SaveBlock(ctx context.Context, b *model.VehicleBlock) error {
	t.data.blocks[b.ID] = *b
	return nil
}

func (t *memTx) DocumentsByOwner(ctx context.Context, ownerType model.OwnerType, ownerID uuid.UUID) ([]model.Document, error) {
	var out []model.Document
	for _, d := range t.data.documents {
		if d.OwnerType == ownerType && d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiryDate.Before(out[j].ExpiryDate) })
	return out, nil
}

func (t *memTx) InsertDocument(ctx context.Context, d *model.Document) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	t.data.documents[d.ID] = *d
	return nil
}

func (t *memTx) ServiceRecordsByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]model.ServiceRecord, error) {
	var out []model.ServiceRecord
	for _, r := range t.data.serviceRecords {
		if r.VehicleID == vehicleID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceDate.After(out[j].ServiceDate) })
	return out, nil
}

func (t *memTx) InsertServiceRecord(ctx context.Context, r *model.ServiceRecord) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	t.data.serviceRecords[r.ID] = *r
	return nil
}
