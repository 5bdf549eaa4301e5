package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fleet-service/internal/model"
)

type ServiceRecordService struct {
	store     FleetStore
	dueSoonKm int
}

func NewServiceRecordService(store FleetStore, dueSoonKm int) *ServiceRecordService {
	return &ServiceRecordService{store: store, dueSoonKm: dueSoonKm}
}

type CreateServiceRecordInput struct {
	VehicleID     string
	LastServiceKm int
	CurrentKm     int
	NextServiceKm int
	ServiceDate   string
	Description   string
}

type ServiceRecordView struct {
	model.ServiceRecord
	DerivedStatus model.ServiceStatus `json:"derived_status"`
}

func (s *ServiceRecordService) Create(ctx context.Context, principal model.Principal, input CreateServiceRecordInput) (*model.ServiceRecord, error) {
	if !principal.CanSchedule() {
		return nil, ErrPermissionDenied
	}

	vehicleID, err := uuid.Parse(input.VehicleID)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if input.LastServiceKm < 0 || input.CurrentKm < input.LastServiceKm {
		return nil, ErrInvalidInput
	}
	if input.NextServiceKm <= input.LastServiceKm {
		return nil, ErrInvalidInput
	}
	serviceDate, err := time.Parse(time.RFC3339, input.ServiceDate)
	if err != nil {
		return nil, ErrInvalidInput
	}

	vehicle, err := s.store.Vehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrNotFound
	}

	record := &model.ServiceRecord{
		VehicleID:     vehicleID,
		LastServiceKm: input.LastServiceKm,
		CurrentKm:     input.CurrentKm,
		NextServiceKm: input.NextServiceKm,
		ServiceDate:   serviceDate.UTC(),
		Description:   input.Description,
	}
	if err := s.store.InsertServiceRecord(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListByVehicle derives each record's status against the higher of the
// record's stored reading and the vehicle's current odometer, so a moving
// odometer ages the record without any write to it.
func (s *ServiceRecordService) ListByVehicle(ctx context.Context, principal model.Principal, vehicleID string) ([]ServiceRecordView, error) {
	id, err := uuid.Parse(vehicleID)
	if err != nil {
		return nil, ErrInvalidInput
	}

	vehicle, err := s.store.Vehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrNotFound
	}

	records, err := s.store.ServiceRecordsByVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	views := make([]ServiceRecordView, 0, len(records))
	for _, r := range records {
		currentKm := r.CurrentKm
		if vehicle.OdometerKm > currentKm {
			currentKm = vehicle.OdometerKm
		}
		views = append(views, ServiceRecordView{
			ServiceRecord: r,
			DerivedStatus: r.StatusFor(currentKm, s.dueSoonKm),
		})
	}
	return views, nil
}
