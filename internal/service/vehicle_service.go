package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fleet-service/internal/model"
	"fleet-service/internal/utils"
)

type VehicleService struct {
	store FleetStore
}

func NewVehicleService(store FleetStore) *VehicleService {
	return &VehicleService{store: store}
}

type RegisterVehicleInput struct {
	PlateNumber string
	Model       string
	Year        int
	OdometerKm  int
}

func (s *VehicleService) Register(ctx context.Context, principal model.Principal, input RegisterVehicleInput) (*model.Vehicle, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	plate := utils.NormalizePlate(input.PlateNumber)
	if plate == "" || input.Model == "" {
		return nil, ErrInvalidInput
	}
	if input.Year < 1950 || input.Year > time.Now().Year()+1 {
		return nil, ErrInvalidInput
	}
	if input.OdometerKm < 0 {
		return nil, ErrInvalidInput
	}

	existing, err := s.store.VehicleByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}

	vehicle := &model.Vehicle{
		PlateNumber: plate,
		Model:       input.Model,
		Year:        input.Year,
		OdometerKm:  input.OdometerKm,
		Status:      model.VehicleStatusAvailable,
	}
	if err := s.store.InsertVehicle(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) Get(ctx context.Context, principal model.Principal, id string) (*model.Vehicle, error) {
	vehicleID, err := uuid.Parse(id)
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
	return vehicle, nil
}

func (s *VehicleService) List(ctx context.Context, principal model.Principal) ([]model.Vehicle, error) {
	return s.store.Vehicles(ctx)
}

// UpdateOdometer records a new odometer reading. Readings only move forward;
// a lower value than the stored one is rejected.
func (s *VehicleService) UpdateOdometer(ctx context.Context, principal model.Principal, id string, odometerKm int) (*model.Vehicle, error) {
	if !principal.CanSchedule() {
		return nil, ErrPermissionDenied
	}

	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidInput
	}

	keys := []ResourceKey{{Kind: ResourceKindVehicle, ID: vehicleID}}

	var result *model.Vehicle
	err = s.store.WithLock(ctx, keys, func(tx FleetTx) error {
		vehicle, err := tx.Vehicle(ctx, vehicleID)
		if err != nil {
			return err
		}
		if vehicle == nil {
			return ErrNotFound
		}
		if odometerKm < vehicle.OdometerKm {
			return ErrInvalidInput
		}
		vehicle.OdometerKm = odometerKm
		if err := tx.SaveVehicle(ctx, vehicle); err != nil {
			return err
		}
		result = vehicle
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
