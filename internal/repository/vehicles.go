package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

func (s *Store) Vehicle(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vehicle, nil
}

func (s *Store) VehicleByPlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	if plate == "" {
		return nil, nil
	}
	var vehicle model.Vehicle
	err := s.db.WithContext(ctx).Where("plate_number = ?", plate).First(&vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vehicle, nil
}

func (s *Store) Vehicles(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := s.db.WithContext(ctx).Order("plate_number ASC").Find(&vehicles).Error
	return vehicles, err
}

func (s *Store) InsertVehicle(ctx context.Context, v *model.Vehicle) error {
	return s.db.WithContext(ctx).Create(v).Error
}

func (s *Store) SaveVehicle(ctx context.Context, v *model.Vehicle) error {
	return s.db.WithContext(ctx).Save(v).Error
}

func (s *Store) SetVehicleStatus(ctx context.Context, id uuid.UUID, status model.VehicleStatus) error {
	return s.db.WithContext(ctx).Model(&model.Vehicle{}).
		Where("id = ?", id).
		Update("status", status).Error
}
