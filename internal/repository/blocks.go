package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

func (s *Store) Block(ctx context.Context, id uuid.UUID) (*model.VehicleBlock, error) {
	var block model.VehicleBlock
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&block).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &block, nil
}

func (s *Store) ActiveBlocks(ctx context.Context, vehicleID uuid.UUID) ([]model.VehicleBlock, error) {
	var blocks []model.VehicleBlock
	err := s.db.WithContext(ctx).
		Where("vehicle_id = ? AND status = ?", vehicleID, model.BlockStatusActive).
		Order("start_time ASC").
		Find(&blocks).Error
	return blocks, err
}

func (s *Store) BlocksByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]model.VehicleBlock, error) {
	var blocks []model.VehicleBlock
	err := s.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("start_time DESC").
		Find(&blocks).Error
	return blocks, err
}

func (s *Store) InsertBlock(ctx context.Context, b *model.VehicleBlock) error {
	return s.db.WithContext(ctx).Create(b).Error
}

func (s *Store) SaveBlock(ctx context.Context, b *model.VehicleBlock) error {
	return s.db.WithContext(ctx).Save(b).Error
}
