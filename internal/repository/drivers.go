package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

func (s *Store) Driver(ctx context.Context, id uuid.UUID) (*model.Driver, error) {
	var driver model.Driver
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&driver).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

func (s *Store) Drivers(ctx context.Context) ([]model.Driver, error) {
	var drivers []model.Driver
	err := s.db.WithContext(ctx).Order("full_name ASC").Find(&drivers).Error
	return drivers, err
}

func (s *Store) InsertDriver(ctx context.Context, d *model.Driver) error {
	return s.db.WithContext(ctx).Create(d).Error
}
