package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
	"fleet-service/internal/service"
)

func (s *Store) Assignment(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	var assignment model.Assignment
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (s *Store) Assignments(ctx context.Context, filter service.AssignmentFilter) ([]model.Assignment, error) {
	q := s.db.WithContext(ctx).Model(&model.Assignment{})
	if filter.VehicleID != nil {
		q = q.Where("vehicle_id = ?", *filter.VehicleID)
	}
	if filter.DriverID != nil {
		q = q.Where("driver_id = ?", *filter.DriverID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var assignments []model.Assignment
	err := q.Order("start_time DESC").Find(&assignments).Error
	return assignments, err
}

func (s *Store) ActiveAssignments(ctx context.Context, kind service.ResourceKind, id uuid.UUID) ([]model.Assignment, error) {
	column := "vehicle_id"
	if kind == service.ResourceKindDriver {
		column = "driver_id"
	}
	var assignments []model.Assignment
	err := s.db.WithContext(ctx).
		Where(column+" = ? AND status = ?", id, model.AssignmentStatusActive).
		Order("start_time ASC").
		Find(&assignments).Error
	return assignments, err
}

func (s *Store) InsertAssignment(ctx context.Context, a *model.Assignment) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *Store) SaveAssignment(ctx context.Context, a *model.Assignment) error {
	return s.db.WithContext(ctx).Save(a).Error
}
