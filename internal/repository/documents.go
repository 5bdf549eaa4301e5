package repository

import (
	"context"

	"github.com/google/uuid"

	"fleet-service/internal/model"
)

func (s *Store) DocumentsByOwner(ctx context.Context, ownerType model.OwnerType, ownerID uuid.UUID) ([]model.Document, error) {
	var documents []model.Document
	err := s.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("expiry_date ASC").
		Find(&documents).Error
	return documents, err
}

func (s *Store) InsertDocument(ctx context.Context, d *model.Document) error {
	return s.db.WithContext(ctx).Create(d).Error
}

func (s *Store) ServiceRecordsByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]model.ServiceRecord, error) {
	var records []model.ServiceRecord
	err := s.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("service_date DESC").
		Find(&records).Error
	return records, err
}

func (s *Store) InsertServiceRecord(ctx context.Context, r *model.ServiceRecord) error {
	return s.db.WithContext(ctx).Create(r).Error
}
