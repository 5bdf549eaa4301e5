package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlockStatus string

const (
	BlockStatusActive    BlockStatus = "ACTIVE"
	BlockStatusCompleted BlockStatus = "COMPLETED"
)

// VehicleBlock takes a vehicle out of service for a bounded window
// (maintenance, impound, inspection). Blocks share the vehicle's non-overlap
// domain with assignments: an active block and an active assignment may never
// overlap for the same vehicle.
type VehicleBlock struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VehicleID uuid.UUID   `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	StartTime time.Time   `gorm:"not null" json:"start_time"`
	EndTime   time.Time   `gorm:"not null" json:"end_time"`
	Reason    string      `gorm:"type:text;not null" json:"reason"`
	Status    BlockStatus `gorm:"type:block_status;not null;default:ACTIVE" json:"status"`
	CreatedBy string      `gorm:"type:varchar(128);not null" json:"created_by"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (VehicleBlock) TableName() string {
	return "vehicle_blocks"
}

func (b *VehicleBlock) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b *VehicleBlock) Window() Window {
	return Window{Start: b.StartTime, End: b.EndTime}
}

func (b *VehicleBlock) IsActive() bool {
	return b.Status == BlockStatusActive
}
