package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "AVAILABLE"
	VehicleStatusAssigned  VehicleStatus = "ASSIGNED"
	VehicleStatusBlocked   VehicleStatus = "BLOCKED"
)

// Vehicle.Status is a derived cache owned by the scheduling services; nothing
// else writes it. It always equals: BLOCKED if an active block covers now,
// else ASSIGNED if an active assignment exists, else AVAILABLE.
type Vehicle struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	PlateNumber string        `gorm:"type:varchar(32);uniqueIndex;not null" json:"plate_number"`
	Model       string        `gorm:"type:varchar(128);not null" json:"model"`
	Year        int           `gorm:"not null" json:"year"`
	OdometerKm  int           `gorm:"not null;default:0" json:"odometer_km"`
	Status      VehicleStatus `gorm:"type:vehicle_status;not null;default:AVAILABLE" json:"status"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
