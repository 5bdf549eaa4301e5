package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceStatus string

const (
	ServiceStatusOK      ServiceStatus = "OK"
	ServiceStatusDueSoon ServiceStatus = "DUE_SOON"
	ServiceStatusOverdue ServiceStatus = "OVERDUE"
)

// ServiceRecord logs a completed service and the mileage at which the next
// one is due. Like documents, its status is derived on read, never stored.
type ServiceRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VehicleID     uuid.UUID `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	LastServiceKm int       `gorm:"not null" json:"last_service_km"`
	CurrentKm     int       `gorm:"not null" json:"current_km"`
	NextServiceKm int       `gorm:"not null" json:"next_service_km"`
	ServiceDate   time.Time `gorm:"not null" json:"service_date"`
	Description   string    `gorm:"type:text" json:"description"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ServiceRecord) TableName() string {
	return "service_records"
}

func (r *ServiceRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ServiceStatusFor derives a service record's status from the kilometres
// remaining until the next service is due.
func ServiceStatusFor(currentKm, nextServiceKm, dueSoonKm int) ServiceStatus {
	remaining := nextServiceKm - currentKm
	if remaining <= 0 {
		return ServiceStatusOverdue
	}
	if remaining <= dueSoonKm {
		return ServiceStatusDueSoon
	}
	return ServiceStatusOK
}

func (r *ServiceRecord) StatusFor(currentKm, dueSoonKm int) ServiceStatus {
	return ServiceStatusFor(currentKm, r.NextServiceKm, dueSoonKm)
}
