package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentStatus string

const (
	AssignmentStatusActive    AssignmentStatus = "ACTIVE"
	AssignmentStatusCompleted AssignmentStatus = "COMPLETED"
	AssignmentStatusCancelled AssignmentStatus = "CANCELLED"
)

// Assignment gives a driver exclusive custody of a vehicle for a bounded
// window. Created ACTIVE; the only transitions are ACTIVE -> COMPLETED and
// ACTIVE -> CANCELLED, both terminal. Rows are never deleted.
type Assignment struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VehicleID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	DriverID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"driver_id"`
	StartTime    time.Time        `gorm:"not null" json:"start_time"`
	EndTime      time.Time        `gorm:"not null" json:"end_time"`
	Reason       string           `gorm:"type:text" json:"reason"`
	Status       AssignmentStatus `gorm:"type:assignment_status;not null;default:ACTIVE" json:"status"`
	CancelReason *string          `gorm:"type:text" json:"cancel_reason,omitempty"`
	CreatedBy    string           `gorm:"type:varchar(128);not null" json:"created_by"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Assignment) TableName() string {
	return "assignments"
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *Assignment) Window() Window {
	return Window{Start: a.StartTime, End: a.EndTime}
}

func (a *Assignment) IsActive() bool {
	return a.Status == AssignmentStatusActive
}
