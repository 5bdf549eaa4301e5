package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OwnerType string

const (
	OwnerTypeVehicle OwnerType = "VEHICLE"
	OwnerTypeDriver  OwnerType = "DRIVER"
)

type DocumentStatus string

const (
	DocumentStatusValid        DocumentStatus = "VALID"
	DocumentStatusExpiringSoon DocumentStatus = "EXPIRING_SOON"
	DocumentStatusExpired      DocumentStatus = "EXPIRED"
)

// Document is a compliance paper (insurance, registration, license) owned by
// a vehicle or a driver. Its status is never stored; it is recomputed on
// every read against the server clock.
type Document struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OwnerType  OwnerType `gorm:"type:owner_type;not null;index:idx_documents_owner" json:"owner_type"`
	OwnerID    uuid.UUID `gorm:"type:uuid;not null;index:idx_documents_owner" json:"owner_id"`
	Type       string    `gorm:"type:varchar(64);not null" json:"type"`
	IssueDate  time.Time `gorm:"not null" json:"issue_date"`
	ExpiryDate time.Time `gorm:"not null" json:"expiry_date"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Document) TableName() string {
	return "documents"
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// DocumentStatusAt derives a document's status from its expiry date and the
// reference instant. Expired once now is past expiry; expiring soon when the
// remaining validity is within warnDays.
func DocumentStatusAt(expiry, now time.Time, warnDays int) DocumentStatus {
	if now.After(expiry) {
		return DocumentStatusExpired
	}
	if !expiry.After(now.AddDate(0, 0, warnDays)) {
		return DocumentStatusExpiringSoon
	}
	return DocumentStatusValid
}

func (d *Document) StatusAt(now time.Time, warnDays int) DocumentStatus {
	return DocumentStatusAt(d.ExpiryDate, now, warnDays)
}
