package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BusinessStatus string

const (
	StatusActive   BusinessStatus = "Active"
	StatusInactive BusinessStatus = "Inactive"
)

// ParseBusinessStatus разбирает строку фильтра без учёта регистра.
// Неизвестное значение — ошибка, а не "без фильтра" (см. DESIGN.md).
func ParseBusinessStatus(s string) (BusinessStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive, nil
	case "inactive":
		return StatusInactive, nil
	default:
		return "", fmt.Errorf("unknown business status %q", s)
	}
}

type Business struct {
	ID  string `gorm:"primaryKey;size:36" json:"id"`
	Sno int    `json:"sno"`

	// CID-<n>, выдаётся один раз при создании
	ClientID string `gorm:"size:50;index" json:"clientId"`

	BusinessName  string `gorm:"size:255;not null" json:"businessName"`
	Type          string `gorm:"size:100" json:"type"`
	ContactPerson string `gorm:"size:255" json:"contactPerson"`
	Team          string `gorm:"size:100" json:"team"`
	Manager       string `gorm:"size:255" json:"manager"`
	FirstResponse string `gorm:"size:255" json:"firstResponse"`
	Email         string `gorm:"size:255" json:"email"`
	PhoneNumber   string `gorm:"size:50" json:"phoneNumber"`

	Status BusinessStatus `gorm:"type:varchar(20);not null;default:Active" json:"status"`

	CreatedBy       string `gorm:"size:255;index" json:"createdBy"`
	Designation     string `gorm:"size:255" json:"designation,omitempty"`
	LinkedContactID string `gorm:"size:36" json:"linkedContactId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = StatusActive
	}
	return nil
}
