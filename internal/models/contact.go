package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Contact struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name        string `gorm:"size:255;not null" json:"name"`
	Type        string `gorm:"size:100" json:"type"`
	Phone       string `gorm:"size:50" json:"phone"`
	Email       string `gorm:"size:255" json:"email"`
	Designation string `gorm:"size:255" json:"designation,omitempty"`
	Story       string `gorm:"type:text" json:"story,omitempty"`

	// ClientID копируется из первого привязанного бизнеса
	ClientID string `gorm:"size:50" json:"clientId,omitempty"`

	Businesses []BusinessRef `gorm:"foreignKey:ContactID" json:"businesses"`

	CreatedAt time.Time `json:"createdAt"`
}

// BusinessRef — пара {id, name} привязанного бизнеса.
// Уникальность по (contact_id, business_id), дубликаты недопустимы.
type BusinessRef struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	ContactID  string `gorm:"size:36;index;uniqueIndex:idx_contact_business" json:"-"`
	BusinessID string `gorm:"size:36;uniqueIndex:idx_contact_business" json:"id"`
	Name       string `gorm:"size:255" json:"name"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
