package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// History — запись журнала аудита. Только создаётся, никогда
// не обновляется и не удаляется.
type History struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	BusinessID  string    `gorm:"size:36;index;not null" json:"businessId"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	PerformedBy string    `gorm:"size:255" json:"performedBy"`
	Timestamp   time.Time `gorm:"index" json:"timestamp"`
}

func (h *History) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.Timestamp.IsZero() {
		h.Timestamp = time.Now().UTC()
	}
	return nil
}
