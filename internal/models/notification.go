package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is a lossy informational feed item, not part of the audit
// trail. Timestamp is a display string formatted at write time.
type Notification struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Timestamp string    `gorm:"size:64;not null" json:"timestamp"`
	CreatedAt time.Time `json:"-"`
}

func (n *Notification) BeforeCreate(*gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
