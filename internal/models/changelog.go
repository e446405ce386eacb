package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChangeOperation string

const (
	OpCreate ChangeOperation = "create"
	OpUpdate ChangeOperation = "update"
	OpDelete ChangeOperation = "delete"
)

// UnknownActor is recorded when a mutation reaches the audit trail
// without a resolvable user identity.
const UnknownActor = "unknown"

// ChangeLog is one immutable audit entry. Rows are only ever inserted;
// the application never updates or deletes them.
//
// Exactly one snapshot shape is populated per operation: CreatedData for
// create, Before/After for update, DeletedData for delete.
type ChangeLog struct {
	ID        string          `gorm:"type:uuid;primaryKey" json:"id"`
	Entity    string          `gorm:"size:50;not null;index" json:"entity"`
	EntityID  uint            `gorm:"not null;index" json:"entityId"`
	Operation ChangeOperation `gorm:"type:varchar(20);not null" json:"operation"`
	ActorID   string          `gorm:"size:64;not null" json:"actorId"`
	CreatedAt time.Time       `json:"createdAt"`

	CreatedData json.RawMessage `gorm:"type:jsonb" json:"createdData,omitempty"`
	Before      json.RawMessage `gorm:"type:jsonb" json:"before,omitempty"`
	After       json.RawMessage `gorm:"type:jsonb" json:"after,omitempty"`
	DeletedData json.RawMessage `gorm:"type:jsonb" json:"deletedData,omitempty"`
}

func (l *ChangeLog) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
