package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditEvent records who did what to which record. Events are buffered in
// memory and bulk-inserted on a timer, so CreatedAt is set when the event
// happens, not when the row lands.
type AuditEvent struct {
	ID         string `gorm:"type:text;primaryKey" json:"id"`
	ActorID    string `gorm:"index" json:"actor_id"`
	Action     string `gorm:"type:varchar(64)" json:"action"` // cat.created, user.deleted, ...
	Resource   string `gorm:"type:varchar(32);index" json:"resource"`
	ResourceID string `gorm:"index" json:"resource_id"`
	CreatedAt  string `json:"created_at"`
}

func (e *AuditEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt == "" {
		e.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return
}
