package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLogEntry rows are write-once: nothing in the API mutates or deletes
// them after Record.
type AuditLogEntry struct {
	gorm.Model
	ActorID     uint           `json:"actorId" gorm:"index"`
	Action      string         `json:"action" gorm:"size:64;index"`
	EntityType  string         `json:"entityType" gorm:"size:32;index"`
	EntityID    uint           `json:"entityId" gorm:"index"`
	OldValue    datatypes.JSON `json:"oldValue"`
	NewValue    datatypes.JSON `json:"newValue"`
	Description string         `json:"description"`
}
