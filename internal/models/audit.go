package models

import "time"

// AuditLog rows survive merchant deletion; the actor and merchant references
// are nullable so they can be de-referenced instead of deleted.
type AuditLog struct {
	ID         uint   `gorm:"primarykey"`
	ActorID    *uint  `gorm:"index"`
	MerchantID *uint  `gorm:"index"`
	Action     string `gorm:"index;not null"`
	EntityType string
	EntityID   uint
	Details    JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time
}
