package models

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeOrderUpdate NotificationType = "ORDER_UPDATE"
	NotificationTypeStockAlert  NotificationType = "STOCK_ALERT"
	NotificationTypeBilling     NotificationType = "BILLING"
	NotificationTypeSystem      NotificationType = "SYSTEM"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "LOW"
	PriorityMedium NotificationPriority = "MEDIUM"
	PriorityHigh   NotificationPriority = "HIGH"
	PriorityUrgent NotificationPriority = "URGENT"
)

// Notification targets exactly one of: a specific recipient, a role within a
// merchant, or everyone (global). Only the column matching the targeting mode
// is ever set.
type Notification struct {
	gorm.Model
	Title         string               `gorm:"not null"`
	Message       string               `gorm:"not null"`
	Type          NotificationType     `gorm:"type:varchar(32);index"`
	Priority      NotificationPriority `gorm:"type:varchar(16);default:'MEDIUM'"`
	RecipientID   *uint                `gorm:"index"`
	RecipientRole string               `gorm:"index"`
	IsGlobal      bool                 `gorm:"default:false"`
	IsRead        bool                 `gorm:"default:false;index"`
	ReadAt        *time.Time
	Metadata      JSON `gorm:"type:jsonb"`
}
