package models

import (
	"time"

	"gorm.io/gorm"
)

type ApiKey struct {
	gorm.Model
	MerchantID uint   `gorm:"index;not null"`
	Name       string `gorm:"not null"`
	Key        string `gorm:"uniqueIndex;not null"`
	IsActive   bool   `gorm:"default:true"`
	LastUsedAt *time.Time
}

type ApiKeyLog struct {
	ID         uint `gorm:"primarykey"`
	ApiKeyID   uint `gorm:"index;not null"`
	Method     string
	Path       string
	StatusCode int
	CreatedAt  time.Time
}
