package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email            string `gorm:"uniqueIndex;not null"`
	Password         string `gorm:"not null"`
	Name             string `gorm:"not null"`
	Phone            string
	Role             string    `gorm:"default:'MERCHANT_STAFF';index"`
	MerchantID       *uint     `gorm:"index"`
	Merchant         *Merchant `gorm:"foreignKey:MerchantID"`
	Status           string    `gorm:"default:'active'"`
	TwoFactorEnabled bool      `gorm:"default:false"`
	TwoFactorSecret  string
	BackupCodes      pq.StringArray `gorm:"type:text[]"`
	TokenVersion     int            `gorm:"default:1"`
	LastLoginAt      time.Time
	LastLoginIP      string
}

// Session tracks an issued refresh session for a user.
type Session struct {
	gorm.Model
	UserID    uint `gorm:"index;not null"`
	Token     string
	UserAgent string
	ExpiresAt time.Time
}

type PasswordResetToken struct {
	gorm.Model
	UserID    uint `gorm:"index;not null"`
	Token     string
	ExpiresAt time.Time
	UsedAt    *time.Time
}
