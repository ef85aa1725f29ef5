package models

import "time"

type Merchant struct {
	ID               uint   `gorm:"primarykey"`
	BusinessName     string `gorm:"not null"`
	BusinessEmail    string `gorm:"uniqueIndex;not null"`
	BusinessPhone    string
	BusinessAddress  string
	OnboardingStatus string `gorm:"default:'PENDING'"`
	Metadata         JSON   `gorm:"type:jsonb"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
