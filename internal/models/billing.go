package models

import (
	"time"

	"gorm.io/gorm"
)

type BillingType string

const (
	BillingTypeDailyServiceFee BillingType = "DAILY_SERVICE_FEE"
	BillingTypeSubscription    BillingType = "SUBSCRIPTION_FEE"
	BillingTypeAddon           BillingType = "ADDON_FEE"
)

type BillingStatus string

const (
	BillingStatusPending BillingStatus = "PENDING"
	BillingStatusPaid    BillingStatus = "PAID"
	BillingStatusOverdue BillingStatus = "OVERDUE"
)

type BillingRecord struct {
	gorm.Model
	MerchantID      uint  `gorm:"index;not null"`
	SubscriptionID  *uint `gorm:"index"`
	BillingType     BillingType
	Description     string
	Amount          float64
	DueDate         time.Time
	Status          BillingStatus `gorm:"type:varchar(16);default:'PENDING';index"`
	ReferenceNumber string
}

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusSuspended SubscriptionStatus = "SUSPENDED"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
)

type Subscription struct {
	gorm.Model
	MerchantID uint   `gorm:"index;not null"`
	PlanName   string `gorm:"not null"`
	BasePrice  float64
	Status     SubscriptionStatus `gorm:"type:varchar(16);default:'ACTIVE';index"`
	StartedAt  time.Time
	ExpiresAt  *time.Time
	Addons     []SubscriptionAddon
}

type SubscriptionAddon struct {
	gorm.Model
	SubscriptionID uint `gorm:"index;not null"`
	Name           string
	Price          float64
}

// MerchantServiceSubscription links a merchant to an optional platform service
// (logistics, storage) billed separately from the base plan.
type MerchantServiceSubscription struct {
	gorm.Model
	MerchantID  uint `gorm:"index;not null"`
	ServiceName string
	Status      string `gorm:"default:'ACTIVE'"`
}
