package repositories

import (
	"time"

	"sjfs/internal/models"

	"gorm.io/gorm"
)

// BillingRepository defines billing-record database operations
type BillingRepository interface {
	Create(record *models.BillingRecord) error

	// SumOutstanding returns the total amount of PENDING and OVERDUE billing
	// records for a merchant.
	SumOutstanding(merchantID uint) (float64, error)
}

// SubscriptionRepository defines subscription database operations
type SubscriptionRepository interface {
	// GetActiveByMerchant returns the merchant's ACTIVE subscription, or
	// gorm.ErrRecordNotFound wrapped as a nil result when none exists.
	GetActiveByMerchant(merchantID uint) (*models.Subscription, error)

	// ListActiveUpdatedSince returns ACTIVE subscriptions whose updated_at is
	// after the given time.
	ListActiveUpdatedSince(merchantID uint, since time.Time) ([]models.Subscription, error)
}

type billingRepository struct {
	db *gorm.DB
}

func NewBillingRepository(db *gorm.DB) BillingRepository {
	return &billingRepository{db: db}
}

func (r *billingRepository) Create(record *models.BillingRecord) error {
	return r.db.Create(record).Error
}

func (r *billingRepository) SumOutstanding(merchantID uint) (float64, error) {
	var total float64
	err := r.db.Model(&models.BillingRecord{}).
		Where("merchant_id = ? AND status IN ?", merchantID,
			[]models.BillingStatus{models.BillingStatusPending, models.BillingStatusOverdue}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetActiveByMerchant(merchantID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("merchant_id = ? AND status = ?", merchantID, models.SubscriptionStatusActive).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) ListActiveUpdatedSince(merchantID uint, since time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Where("merchant_id = ? AND status = ? AND updated_at > ?",
		merchantID, models.SubscriptionStatusActive, since).
		Find(&subs).Error
	return subs, err
}
