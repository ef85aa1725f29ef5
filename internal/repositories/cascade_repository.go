package repositories

import (
	"sjfs/internal/models"

	"gorm.io/gorm"
)

// CascadeRepository executes the hard merchant deletion cascade.
type CascadeRepository interface {
	// DeleteMerchantCascade removes the merchant and every dependent row in
	// foreign-key order within a single transaction. Audit logs are
	// de-referenced, not deleted. Returns the number of staff users removed.
	DeleteMerchantCascade(merchantID uint) (int64, error)
}

type cascadeRepository struct {
	db *gorm.DB
}

func NewCascadeRepository(db *gorm.DB) CascadeRepository {
	return &cascadeRepository{db: db}
}

func (r *cascadeRepository) DeleteMerchantCascade(merchantID uint) (int64, error) {
	var staffCount int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		orderIDs := tx.Model(&models.Order{}).Select("id").Where("merchant_id = ?", merchantID)
		splitIDs := tx.Model(&models.OrderSplit{}).Select("id").Where("order_id IN (?)", orderIDs)
		userIDs := tx.Model(&models.User{}).Select("id").Where("merchant_id = ?", merchantID)
		apiKeyIDs := tx.Model(&models.ApiKey{}).Select("id").Where("merchant_id = ?", merchantID)
		webhookIDs := tx.Model(&models.Webhook{}).Select("id").Where("merchant_id = ?", merchantID)
		subIDs := tx.Model(&models.Subscription{}).Select("id").Where("merchant_id = ?", merchantID)

		// Order-level data first
		if err := tx.Unscoped().Where("order_split_id IN (?)", splitIDs).Delete(&models.OrderSplitItem{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("order_id IN (?)", orderIDs).Delete(&models.OrderSplit{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("order_id IN (?)", orderIDs).Delete(&models.OrderStatusHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("order_id IN (?)", orderIDs).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("merchant_id = ?", merchantID).Delete(&models.Return{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("merchant_id = ?", merchantID).Delete(&models.Order{}).Error; err != nil {
			return err
		}

		// Product-level data
		if err := tx.Unscoped().Where("merchant_id = ?", merchantID).Delete(&models.StockMovement{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("merchant_id = ?", merchantID).Delete(&models.StockItem{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("merchant_id = ?", merchantID).Delete(&models.SerialNumber{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("merchant_id = ?", merchantID).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("merchant_id = ?", merchantID).Delete(&models.Warehouse{}).Error; err != nil {
			return err
		}

		// Per-user data; audit logs keep their rows but lose the references
		if err := tx.Unscoped().Where("user_id IN (?)", userIDs).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("recipient_id IN (?)", userIDs).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id IN (?)", userIDs).Delete(&models.PasswordResetToken{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.AuditLog{}).Where("actor_id IN (?)", userIDs).
			Update("actor_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.AuditLog{}).Where("merchant_id = ?", merchantID).
			Update("merchant_id", nil).Error; err != nil {
			return err
		}

		result := tx.Unscoped().Where("merchant_id = ?", merchantID).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		staffCount = result.RowsAffected

		// API keys, webhooks and their logs
		if err := tx.Unscoped().Where("api_key_id IN (?)", apiKeyIDs).Delete(&models.ApiKeyLog{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("merchant_id = ?", merchantID).Delete(&models.ApiKey{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("webhook_id IN (?)", webhookIDs).Delete(&models.WebhookLog{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("merchant_id = ?", merchantID).Delete(&models.Webhook{}).Error; err != nil {
			return err
		}

		// Billing chain, then the merchant itself
		if err := tx.Unscoped().Where("subscription_id IN (?)", subIDs).Delete(&models.SubscriptionAddon{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("merchant_id = ?", merchantID).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("merchant_id = ?", merchantID).Delete(&models.MerchantServiceSubscription{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("merchant_id = ?", merchantID).Delete(&models.BillingRecord{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Merchant{}, merchantID).Error
	})

	if err != nil {
		return 0, err
	}
	return staffCount, nil
}
