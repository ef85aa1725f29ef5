package repositories

import (
	"errors"
	"time"

	"sjfs/internal/models"

	"gorm.io/gorm"
)

// WebhookRepository defines webhook database operations
type WebhookRepository interface {
	Create(webhook *models.Webhook) error
	GetByID(id uint) (*models.Webhook, error)
	ListByMerchant(merchantID uint) ([]models.Webhook, error)
	Delete(id, merchantID uint) error

	// ListActiveByEvent returns the merchant's active webhooks subscribed to
	// the given event name.
	ListActiveByEvent(merchantID uint, event string) ([]models.Webhook, error)

	// RecordDelivery appends the delivery log and bumps last_triggered plus
	// the success or failure counter. Counters only ever go up.
	RecordDelivery(webhookID uint, log *models.WebhookLog, success bool) error
}

type webhookRepository struct {
	db *gorm.DB
}

func NewWebhookRepository(db *gorm.DB) WebhookRepository {
	return &webhookRepository{db: db}
}

func (r *webhookRepository) Create(webhook *models.Webhook) error {
	return r.db.Create(webhook).Error
}

func (r *webhookRepository) GetByID(id uint) (*models.Webhook, error) {
	var webhook models.Webhook
	if err := r.db.First(&webhook, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWebhookNotFound
		}
		return nil, err
	}
	return &webhook, nil
}

func (r *webhookRepository) ListByMerchant(merchantID uint) ([]models.Webhook, error) {
	var webhooks []models.Webhook
	err := r.db.Where("merchant_id = ?", merchantID).Find(&webhooks).Error
	return webhooks, err
}

func (r *webhookRepository) Delete(id, merchantID uint) error {
	result := r.db.Where("id = ? AND merchant_id = ?", id, merchantID).Delete(&models.Webhook{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWebhookNotFound
	}
	return nil
}

func (r *webhookRepository) ListActiveByEvent(merchantID uint, event string) ([]models.Webhook, error) {
	var webhooks []models.Webhook
	err := r.db.Where("merchant_id = ? AND is_active = ? AND ? = ANY(events)",
		merchantID, true, event).
		Find(&webhooks).Error
	return webhooks, err
}

func (r *webhookRepository) RecordDelivery(webhookID uint, log *models.WebhookLog, success bool) error {
	counter := "failure_count"
	if success {
		counter = "success_count"
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(log).Error; err != nil {
			return err
		}
		return tx.Model(&models.Webhook{}).Where("id = ?", webhookID).
			Updates(map[string]interface{}{
				"last_triggered": time.Now(),
				counter:          gorm.Expr(counter + " + 1"),
			}).Error
	})
}
