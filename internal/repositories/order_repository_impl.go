package repositories

import (
	"context"
	"errors"

	"sjfs/internal/models"
	"sjfs/internal/repositories/cache"

	"gorm.io/gorm"
)

// orderCache is the slice of the cache service the order repository uses.
type orderCache interface {
	GetOrder(ctx context.Context, orderID uint) (*models.Order, bool, error)
	CacheOrder(ctx context.Context, order *models.Order) error
	InvalidateOrder(ctx context.Context, orderID uint) error
}

type orderRepository struct {
	db    *gorm.DB
	cache orderCache
}

// NewOrderRepository creates a new order repository with a Redis read-through
// cache on single-order lookups. The cache may be nil.
func NewOrderRepository(db *gorm.DB, cacheService *cache.CacheService) OrderRepository {
	r := &orderRepository{db: db}
	if cacheService != nil {
		r.cache = cacheService
	}
	return r
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	if r.cache != nil {
		if cached, found, err := r.cache.GetOrder(context.Background(), id); err == nil && found {
			return cached, nil
		}
	}

	var order models.Order
	err := r.db.Preload("Merchant").Preload("Items").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if r.cache != nil {
		_ = r.cache.CacheOrder(context.Background(), &order)
	}
	return &order, nil
}

func (r *orderRepository) UpdateStatusWithHistory(order *models.Order, history *models.OrderStatusHistory) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"status":          order.Status,
				"tracking_number": order.TrackingNumber,
				"delivered_at":    order.DeliveredAt,
			}).Error; err != nil {
			return err
		}
		return tx.Create(history).Error
	})
	if err != nil {
		return err
	}

	if r.cache != nil {
		_ = r.cache.InvalidateOrder(context.Background(), order.ID)
	}
	return nil
}

func (r *orderRepository) CreateSplit(split *models.OrderSplit) error {
	return r.db.Create(split).Error
}

func (r *orderRepository) ListByMerchant(merchantID uint, offset, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.Model(&models.Order{}).Where("merchant_id = ?", merchantID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
