package repositories

import "sjfs/internal/models"

// OrderRepository defines the interface for order-related database operations
type OrderRepository interface {
	// Create persists a new order together with its line items
	Create(order *models.Order) error

	// GetByID retrieves an order with its merchant and items preloaded
	GetByID(id uint) (*models.Order, error)

	// UpdateStatusWithHistory persists the order's new status and appends the
	// history row in a single transaction. Both succeed or neither does.
	UpdateStatusWithHistory(order *models.Order, history *models.OrderStatusHistory) error

	// CreateSplit persists an order split with its items
	CreateSplit(split *models.OrderSplit) error

	// ListByMerchant retrieves a merchant's orders with pagination
	ListByMerchant(merchantID uint, offset, limit int) ([]models.Order, int64, error)
}
