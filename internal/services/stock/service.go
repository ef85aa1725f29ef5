// Package stock implements the periodic inventory sweep. The sweep is
// read-only apart from the notifications it raises; no stock item is ever
// corrected or quarantined automatically.
package stock

import (
	"context"
	"fmt"
	"log"
	"time"

	"sjfs/internal/models"
	"sjfs/internal/repositories"
	"sjfs/internal/services/notification"
)

// urgentThreshold is the available quantity at or below which warehouse staff
// get an additional URGENT alert.
const urgentThreshold = 5

// SweepSummary reports what a sweep flagged.
type SweepSummary struct {
	Scanned    int `json:"scanned"`
	OutOfStock int `json:"out_of_stock"`
	LowStock   int `json:"low_stock"`
	Expired    int `json:"expired"`
}

type Service interface {
	// Sweep scans all stock items and raises role-targeted notifications for
	// anything out of stock, at or below reorder level, or expired. It
	// processes every flagged item to completion before returning.
	Sweep(ctx context.Context) (*SweepSummary, error)
}

type service struct {
	repo     repositories.StockRepository
	notifier notification.Service
}

func NewService(repo repositories.StockRepository, notifier notification.Service) Service {
	return &service{repo: repo, notifier: notifier}
}

func (s *service) Sweep(ctx context.Context) (*SweepSummary, error) {
	items, err := s.repo.ListTracked()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	summary := &SweepSummary{Scanned: len(items)}

	for i := range items {
		item := &items[i]

		switch {
		case item.AvailableQuantity == 0:
			summary.OutOfStock++
			s.alertMerchant(ctx, item, "Out of Stock",
				fmt.Sprintf("%s has no available stock in warehouse %d.", s.productName(item), item.WarehouseID),
				models.PriorityHigh)
		case item.AvailableQuantity <= item.ReorderLevel:
			summary.LowStock++
			s.alertMerchant(ctx, item, "Low Stock",
				fmt.Sprintf("%s is at %d units, at or below its reorder level of %d.",
					s.productName(item), item.AvailableQuantity, item.ReorderLevel),
				models.PriorityMedium)
		}

		if item.AvailableQuantity <= urgentThreshold {
			s.alertWarehouse(ctx, item, "Stock Critical",
				fmt.Sprintf("%s is down to %d units.", s.productName(item), item.AvailableQuantity),
				models.PriorityUrgent)
		}

		if item.ExpiryDate != nil && !item.ExpiryDate.After(now) && item.AvailableQuantity > 0 {
			summary.Expired++
			msg := fmt.Sprintf("%s expired on %s with %d units remaining.",
				s.productName(item), item.ExpiryDate.Format("2006-01-02"), item.AvailableQuantity)
			s.alertMerchant(ctx, item, "Stock Expired", msg, models.PriorityHigh)
			s.alertWarehouse(ctx, item, "Stock Expired", msg, models.PriorityHigh)
		}
	}

	return summary, nil
}

func (s *service) alertMerchant(ctx context.Context, item *models.StockItem, title, message string, priority models.NotificationPriority) {
	s.dispatch(ctx, notification.ByRole(item.MerchantID, models.RoleMerchantAdmin), item, title, message, priority)
}

func (s *service) alertWarehouse(ctx context.Context, item *models.StockItem, title, message string, priority models.NotificationPriority) {
	s.dispatch(ctx, notification.ByRole(item.MerchantID, models.RoleWarehouseStaff), item, title, message, priority)
}

func (s *service) dispatch(ctx context.Context, target notification.Target, item *models.StockItem, title, message string, priority models.NotificationPriority) {
	_, err := s.notifier.Dispatch(ctx, notification.Input{
		Target:   target,
		Title:    title,
		Message:  message,
		Type:     models.NotificationTypeStockAlert,
		Priority: priority,
		Metadata: models.JSON{
			"stock_item_id": item.ID,
			"product_id":    item.ProductID,
			"warehouse_id":  item.WarehouseID,
			"available":     item.AvailableQuantity,
		},
	})
	if err != nil {
		log.Printf("stock sweep: failed to notify for item %d: %v", item.ID, err)
	}
}

func (s *service) productName(item *models.StockItem) string {
	if item.Product != nil {
		return item.Product.Name
	}
	return fmt.Sprintf("product %d", item.ProductID)
}
