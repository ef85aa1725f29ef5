// Package order implements the order lifecycle: intake, the status state
// machine, and warehouse splits.
//
// A status transition has a transactional core (the status write plus its
// history row) and a fan of side effects (billing, audit, notification,
// email, webhook). The core must fully succeed; each side effect is
// independently best-effort and its outcome is reported back to the caller
// as a SideEffectResult rather than an error.
//
// The transition graph is deliberately permissive: any status may follow any
// other, only enum membership is enforced.
package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"sjfs/internal/models"
	"sjfs/internal/repositories"
	"sjfs/internal/services/audit"
	"sjfs/internal/services/mailer"
	"sjfs/internal/services/notification"
	"sjfs/internal/services/webhook"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// statusRoles are the only roles allowed to drive order status. Merchant-side
// roles are excluded as a platform rule, not a UI restriction.
var statusRoles = map[string]bool{
	models.RolePlatformAdmin:    true,
	models.RoleWarehouseStaff:   true,
	models.RoleLogisticsPartner: true,
}

type Service interface {
	// Create persists a new order with its initial history row and announces
	// it to the merchant.
	Create(ctx context.Context, actor *models.UserClaims, input CreateInput) (*models.Order, []SideEffectResult, error)

	// Transition applies a status change to the order. The returned side
	// effect results never carry the error of the primary write; a non-nil
	// error means the transition itself did not happen.
	Transition(ctx context.Context, orderID uint, newStatus models.OrderStatus, actor *models.UserClaims, input TransitionInput) (*models.Order, []SideEffectResult, error)

	// Split assigns a subset of the order's items to a warehouse. Every item
	// must belong to the order or the whole request is rejected.
	Split(ctx context.Context, orderID, warehouseID uint, items []SplitItemInput, actor *models.UserClaims) (*models.OrderSplit, error)

	Get(ctx context.Context, orderID uint) (*models.Order, error)
	ListByMerchant(ctx context.Context, merchantID uint, offset, limit int) ([]models.Order, int64, error)
}

type service struct {
	orders     repositories.OrderRepository
	warehouses repositories.WarehouseRepository
	subs       repositories.SubscriptionRepository
	billing    repositories.BillingRepository
	notifier   notification.Service
	auditor    audit.Service
	mail       mailer.Mailer
	hooks      webhook.Service
}

func NewService(
	orders repositories.OrderRepository,
	warehouses repositories.WarehouseRepository,
	subs repositories.SubscriptionRepository,
	billing repositories.BillingRepository,
	notifier notification.Service,
	auditor audit.Service,
	mail mailer.Mailer,
	hooks webhook.Service,
) Service {
	return &service{
		orders:     orders,
		warehouses: warehouses,
		subs:       subs,
		billing:    billing,
		notifier:   notifier,
		auditor:    auditor,
		mail:       mail,
		hooks:      hooks,
	}
}

func (s *service) Transition(ctx context.Context, orderID uint, newStatus models.OrderStatus, actor *models.UserClaims, input TransitionInput) (*models.Order, []SideEffectResult, error) {
	if !newStatus.Valid() {
		return nil, nil, ErrInvalidStatus
	}
	if actor == nil || !statusRoles[actor.Role] {
		return nil, nil, ErrRoleForbidden
	}

	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	order.Status = newStatus
	if input.TrackingNumber != "" {
		order.TrackingNumber = input.TrackingNumber
	}
	if newStatus == models.OrderStatusDelivered && order.DeliveredAt == nil {
		order.DeliveredAt = &now
	}

	history := &models.OrderStatusHistory{
		OrderID: order.ID,
		Status:  newStatus,
		ActorID: actor.UserID,
		Notes:   input.Notes,
	}

	// Transactional core: both writes succeed or the transition fails.
	if err := s.orders.UpdateStatusWithHistory(order, history); err != nil {
		return nil, nil, fmt.Errorf("failed to update order status: %w", err)
	}

	var effects []SideEffectResult

	if newStatus == models.OrderStatusDelivered {
		effects = append(effects, s.createDeliveryBilling(order, now))
	}

	effects = append(effects, s.recordAudit(ctx, actor, order, newStatus, input.Notes))
	effects = append(effects, s.notifyMerchant(ctx, order, newStatus))
	effects = append(effects, s.emailCustomer(ctx, order, newStatus))
	effects = append(effects, s.emailMerchant(ctx, order, newStatus))
	effects = append(effects, s.triggerWebhooks(ctx, order, newStatus))

	return order, effects, nil
}

// createDeliveryBilling raises the daily service fee for the delivery. A
// merchant without an active subscription is silently skipped.
func (s *service) createDeliveryBilling(order *models.Order, now time.Time) SideEffectResult {
	result := SideEffectResult{Kind: SideEffectBilling}

	sub, err := s.subs.GetActiveByMerchant(order.MerchantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			result.OK = true
			result.Skipped = true
			return result
		}
		result.Error = err.Error()
		return result
	}

	subID := sub.ID
	record := &models.BillingRecord{
		MerchantID:      order.MerchantID,
		SubscriptionID:  &subID,
		BillingType:     models.BillingTypeDailyServiceFee,
		Description:     fmt.Sprintf("Service fee for delivered order %s", order.OrderNumber),
		Amount:          sub.BasePrice,
		DueDate:         now,
		Status:          models.BillingStatusPending,
		ReferenceNumber: order.OrderNumber,
	}
	if err := s.billing.Create(record); err != nil {
		result.Error = err.Error()
		return result
	}

	result.OK = true
	return result
}

func (s *service) recordAudit(ctx context.Context, actor *models.UserClaims, order *models.Order, status models.OrderStatus, notes string) SideEffectResult {
	result := SideEffectResult{Kind: SideEffectAudit}

	actorID := actor.UserID
	merchantID := order.MerchantID
	err := s.auditor.Record(ctx, audit.Entry{
		ActorID:    &actorID,
		MerchantID: &merchantID,
		Action:     "order.status_updated",
		EntityType: "order",
		EntityID:   order.ID,
		Details: models.JSON{
			"order_number": order.OrderNumber,
			"status":       string(status),
			"notes":        notes,
		},
	})
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.OK = true
	return result
}

func (s *service) notifyMerchant(ctx context.Context, order *models.Order, status models.OrderStatus) SideEffectResult {
	result := SideEffectResult{Kind: SideEffectNotification}

	title, message := statusCopy(order, status)
	_, err := s.notifier.Dispatch(ctx, notification.Input{
		Target:   notification.ByRole(order.MerchantID, models.RoleMerchantAdmin),
		Title:    title,
		Message:  message,
		Type:     models.NotificationTypeOrderUpdate,
		Priority: statusPriority(status),
		Metadata: models.JSON{
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
			"status":       string(status),
		},
	})
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.OK = true
	return result
}

func (s *service) emailCustomer(ctx context.Context, order *models.Order, status models.OrderStatus) SideEffectResult {
	result := SideEffectResult{Kind: SideEffectCustomerEmail}

	if order.CustomerEmail == "" {
		result.OK = true
		result.Skipped = true
		return result
	}

	title, message := statusCopy(order, status)
	if err := s.mail.Send(ctx, order.CustomerEmail, title, message); err != nil {
		result.Error = err.Error()
		return result
	}
	result.OK = true
	return result
}

func (s *service) emailMerchant(ctx context.Context, order *models.Order, status models.OrderStatus) SideEffectResult {
	result := SideEffectResult{Kind: SideEffectMerchantEmail}

	if order.Merchant == nil || order.Merchant.BusinessEmail == "" {
		result.OK = true
		result.Skipped = true
		return result
	}

	title, message := statusCopy(order, status)
	if err := s.mail.Send(ctx, order.Merchant.BusinessEmail, title, message); err != nil {
		result.Error = err.Error()
		return result
	}
	result.OK = true
	return result
}

func (s *service) triggerWebhooks(ctx context.Context, order *models.Order, status models.OrderStatus) SideEffectResult {
	payload := map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"status":       string(status),
		"total_amount": order.TotalAmount,
	}

	s.hooks.Trigger(ctx, order.MerchantID, webhook.EventOrderStatusChanged, payload)
	switch status {
	case models.OrderStatusDelivered:
		s.hooks.Trigger(ctx, order.MerchantID, webhook.EventOrderDelivered, payload)
	case models.OrderStatusCancelled:
		s.hooks.Trigger(ctx, order.MerchantID, webhook.EventOrderCancelled, payload)
	}

	return SideEffectResult{Kind: SideEffectWebhook, OK: true}
}

func (s *service) Split(ctx context.Context, orderID, warehouseID uint, items []SplitItemInput, actor *models.UserClaims) (*models.OrderSplit, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.warehouses.GetByID(warehouseID); err != nil {
		return nil, err
	}

	owned := make(map[uint]bool, len(order.Items))
	for _, item := range order.Items {
		owned[item.ID] = true
	}
	for _, item := range items {
		if !owned[item.OrderItemID] {
			return nil, ErrItemNotInOrder
		}
	}

	split := &models.OrderSplit{
		OrderID:     order.ID,
		WarehouseID: warehouseID,
		Status:      "PENDING",
	}
	for _, item := range items {
		split.Items = append(split.Items, models.OrderSplitItem{
			OrderItemID: item.OrderItemID,
			Quantity:    item.Quantity,
		})
	}
	if err := s.orders.CreateSplit(split); err != nil {
		return nil, fmt.Errorf("failed to create order split: %w", err)
	}

	actorID := actor.UserID
	merchantID := order.MerchantID
	if err := s.auditor.Record(ctx, audit.Entry{
		ActorID:    &actorID,
		MerchantID: &merchantID,
		Action:     "order.split",
		EntityType: "order",
		EntityID:   order.ID,
		Details: models.JSON{
			"order_number": order.OrderNumber,
			"warehouse_id": warehouseID,
			"items":        len(items),
		},
	}); err != nil {
		log.Printf("order %d: split audit entry failed: %v", order.ID, err)
	}

	return split, nil
}

func (s *service) Create(ctx context.Context, actor *models.UserClaims, input CreateInput) (*models.Order, []SideEffectResult, error) {
	if len(input.Items) == 0 {
		return nil, nil, ErrNoItems
	}

	var orderValue float64
	order := &models.Order{
		OrderNumber:   generateOrderNumber(),
		MerchantID:    input.MerchantID,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		CustomerEmail: input.CustomerEmail,
		DeliveryFee:   input.DeliveryFee,
		PaymentMethod: input.PaymentMethod,
		Status:        models.OrderStatusPending,
		ShippingAddress: models.Address{
			Line1:      input.ShippingAddress["line1"],
			Line2:      input.ShippingAddress["line2"],
			City:       input.ShippingAddress["city"],
			State:      input.ShippingAddress["state"],
			PostalCode: input.ShippingAddress["postal_code"],
			Country:    input.ShippingAddress["country"],
		},
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 || item.UnitPrice < 0 {
			return nil, nil, ErrInvalidAmount
		}
		lineTotal := float64(item.Quantity) * item.UnitPrice
		orderValue += lineTotal
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   lineTotal,
		})
	}
	order.OrderValue = orderValue
	order.TotalAmount = orderValue + order.DeliveryFee
	order.StatusHistory = []models.OrderStatusHistory{{
		Status:  models.OrderStatusPending,
		ActorID: actor.UserID,
	}}

	if err := s.orders.Create(order); err != nil {
		return nil, nil, fmt.Errorf("failed to create order: %w", err)
	}

	var effects []SideEffectResult
	effects = append(effects, s.notifyMerchant(ctx, order, models.OrderStatusPending))

	s.hooks.Trigger(ctx, order.MerchantID, webhook.EventOrderCreated, map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount,
	})
	effects = append(effects, SideEffectResult{Kind: SideEffectWebhook, OK: true})

	return order, effects, nil
}

func (s *service) Get(ctx context.Context, orderID uint) (*models.Order, error) {
	return s.orders.GetByID(orderID)
}

func (s *service) ListByMerchant(ctx context.Context, merchantID uint, offset, limit int) ([]models.Order, int64, error) {
	return s.orders.ListByMerchant(merchantID, offset, limit)
}

func generateOrderNumber() string {
	return "ORD-" + uuid.NewString()[:8]
}

func statusPriority(status models.OrderStatus) models.NotificationPriority {
	if status == models.OrderStatusCancelled {
		return models.PriorityHigh
	}
	return models.PriorityMedium
}

func statusCopy(order *models.Order, status models.OrderStatus) (title, message string) {
	switch status {
	case models.OrderStatusPending:
		return "New Order Received", fmt.Sprintf("Order %s has been received and is awaiting confirmation.", order.OrderNumber)
	case models.OrderStatusConfirmed:
		return "Order Confirmed", fmt.Sprintf("Order %s has been confirmed.", order.OrderNumber)
	case models.OrderStatusProcessing:
		return "Order Processing", fmt.Sprintf("Order %s is being prepared for dispatch.", order.OrderNumber)
	case models.OrderStatusReadyForDispatch:
		return "Order Ready for Dispatch", fmt.Sprintf("Order %s is packed and ready for pickup.", order.OrderNumber)
	case models.OrderStatusInTransit:
		return "Order In Transit", fmt.Sprintf("Order %s is on its way to the customer.", order.OrderNumber)
	case models.OrderStatusDelivered:
		return "Order Delivered", fmt.Sprintf("Order %s has been delivered.", order.OrderNumber)
	case models.OrderStatusCancelled:
		return "Order Cancelled", fmt.Sprintf("Order %s has been cancelled.", order.OrderNumber)
	case models.OrderStatusReturned:
		return "Order Returned", fmt.Sprintf("Order %s has been returned.", order.OrderNumber)
	default:
		return "Order Updated", fmt.Sprintf("Order %s status changed to %s.", order.OrderNumber, status)
	}
}
