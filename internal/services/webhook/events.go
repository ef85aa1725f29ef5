package webhook

// Event names deliverable to merchant endpoints. The set is closed; the
// dispatcher rejects anything else.
const (
	EventOrderCreated       = "order.created"
	EventOrderUpdated       = "order.updated"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDelivered     = "order.delivered"
	EventOrderCancelled     = "order.cancelled"
	EventProductCreated     = "product.created"
	EventProductUpdated     = "product.updated"
	EventProductDeleted     = "product.deleted"
	EventInventoryUpdated   = "inventory.updated"
	EventInventoryLowStock  = "inventory.low_stock"
	EventInventoryOutStock  = "inventory.out_of_stock"
	EventPaymentReceived    = "payment.received"
	EventPaymentFailed      = "payment.failed"
	EventReturnCreated      = "return.created"
	EventReturnProcessed    = "return.processed"
)

var knownEvents = map[string]struct{}{
	EventOrderCreated:       {},
	EventOrderUpdated:       {},
	EventOrderStatusChanged: {},
	EventOrderDelivered:     {},
	EventOrderCancelled:     {},
	EventProductCreated:     {},
	EventProductUpdated:     {},
	EventProductDeleted:     {},
	EventInventoryUpdated:   {},
	EventInventoryLowStock:  {},
	EventInventoryOutStock:  {},
	EventPaymentReceived:    {},
	EventPaymentFailed:      {},
	EventReturnCreated:      {},
	EventReturnProcessed:    {},
}

// ValidEvent reports whether name belongs to the event vocabulary.
func ValidEvent(name string) bool {
	_, ok := knownEvents[name]
	return ok
}
