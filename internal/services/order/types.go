package order

// TransitionInput carries the optional fields of a status update.
type TransitionInput struct {
	Notes          string `json:"notes"`
	TrackingNumber string `json:"trackingNumber"`
}

// SideEffectKind identifies one of the decoupled side channels fired after
// the primary status write commits.
type SideEffectKind string

const (
	SideEffectBilling       SideEffectKind = "billing"
	SideEffectAudit         SideEffectKind = "audit"
	SideEffectNotification  SideEffectKind = "notification"
	SideEffectCustomerEmail SideEffectKind = "customer_email"
	SideEffectMerchantEmail SideEffectKind = "merchant_email"
	SideEffectWebhook       SideEffectKind = "webhook"
)

// SideEffectResult records the outcome of one side effect. Failures here never
// fail the transition itself; the caller decides what to do with them.
type SideEffectResult struct {
	Kind    SideEffectKind `json:"kind"`
	OK      bool           `json:"ok"`
	Skipped bool           `json:"skipped,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// SplitItemInput is one line of a split request.
type SplitItemInput struct {
	OrderItemID uint `json:"orderItemId"`
	Quantity    int  `json:"quantity"`
}

// CreateItemInput is one line of an order intake request.
type CreateItemInput struct {
	ProductID   uint    `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// CreateInput describes a new order.
type CreateInput struct {
	MerchantID      uint              `json:"merchantId"`
	CustomerName    string            `json:"customerName"`
	CustomerPhone   string            `json:"customerPhone"`
	CustomerEmail   string            `json:"customerEmail"`
	ShippingAddress map[string]string `json:"shippingAddress"`
	DeliveryFee     float64           `json:"deliveryFee"`
	PaymentMethod   string            `json:"paymentMethod"`
	Items           []CreateItemInput `json:"items"`
}
