package models

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending          OrderStatus = "PENDING"
	OrderStatusConfirmed        OrderStatus = "CONFIRMED"
	OrderStatusProcessing       OrderStatus = "PROCESSING"
	OrderStatusReadyForDispatch OrderStatus = "READY_FOR_DISPATCH"
	OrderStatusInTransit        OrderStatus = "IN_TRANSIT"
	OrderStatusDelivered        OrderStatus = "DELIVERED"
	OrderStatusCancelled        OrderStatus = "CANCELLED"
	OrderStatusReturned         OrderStatus = "RETURNED"
)

// Valid reports whether s is a member of the closed status enum.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusReadyForDispatch, OrderStatusInTransit,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned:
		return true
	}
	return false
}

// Address is embedded into Order as the shipping destination.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type Order struct {
	gorm.Model
	OrderNumber     string    `gorm:"uniqueIndex;not null"`
	MerchantID      uint      `gorm:"index;not null"`
	Merchant        *Merchant `gorm:"foreignKey:MerchantID"`
	CustomerName    string    `gorm:"not null"`
	CustomerPhone   string
	CustomerEmail   string
	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_"`
	OrderValue      float64
	DeliveryFee     float64
	TotalAmount     float64 // always OrderValue + DeliveryFee
	PaymentMethod   string
	Status          OrderStatus `gorm:"type:varchar(32);default:'PENDING';index"`
	TrackingNumber  string
	DeliveredAt     *time.Time
	Items           []OrderItem
	StatusHistory   []OrderStatusHistory
	Splits          []OrderSplit
}

// OrderItem lines are immutable after order creation.
type OrderItem struct {
	gorm.Model
	OrderID     uint `gorm:"index;not null"`
	ProductID   uint `gorm:"index"`
	ProductName string
	Quantity    int
	UnitPrice   float64
	LineTotal   float64
}

// OrderStatusHistory is an append-only log; rows are never mutated or deleted.
type OrderStatusHistory struct {
	ID        uint        `gorm:"primarykey"`
	OrderID   uint        `gorm:"index;not null"`
	Status    OrderStatus `gorm:"type:varchar(32);not null"`
	ActorID   uint
	Notes     string
	CreatedAt time.Time
}

type OrderSplit struct {
	gorm.Model
	OrderID     uint   `gorm:"index;not null"`
	WarehouseID uint   `gorm:"index;not null"`
	Status      string `gorm:"default:'PENDING'"`
	Items       []OrderSplitItem
}

type OrderSplitItem struct {
	gorm.Model
	OrderSplitID uint `gorm:"index;not null"`
	OrderItemID  uint `gorm:"not null"`
	Quantity     int
}

type Return struct {
	gorm.Model
	OrderID    uint   `gorm:"index;not null"`
	MerchantID uint   `gorm:"index;not null"`
	Status     string `gorm:"default:'PENDING'"`
	Reason     string
}
