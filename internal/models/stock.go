package models

import (
	"time"

	"gorm.io/gorm"
)

type Warehouse struct {
	gorm.Model
	MerchantID uint   `gorm:"index;not null"`
	Name       string `gorm:"not null"`
	Address    string
	IsActive   bool `gorm:"default:true"`
}

type Product struct {
	gorm.Model
	MerchantID uint   `gorm:"index;not null"`
	Name       string `gorm:"not null"`
	SKU        string `gorm:"uniqueIndex;not null"`
	Price      float64
	Status     string `gorm:"default:'active'"`
}

type StockItem struct {
	gorm.Model
	ProductID         uint       `gorm:"index;not null"`
	Product           *Product   `gorm:"foreignKey:ProductID"`
	WarehouseID       uint       `gorm:"index;not null"`
	Warehouse         *Warehouse `gorm:"foreignKey:WarehouseID"`
	MerchantID        uint       `gorm:"index;not null"`
	Quantity          int
	ReservedQuantity  int
	AvailableQuantity int // always Quantity - ReservedQuantity
	ReorderLevel      int
	ExpiryDate        *time.Time
}

type StockMovement struct {
	gorm.Model
	StockItemID uint `gorm:"index;not null"`
	MerchantID  uint `gorm:"index;not null"`
	Type        string
	Quantity    int
	Reference   string
}

type SerialNumber struct {
	gorm.Model
	ProductID  uint   `gorm:"index;not null"`
	MerchantID uint   `gorm:"index;not null"`
	Serial     string `gorm:"uniqueIndex;not null"`
	Status     string `gorm:"default:'in_stock'"`
}
