package repositories

import (
	"errors"

	"sjfs/internal/models"

	"gorm.io/gorm"
)

// StockRepository defines the read operations used by the stock monitor
type StockRepository interface {
	// ListTracked returns all stock items with their products preloaded
	ListTracked() ([]models.StockItem, error)
}

// WarehouseRepository defines warehouse database operations
type WarehouseRepository interface {
	GetByID(id uint) (*models.Warehouse, error)
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) ListTracked() ([]models.StockItem, error) {
	var items []models.StockItem
	err := r.db.Preload("Product").Find(&items).Error
	return items, err
}

type warehouseRepository struct {
	db *gorm.DB
}

func NewWarehouseRepository(db *gorm.DB) WarehouseRepository {
	return &warehouseRepository{db: db}
}

func (r *warehouseRepository) GetByID(id uint) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	if err := r.db.First(&warehouse, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, err
	}
	return &warehouse, nil
}
