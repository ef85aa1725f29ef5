package repositories

import (
	"sjfs/internal/models"

	"gorm.io/gorm"
)

// AuditRepository defines audit-log database operations
type AuditRepository interface {
	Create(entry *models.AuditLog) error
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}
