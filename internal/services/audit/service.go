// Package audit writes append-only audit log entries. Failures are returned
// to the caller, who decides whether to log and move on or fail the request.
package audit

import (
	"context"

	"sjfs/internal/models"
	"sjfs/internal/repositories"
)

type Service interface {
	// Record writes an audit entry. ActorID and merchantID may be nil.
	Record(ctx context.Context, entry Entry) error
}

type Entry struct {
	ActorID    *uint
	MerchantID *uint
	Action     string
	EntityType string
	EntityID   uint
	Details    models.JSON
}

type service struct {
	repo repositories.AuditRepository
}

func NewService(repo repositories.AuditRepository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, entry Entry) error {
	return s.repo.Create(&models.AuditLog{
		ActorID:    entry.ActorID,
		MerchantID: entry.MerchantID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Details:    entry.Details,
	})
}
