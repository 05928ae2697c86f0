package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/adlet/fieldops-planning/internal/model"
)

type GormAuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

func (r *GormAuditRepository) Record(ctx context.Context, entry model.AuditEntry) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO audit_log (actor_id, action, entity_type, entity_id, details)
		VALUES (?, ?, ?, ?, ?)
	`,
		entry.ActorID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.Details,
	).Error
}
