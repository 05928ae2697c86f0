package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adlet/fieldops-planning/internal/model"
)

// ContractRepository reads contracts with their per-site configuration.
type ContractRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Contract, error)
	ListActive(ctx context.Context) ([]model.Contract, error)
}

// InterventionRepository persists the intervention schedule. Missing rows
// surface as gorm.ErrRecordNotFound; services translate to business errors.
type InterventionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Intervention, error)
	Create(ctx context.Context, intervention *model.Intervention) error
	Update(ctx context.Context, intervention *model.Intervention) error

	// ReplaceSchedule deletes all non-terminal interventions of the
	// contract and bulk-inserts the new schedule in one transaction.
	ReplaceSchedule(ctx context.Context, contractID uuid.UUID, items []model.Intervention) error

	ListOverdue(ctx context.Context, before time.Time) ([]model.Intervention, error)
	ListDueWithin(ctx context.Context, from, to time.Time) ([]model.Intervention, error)
	CountUpcoming(ctx context.Context, contractID uuid.UUID, from time.Time) (int64, error)
	CountRemainingOperations(ctx context.Context, contractID uuid.UUID) (int64, error)
	CountForPeriod(ctx context.Context, from, to time.Time) (total int64, completed int64, err error)
}

// AuditRepository is the fire-and-forget audit sink.
type AuditRepository interface {
	Record(ctx context.Context, entry model.AuditEntry) error
}

type Repository struct {
	Contracts     ContractRepository
	Interventions InterventionRepository
	Audit         AuditRepository
}

func New(db *gorm.DB) *Repository {
	return &Repository{
		Contracts:     NewContractRepository(db),
		Interventions: NewInterventionRepository(db),
		Audit:         NewAuditRepository(db),
	}
}
