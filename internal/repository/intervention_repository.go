package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adlet/fieldops-planning/internal/model"
)

type GormInterventionRepository struct {
	db *gorm.DB
}

func NewInterventionRepository(db *gorm.DB) *GormInterventionRepository {
	return &GormInterventionRepository{db: db}
}

const interventionColumns = `
	id,
	client_id,
	contract_id,
	site_id,
	type,
	status,
	planned_date,
	planned_time,
	duration_min,
	completed_date,
	prestation,
	notes,
	created_at,
	updated_at
`

func (r *GormInterventionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Intervention, error) {
	var intervention model.Intervention
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+interventionColumns+`
		FROM interventions
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&intervention).Error
	if err != nil {
		return nil, err
	}
	if intervention.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &intervention, nil
}

func (r *GormInterventionRepository) Create(ctx context.Context, intervention *model.Intervention) error {
	return r.insert(r.db.WithContext(ctx), intervention)
}

func (r *GormInterventionRepository) insert(tx *gorm.DB, intervention *model.Intervention) error {
	return tx.Raw(`
		INSERT INTO interventions (
			client_id,
			contract_id,
			site_id,
			type,
			status,
			planned_date,
			planned_time,
			duration_min,
			completed_date,
			prestation,
			notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+interventionColumns+`
	`,
		intervention.ClientID,
		intervention.ContractID,
		intervention.SiteID,
		intervention.Type,
		intervention.Status,
		intervention.PlannedDate,
		intervention.PlannedTime,
		intervention.DurationMin,
		intervention.CompletedDate,
		intervention.Prestation,
		intervention.Notes,
	).Scan(intervention).Error
}

func (r *GormInterventionRepository) Update(ctx context.Context, intervention *model.Intervention) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE interventions
		SET
			status = ?,
			planned_date = ?,
			planned_time = ?,
			duration_min = ?,
			completed_date = ?,
			prestation = ?,
			notes = ?,
			updated_at = NOW()
		WHERE id = ?
	`,
		intervention.Status,
		intervention.PlannedDate,
		intervention.PlannedTime,
		intervention.DurationMin,
		intervention.CompletedDate,
		intervention.Prestation,
		intervention.Notes,
		intervention.ID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormInterventionRepository) ReplaceSchedule(ctx context.Context, contractID uuid.UUID, items []model.Intervention) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(`
			DELETE FROM interventions
			WHERE contract_id = ?
				AND status NOT IN ('COMPLETED', 'CANCELLED')
		`, contractID).Error
		if err != nil {
			return err
		}

		for i := range items {
			if err := r.insert(tx, &items[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormInterventionRepository) ListOverdue(ctx context.Context, before time.Time) ([]model.Intervention, error) {
	var interventions []model.Intervention
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+interventionColumns+`
		FROM interventions
		WHERE planned_date < ?
			AND status NOT IN ('COMPLETED', 'CANCELLED')
		ORDER BY planned_date
	`, before).Scan(&interventions).Error
	if err != nil {
		return nil, err
	}
	return interventions, nil
}

func (r *GormInterventionRepository) ListDueWithin(ctx context.Context, from, to time.Time) ([]model.Intervention, error) {
	var interventions []model.Intervention
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+interventionColumns+`
		FROM interventions
		WHERE planned_date >= ?
			AND planned_date <= ?
			AND status = 'TO_SCHEDULE'
		ORDER BY planned_date
	`, from, to).Scan(&interventions).Error
	if err != nil {
		return nil, err
	}
	return interventions, nil
}

func (r *GormInterventionRepository) CountUpcoming(ctx context.Context, contractID uuid.UUID, from time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM interventions
		WHERE contract_id = ?
			AND planned_date >= ?
			AND status IN ('TO_SCHEDULE', 'SCHEDULED')
	`, contractID, from).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInterventionRepository) CountRemainingOperations(ctx context.Context, contractID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM interventions
		WHERE contract_id = ?
			AND type = 'OPERATION'
			AND status NOT IN ('COMPLETED', 'CANCELLED')
	`, contractID).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInterventionRepository) CountForPeriod(ctx context.Context, from, to time.Time) (int64, int64, error) {
	var row struct {
		Total     int64
		Completed int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'COMPLETED') AS completed
		FROM interventions
		WHERE planned_date >= ?
			AND planned_date < ?
			AND status != 'CANCELLED'
	`, from, to).Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Total, row.Completed, nil
}
