package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adlet/fieldops-planning/internal/model"
)

type GormContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

type contractRow struct {
	ID                     uuid.UUID
	ClientID               uuid.UUID
	Name                   string
	Type                   model.ContractType
	Status                 model.ContractStatus
	StartDate              time.Time
	EndDate                *time.Time
	OperationFrequency     *model.Frequency
	OperationFrequencyDays *int
	FirstOperationDate     *time.Time
	ControlFrequency       *model.Frequency
	ControlFrequencyDays   *int
	FirstControlDate       *time.Time
	OperationCount         int
	AutoContinue           bool
	Prestation             string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type contractSiteRow struct {
	ID                     uuid.UUID
	ContractID             uuid.UUID
	SiteID                 uuid.UUID
	Prestations            string
	OperationFrequency     *model.Frequency
	OperationFrequencyDays *int
	FirstOperationDate     *time.Time
	ControlFrequency       *model.Frequency
	ControlFrequencyDays   *int
	FirstControlDate       *time.Time
	OperationCount         int
	ControlVisitCount      int
}

const contractColumns = `
	id,
	client_id,
	name,
	type,
	status,
	start_date,
	end_date,
	operation_frequency,
	operation_frequency_days,
	first_operation_date,
	control_frequency,
	control_frequency_days,
	first_control_date,
	operation_count,
	auto_continue,
	prestation,
	created_at,
	updated_at
`

func (r *GormContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var row contractRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+contractColumns+`
		FROM contracts
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	contract := rowToContract(row)

	sites, err := r.listSites(ctx, id)
	if err != nil {
		return nil, err
	}
	contract.Sites = sites
	return contract, nil
}

func (r *GormContractRepository) ListActive(ctx context.Context) ([]model.Contract, error) {
	var rows []contractRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT ` + contractColumns + `
		FROM contracts
		WHERE status = 'ACTIVE'
		ORDER BY created_at
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	contracts := make([]model.Contract, 0, len(rows))
	for _, row := range rows {
		contract := rowToContract(row)
		sites, err := r.listSites(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		contract.Sites = sites
		contracts = append(contracts, *contract)
	}
	return contracts, nil
}

func (r *GormContractRepository) listSites(ctx context.Context, contractID uuid.UUID) ([]model.ContractSite, error) {
	var rows []contractSiteRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			contract_id,
			site_id,
			prestations,
			operation_frequency,
			operation_frequency_days,
			first_operation_date,
			control_frequency,
			control_frequency_days,
			first_control_date,
			operation_count,
			control_visit_count
		FROM contract_sites
		WHERE contract_id = ?
		ORDER BY site_id
	`, contractID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sites := make([]model.ContractSite, 0, len(rows))
	for _, row := range rows {
		sites = append(sites, model.ContractSite{
			ID:                     row.ID,
			ContractID:             row.ContractID,
			SiteID:                 row.SiteID,
			Prestations:            splitPrestations(row.Prestations),
			OperationFrequency:     row.OperationFrequency,
			OperationFrequencyDays: row.OperationFrequencyDays,
			FirstOperationDate:     row.FirstOperationDate,
			ControlFrequency:       row.ControlFrequency,
			ControlFrequencyDays:   row.ControlFrequencyDays,
			FirstControlDate:       row.FirstControlDate,
			OperationCount:         row.OperationCount,
			ControlVisitCount:      row.ControlVisitCount,
		})
	}
	return sites, nil
}

func rowToContract(row contractRow) *model.Contract {
	return &model.Contract{
		ID:                     row.ID,
		ClientID:               row.ClientID,
		Name:                   row.Name,
		Type:                   row.Type,
		Status:                 row.Status,
		StartDate:              row.StartDate,
		EndDate:                row.EndDate,
		OperationFrequency:     row.OperationFrequency,
		OperationFrequencyDays: row.OperationFrequencyDays,
		FirstOperationDate:     row.FirstOperationDate,
		ControlFrequency:       row.ControlFrequency,
		ControlFrequencyDays:   row.ControlFrequencyDays,
		FirstControlDate:       row.FirstControlDate,
		OperationCount:         row.OperationCount,
		AutoContinue:           row.AutoContinue,
		Prestation:             row.Prestation,
		CreatedAt:              row.CreatedAt,
		UpdatedAt:              row.UpdatedAt,
	}
}

// prestations is a comma-separated list column
func splitPrestations(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
