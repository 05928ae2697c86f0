package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/adlet/fieldops-planning/internal/config"
	"github.com/adlet/fieldops-planning/internal/model"
	"github.com/adlet/fieldops-planning/internal/repository"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// mock ContractRepository

type mockContractRepo struct {
	contracts map[uuid.UUID]*model.Contract
}

func newMockContractRepo() *mockContractRepo {
	return &mockContractRepo{contracts: make(map[uuid.UUID]*model.Contract)}
}

func (m *mockContractRepo) add(contract *model.Contract) {
	if contract.ID == uuid.Nil {
		contract.ID = uuid.New()
	}
	if contract.ClientID == uuid.Nil {
		contract.ClientID = uuid.New()
	}
	m.contracts[contract.ID] = contract
}

func (m *mockContractRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Contract, error) {
	if contract, ok := m.contracts[id]; ok {
		copied := *contract
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockContractRepo) ListActive(_ context.Context) ([]model.Contract, error) {
	var result []model.Contract
	for _, contract := range m.contracts {
		if contract.Status == model.ContractStatusActive {
			result = append(result, *contract)
		}
	}
	return result, nil
}

// mock InterventionRepository

type mockInterventionRepo struct {
	items map[uuid.UUID]*model.Intervention
}

func newMockInterventionRepo() *mockInterventionRepo {
	return &mockInterventionRepo{items: make(map[uuid.UUID]*model.Intervention)}
}

func (m *mockInterventionRepo) add(intervention *model.Intervention) {
	if intervention.ID == uuid.Nil {
		intervention.ID = uuid.New()
	}
	m.items[intervention.ID] = intervention
}

func (m *mockInterventionRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Intervention, error) {
	if item, ok := m.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInterventionRepo) Create(_ context.Context, intervention *model.Intervention) error {
	intervention.ID = uuid.New()
	copied := *intervention
	m.items[copied.ID] = &copied
	return nil
}

func (m *mockInterventionRepo) Update(_ context.Context, intervention *model.Intervention) error {
	if _, ok := m.items[intervention.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *intervention
	m.items[copied.ID] = &copied
	return nil
}

func (m *mockInterventionRepo) ReplaceSchedule(_ context.Context, contractID uuid.UUID, items []model.Intervention) error {
	for id, item := range m.items {
		if item.ContractID != nil && *item.ContractID == contractID && !item.Status.Terminal() {
			delete(m.items, id)
		}
	}
	for i := range items {
		items[i].ID = uuid.New()
		copied := items[i]
		m.items[copied.ID] = &copied
	}
	return nil
}

func (m *mockInterventionRepo) ListOverdue(_ context.Context, before time.Time) ([]model.Intervention, error) {
	var result []model.Intervention
	for _, item := range m.items {
		if item.PlannedDate.Before(before) && !item.Status.Terminal() {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (m *mockInterventionRepo) ListDueWithin(_ context.Context, from, to time.Time) ([]model.Intervention, error) {
	var result []model.Intervention
	for _, item := range m.items {
		if item.Status != model.InterventionStatusToSchedule {
			continue
		}
		if !item.PlannedDate.Before(from) && !item.PlannedDate.After(to) {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (m *mockInterventionRepo) CountUpcoming(_ context.Context, contractID uuid.UUID, from time.Time) (int64, error) {
	var count int64
	for _, item := range m.items {
		if item.ContractID == nil || *item.ContractID != contractID {
			continue
		}
		if item.Status != model.InterventionStatusToSchedule && item.Status != model.InterventionStatusScheduled {
			continue
		}
		if !item.PlannedDate.Before(from) {
			count++
		}
	}
	return count, nil
}

func (m *mockInterventionRepo) CountRemainingOperations(_ context.Context, contractID uuid.UUID) (int64, error) {
	var count int64
	for _, item := range m.items {
		if item.ContractID == nil || *item.ContractID != contractID {
			continue
		}
		if item.Type == model.InterventionTypeOperation && !item.Status.Terminal() {
			count++
		}
	}
	return count, nil
}

func (m *mockInterventionRepo) CountForPeriod(_ context.Context, from, to time.Time) (int64, int64, error) {
	var total, completed int64
	for _, item := range m.items {
		if item.Status == model.InterventionStatusCancelled {
			continue
		}
		if item.PlannedDate.Before(from) || !item.PlannedDate.Before(to) {
			continue
		}
		total++
		if item.Status == model.InterventionStatusCompleted {
			completed++
		}
	}
	return total, completed, nil
}

func (m *mockInterventionRepo) byContract(contractID uuid.UUID) []model.Intervention {
	var result []model.Intervention
	for _, item := range m.items {
		if item.ContractID != nil && *item.ContractID == contractID {
			result = append(result, *item)
		}
	}
	return result
}

// mock AuditRepository

type mockAuditRepo struct {
	entries  []model.AuditEntry
	failWith error
}

func (m *mockAuditRepo) Record(_ context.Context, entry model.AuditEntry) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.entries = append(m.entries, entry)
	return nil
}

// test fixture

type fixture struct {
	svc           *PlanningService
	contracts     *mockContractRepo
	interventions *mockInterventionRepo
	audit         *mockAuditRepo
}

func newFixture(now time.Time) *fixture {
	contracts := newMockContractRepo()
	interventions := newMockInterventionRepo()
	audit := &mockAuditRepo{}

	cfg := &config.Config{
		Planning: config.PlanningConfig{
			HorizonDays:        365,
			DefaultDurationMin: 60,
			DueSoonDays:        7,
			ExpiryWarningDays:  30,
		},
	}

	repo := &repository.Repository{
		Contracts:     contracts,
		Interventions: interventions,
		Audit:         audit,
	}
	svc := NewPlanningService(repo, fixedClock{now: now}, cfg, zerolog.Nop())

	return &fixture{
		svc:           svc,
		contracts:     contracts,
		interventions: interventions,
		audit:         audit,
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func freqPtr(f model.Frequency) *model.Frequency { return &f }
func datePtr(t time.Time) *time.Time             { return &t }
func intPtr(v int) *int                          { return &v }
