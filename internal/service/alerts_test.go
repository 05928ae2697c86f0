package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adlet/fieldops-planning/internal/model"
)

func addIntervention(f *fixture, contractID *uuid.UUID, kind model.InterventionType, status model.InterventionStatus, planned time.Time) *model.Intervention {
	intervention := &model.Intervention{
		ClientID:    uuid.New(),
		ContractID:  contractID,
		Type:        kind,
		Status:      status,
		PlannedDate: planned,
	}
	f.interventions.add(intervention)
	return intervention
}

func TestOverdue(t *testing.T) {
	f := newFixture(date(2024, time.June, 15))

	late := addIntervention(f, nil, model.InterventionTypeOperation, model.InterventionStatusScheduled, date(2024, time.June, 10))
	addIntervention(f, nil, model.InterventionTypeOperation, model.InterventionStatusCompleted, date(2024, time.June, 1))
	addIntervention(f, nil, model.InterventionTypeOperation, model.InterventionStatusCancelled, date(2024, time.June, 5))
	addIntervention(f, nil, model.InterventionTypeOperation, model.InterventionStatusToSchedule, date(2024, time.June, 15))

	overdue, err := f.svc.Overdue(context.Background())
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, late.ID, overdue[0].ID)
}

func TestDueWithin(t *testing.T) {
	f := newFixture(date(2024, time.June, 15))

	today := addIntervention(f, nil, model.InterventionTypeOperation, model.InterventionStatusToSchedule, date(2024, time.June, 15))
	atLimit := addIntervention(f, nil, model.InterventionTypeOperation, model.InterventionStatusToSchedule, date(2024, time.June, 22))
	addIntervention(f, nil, model.InterventionTypeOperation, model.InterventionStatusToSchedule, date(2024, time.June, 23))
	addIntervention(f, nil, model.InterventionTypeOperation, model.InterventionStatusScheduled, date(2024, time.June, 16))

	due, err := f.svc.DueWithin(context.Background(), 7)
	require.NoError(t, err)

	ids := map[uuid.UUID]bool{}
	for _, item := range due {
		ids[item.ID] = true
	}
	assert.Len(t, due, 2)
	assert.True(t, ids[today.ID])
	assert.True(t, ids[atLimit.ID])
}

func TestDueWithinRejectsNonPositiveDays(t *testing.T) {
	f := newFixture(date(2024, time.June, 15))

	_, err := f.svc.DueWithin(context.Background(), 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestContractsWithoutUpcoming(t *testing.T) {
	f := newFixture(date(2024, time.June, 15))

	bare := &model.Contract{Type: model.ContractTypeAnnual, Status: model.ContractStatusActive, Name: "bare"}
	covered := &model.Contract{Type: model.ContractTypeAnnual, Status: model.ContractStatusActive, Name: "covered"}
	pastOnly := &model.Contract{Type: model.ContractTypeAnnual, Status: model.ContractStatusActive, Name: "past-only"}
	suspended := &model.Contract{Type: model.ContractTypeAnnual, Status: model.ContractStatusSuspended, Name: "suspended"}
	f.contracts.add(bare)
	f.contracts.add(covered)
	f.contracts.add(pastOnly)
	f.contracts.add(suspended)

	coveredID := covered.ID
	addIntervention(f, &coveredID, model.InterventionTypeOperation, model.InterventionStatusToSchedule, date(2024, time.July, 1))
	pastOnlyID := pastOnly.ID
	addIntervention(f, &pastOnlyID, model.InterventionTypeOperation, model.InterventionStatusScheduled, date(2024, time.May, 1))

	result, err := f.svc.ContractsWithoutUpcoming(context.Background())
	require.NoError(t, err)

	names := map[string]bool{}
	for _, contract := range result {
		names[contract.Name] = true
	}
	assert.Len(t, result, 2)
	assert.True(t, names["bare"])
	assert.True(t, names["past-only"])
}

func TestOneOffNearEnd(t *testing.T) {
	f := newFixture(date(2024, time.June, 15))

	nearEnd := &model.Contract{Type: model.ContractTypeOneOff, Status: model.ContractStatusActive, Name: "near-end", OperationCount: 3}
	plenty := &model.Contract{Type: model.ContractTypeOneOff, Status: model.ContractStatusActive, Name: "plenty", OperationCount: 3}
	annual := &model.Contract{Type: model.ContractTypeAnnual, Status: model.ContractStatusActive, Name: "annual"}
	f.contracts.add(nearEnd)
	f.contracts.add(plenty)
	f.contracts.add(annual)

	nearEndID := nearEnd.ID
	addIntervention(f, &nearEndID, model.InterventionTypeOperation, model.InterventionStatusCompleted, date(2024, time.May, 1))
	addIntervention(f, &nearEndID, model.InterventionTypeOperation, model.InterventionStatusCompleted, date(2024, time.June, 1))
	addIntervention(f, &nearEndID, model.InterventionTypeOperation, model.InterventionStatusToSchedule, date(2024, time.July, 1))

	plentyID := plenty.ID
	addIntervention(f, &plentyID, model.InterventionTypeOperation, model.InterventionStatusToSchedule, date(2024, time.July, 1))
	addIntervention(f, &plentyID, model.InterventionTypeOperation, model.InterventionStatusToSchedule, date(2024, time.August, 1))

	result, err := f.svc.OneOffNearEnd(context.Background())
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, nearEnd.ID, result[0].ContractID)
	assert.Equal(t, 1, result[0].RemainingOperations)
}

func TestOneOffNearEndDropsExhaustedContract(t *testing.T) {
	f := newFixture(date(2024, time.June, 15))

	contract := &model.Contract{Type: model.ContractTypeOneOff, Status: model.ContractStatusActive, OperationCount: 1}
	f.contracts.add(contract)
	contractID := contract.ID
	last := addIntervention(f, &contractID, model.InterventionTypeOperation, model.InterventionStatusScheduled, date(2024, time.June, 10))

	result, err := f.svc.OneOffNearEnd(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)

	_, err = f.svc.Complete(context.Background(), last.ID, uuid.New(), CompleteOptions{})
	require.NoError(t, err)

	// Remaining count is now 0: the contract must drop from the alert.
	result, err = f.svc.OneOffNearEnd(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestAnnualNearExpiry(t *testing.T) {
	f := newFixture(date(2024, time.June, 15))

	soon := &model.Contract{
		Type: model.ContractTypeAnnual, Status: model.ContractStatusActive,
		Name: "soon", EndDate: datePtr(date(2024, time.July, 5)), AutoContinue: true,
	}
	far := &model.Contract{
		Type: model.ContractTypeAnnual, Status: model.ContractStatusActive,
		Name: "far", EndDate: datePtr(date(2025, time.March, 1)),
	}
	expired := &model.Contract{
		Type: model.ContractTypeAnnual, Status: model.ContractStatusActive,
		Name: "expired", EndDate: datePtr(date(2024, time.May, 1)),
	}
	open := &model.Contract{Type: model.ContractTypeAnnual, Status: model.ContractStatusActive, Name: "open"}
	f.contracts.add(soon)
	f.contracts.add(far)
	f.contracts.add(expired)
	f.contracts.add(open)

	result, err := f.svc.AnnualNearExpiry(context.Background(), 30)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, soon.ID, result[0].ContractID)
	assert.Equal(t, 20, result[0].DaysRemaining)
	assert.True(t, result[0].AutoContinue)
}

func TestStats(t *testing.T) {
	f := newFixture(date(2024, time.June, 15))

	// Overdue and due-soon rows.
	addIntervention(f, nil, model.InterventionTypeOperation, model.InterventionStatusScheduled, date(2024, time.June, 1))
	addIntervention(f, nil, model.InterventionTypeOperation, model.InterventionStatusToSchedule, date(2024, time.June, 17))

	// Current month: 3 planned (one overdue scheduled, one due, one completed).
	completed := addIntervention(f, nil, model.InterventionTypeOperation, model.InterventionStatusCompleted, date(2024, time.June, 5))
	completed.CompletedDate = datePtr(date(2024, time.June, 5))

	// Previous month: 1 of 2 completed.
	addIntervention(f, nil, model.InterventionTypeOperation, model.InterventionStatusCompleted, date(2024, time.May, 10))
	addIntervention(f, nil, model.InterventionTypeOperation, model.InterventionStatusPostponed, date(2024, time.May, 20))

	stats, err := f.svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.Overdue) // June 1 scheduled + May 20 postponed
	assert.Equal(t, int64(1), stats.DueSoon)
	assert.Equal(t, int64(3), stats.CurrentMonth.Total)
	assert.Equal(t, int64(1), stats.CurrentMonth.Completed)
	assert.Equal(t, 33, stats.CurrentMonth.RatePct)
	assert.Equal(t, int64(2), stats.PreviousMonth.Total)
	assert.Equal(t, int64(1), stats.PreviousMonth.Completed)
	assert.Equal(t, 50, stats.PreviousMonth.RatePct)
}
