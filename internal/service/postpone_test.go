package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adlet/fieldops-planning/internal/model"
)

func TestPostponeNotFound(t *testing.T) {
	f := newFixture(date(2024, time.March, 10))

	_, err := f.svc.Postpone(context.Background(), uuid.New(), uuid.New(), date(2024, time.April, 1), "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPostponeRequiresDate(t *testing.T) {
	f := newFixture(date(2024, time.March, 10))

	_, err := f.svc.Postpone(context.Background(), uuid.New(), uuid.New(), time.Time{}, "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPostponeRejectsTerminal(t *testing.T) {
	f := newFixture(date(2024, time.March, 10))
	intervention := &model.Intervention{
		ClientID:    uuid.New(),
		Type:        model.InterventionTypeOperation,
		Status:      model.InterventionStatusCompleted,
		PlannedDate: date(2024, time.March, 1),
	}
	f.interventions.add(intervention)

	_, err := f.svc.Postpone(context.Background(), intervention.ID, uuid.New(), date(2024, time.April, 1), "")
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestPostponeMovesDateAndAppendsReason(t *testing.T) {
	f := newFixture(date(2024, time.March, 10))
	intervention := &model.Intervention{
		ClientID:    uuid.New(),
		Type:        model.InterventionTypeOperation,
		Status:      model.InterventionStatusScheduled,
		PlannedDate: date(2024, time.March, 15),
		Notes:       "gate key at reception",
	}
	f.interventions.add(intervention)

	updated, err := f.svc.Postpone(context.Background(), intervention.ID, uuid.New(), date(2024, time.April, 2), "client on holiday")
	require.NoError(t, err)

	assert.Equal(t, model.InterventionStatusPostponed, updated.Status)
	assert.Equal(t, date(2024, time.April, 2), updated.PlannedDate)
	// Prior notes survive as a prefix.
	assert.True(t, strings.HasPrefix(updated.Notes, "gate key at reception"))
	assert.Contains(t, updated.Notes, "postponed from 2024-03-15 to 2024-04-02")
	assert.Contains(t, updated.Notes, "client on holiday")
	assert.Nil(t, updated.CompletedDate)
}

func TestPostponeWritesAudit(t *testing.T) {
	f := newFixture(date(2024, time.March, 10))
	intervention := &model.Intervention{
		ClientID:    uuid.New(),
		Type:        model.InterventionTypeControl,
		Status:      model.InterventionStatusToSchedule,
		PlannedDate: date(2024, time.March, 20),
	}
	f.interventions.add(intervention)
	actorID := uuid.New()

	_, err := f.svc.Postpone(context.Background(), intervention.ID, actorID, date(2024, time.March, 25), "")
	require.NoError(t, err)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, "intervention.postponed", f.audit.entries[0].Action)
	assert.Equal(t, actorID, f.audit.entries[0].ActorID)
}
