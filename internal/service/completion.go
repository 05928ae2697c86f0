package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adlet/fieldops-planning/internal/model"
)

type CompleteOptions struct {
	Notes         string
	CreateNext    bool
	CompletedDate *time.Time
}

type CompleteResult struct {
	Intervention     *model.Intervention
	NextCreated      bool
	NextIntervention *model.Intervention
	SuggestedDate    *time.Time
	// RemainingOperations is set only for ONE_OFF contracts so callers
	// can alert when the series nears exhaustion.
	RemainingOperations *int64
}

// Complete marks an intervention done. The effective completion date is
// the caller-provided date when given, else the planned date — and it is
// that actual date, not the planned one, that seeds the next occurrence.
// ONE_OFF contracts never get a successor here; ANNUAL contracts get
// exactly one when auto-continuation applies.
func (s *PlanningService) Complete(ctx context.Context, interventionID, actorID uuid.UUID, opts CompleteOptions) (*CompleteResult, error) {
	intervention, err := s.interventions.GetByID(ctx, interventionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: intervention %s", ErrNotFound, interventionID)
		}
		return nil, err
	}

	if intervention.Status.Terminal() {
		return nil, fmt.Errorf("%w: intervention %s is already %s", ErrInvalidState, interventionID, intervention.Status)
	}

	completedDate := dateOnly(intervention.PlannedDate)
	if opts.CompletedDate != nil {
		completedDate = dateOnly(*opts.CompletedDate)
	}

	intervention.Status = model.InterventionStatusCompleted
	intervention.CompletedDate = &completedDate
	if opts.Notes != "" {
		intervention.Notes = appendNote(intervention.Notes, opts.Notes)
	}

	if err := s.interventions.Update(ctx, intervention); err != nil {
		return nil, err
	}

	result := &CompleteResult{Intervention: intervention}

	// The completion is committed at this point. A failure in the reads
	// below leaves the intervention COMPLETED with no successor created.
	if intervention.ContractID != nil {
		contract, err := s.contracts.GetByID(ctx, *intervention.ContractID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if contract != nil {
			if contract.Type == model.ContractTypeOneOff {
				remaining, err := s.interventions.CountRemainingOperations(ctx, contract.ID)
				if err != nil {
					return nil, err
				}
				result.RemainingOperations = &remaining
			} else if err := s.continueSeries(ctx, contract, intervention, completedDate, opts.CreateNext, result); err != nil {
				return nil, err
			}
		}
	}

	s.recordAudit(ctx, actorID, "intervention.completed", "intervention", intervention.ID,
		fmt.Sprintf("completed on %s", completedDate.Format("2006-01-02")))

	return result, nil
}

// continueSeries computes the suggested next date from the actual
// completion date and creates at most one successor. Chaining beyond that
// happens through subsequent completions.
func (s *PlanningService) continueSeries(ctx context.Context, contract *model.Contract, completed *model.Intervention, completedDate time.Time, createNext bool, result *CompleteResult) error {
	frequency, customDays, ok := resolveFrequency(contract, completed.SiteID, completed.Type)
	if !ok {
		return nil
	}

	suggested := NextDate(completedDate, frequency, customDays)
	result.SuggestedDate = &suggested

	if !contract.AutoContinue && !createNext {
		return nil
	}

	next := &model.Intervention{
		ClientID:    completed.ClientID,
		ContractID:  completed.ContractID,
		SiteID:      completed.SiteID,
		Type:        completed.Type,
		Status:      model.InterventionStatusToSchedule,
		PlannedDate: suggested,
		PlannedTime: completed.PlannedTime,
		DurationMin: completed.DurationMin,
		Prestation:  completed.Prestation,
	}
	if err := s.interventions.Create(ctx, next); err != nil {
		return err
	}

	result.NextCreated = true
	result.NextIntervention = next
	return nil
}

func appendNote(existing, note string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return existing
	}
	if existing == "" {
		return note
	}
	return existing + "\n" + note
}
