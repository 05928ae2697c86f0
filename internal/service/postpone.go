package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adlet/fieldops-planning/internal/model"
)

// Postpone moves a pending intervention to a new planned date and appends
// a timestamped reason to its notes. Prior notes are preserved; the
// completion date and contract linkage are untouched.
func (s *PlanningService) Postpone(ctx context.Context, interventionID, actorID uuid.UUID, newDate time.Time, reason string) (*model.Intervention, error) {
	if newDate.IsZero() {
		return nil, fmt.Errorf("%w: new planned date is required", ErrInvalidInput)
	}

	intervention, err := s.interventions.GetByID(ctx, interventionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: intervention %s", ErrNotFound, interventionID)
		}
		return nil, err
	}

	if intervention.Status.Terminal() {
		return nil, fmt.Errorf("%w: intervention %s is %s", ErrInvalidState, interventionID, intervention.Status)
	}

	newDate = dateOnly(newDate)
	previousDate := dateOnly(intervention.PlannedDate)

	note := fmt.Sprintf("[%s] postponed from %s to %s",
		s.clock.Now().Format("2006-01-02 15:04"),
		previousDate.Format("2006-01-02"),
		newDate.Format("2006-01-02"))
	if reason != "" {
		note += ": " + reason
	}

	intervention.Status = model.InterventionStatusPostponed
	intervention.PlannedDate = newDate
	intervention.Notes = appendNote(intervention.Notes, note)

	if err := s.interventions.Update(ctx, intervention); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actorID, "intervention.postponed", "intervention", intervention.ID,
		fmt.Sprintf("moved from %s to %s", previousDate.Format("2006-01-02"), newDate.Format("2006-01-02")))

	return intervention, nil
}
