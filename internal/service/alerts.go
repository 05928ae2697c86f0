package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/adlet/fieldops-planning/internal/model"
)

// Read-only alert queries. Each call reads the store as of now; there is
// no caching layer.

// Overdue returns non-terminal interventions planned before today.
func (s *PlanningService) Overdue(ctx context.Context) ([]model.Intervention, error) {
	today := dateOnly(s.clock.Now())
	return s.interventions.ListOverdue(ctx, today)
}

// DueWithin returns TO_SCHEDULE interventions planned between today and
// today + days inclusive.
func (s *PlanningService) DueWithin(ctx context.Context, days int) ([]model.Intervention, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", ErrInvalidInput)
	}
	today := dateOnly(s.clock.Now())
	return s.interventions.ListDueWithin(ctx, today, today.AddDate(0, 0, days))
}

// ContractsWithoutUpcoming returns ACTIVE contracts with no TO_SCHEDULE or
// SCHEDULED intervention dated today or later.
func (s *PlanningService) ContractsWithoutUpcoming(ctx context.Context) ([]model.Contract, error) {
	contracts, err := s.contracts.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	today := dateOnly(s.clock.Now())
	var result []model.Contract
	for _, contract := range contracts {
		upcoming, err := s.interventions.CountUpcoming(ctx, contract.ID, today)
		if err != nil {
			return nil, err
		}
		if upcoming == 0 {
			result = append(result, contract)
		}
	}
	return result, nil
}

// OneOffNearEnd returns ACTIVE ONE_OFF contracts down to their last
// pending operation, with the exact remaining count.
func (s *PlanningService) OneOffNearEnd(ctx context.Context) ([]model.OneOffNearEnd, error) {
	contracts, err := s.contracts.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var result []model.OneOffNearEnd
	for _, contract := range contracts {
		if contract.Type != model.ContractTypeOneOff {
			continue
		}
		remaining, err := s.interventions.CountRemainingOperations(ctx, contract.ID)
		if err != nil {
			return nil, err
		}
		if remaining != 1 {
			continue
		}
		result = append(result, model.OneOffNearEnd{
			ContractID:          contract.ID,
			ClientID:            contract.ClientID,
			ContractName:        contract.Name,
			RemainingOperations: int(remaining),
		})
	}
	return result, nil
}

// AnnualNearExpiry returns ACTIVE ANNUAL contracts whose end date falls
// within the window, annotated with days remaining and the
// auto-continuation flag.
func (s *PlanningService) AnnualNearExpiry(ctx context.Context, withinDays int) ([]model.AnnualNearExpiry, error) {
	if withinDays <= 0 {
		return nil, fmt.Errorf("%w: withinDays must be positive", ErrInvalidInput)
	}

	contracts, err := s.contracts.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	today := dateOnly(s.clock.Now())
	limit := today.AddDate(0, 0, withinDays)

	var result []model.AnnualNearExpiry
	for _, contract := range contracts {
		if contract.Type != model.ContractTypeAnnual || contract.EndDate == nil {
			continue
		}
		endDate := dateOnly(*contract.EndDate)
		if endDate.Before(today) || endDate.After(limit) {
			continue
		}
		result = append(result, model.AnnualNearExpiry{
			ContractID:    contract.ID,
			ClientID:      contract.ClientID,
			ContractName:  contract.Name,
			EndDate:       endDate,
			DaysRemaining: int(endDate.Sub(today).Hours() / 24),
			AutoContinue:  contract.AutoContinue,
		})
	}
	return result, nil
}

// Stats aggregates the alert counters and the realization rates for the
// current and previous month.
func (s *PlanningService) Stats(ctx context.Context) (*model.PlanningStats, error) {
	overdue, err := s.Overdue(ctx)
	if err != nil {
		return nil, err
	}
	dueSoon, err := s.DueWithin(ctx, s.cfg.Planning.DueSoonDays)
	if err != nil {
		return nil, err
	}
	withoutUpcoming, err := s.ContractsWithoutUpcoming(ctx)
	if err != nil {
		return nil, err
	}
	oneOffNearEnd, err := s.OneOffNearEnd(ctx)
	if err != nil {
		return nil, err
	}
	nearExpiry, err := s.AnnualNearExpiry(ctx, s.cfg.Planning.ExpiryWarningDays)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	current, err := s.monthRealization(ctx, now.Year(), now.Month())
	if err != nil {
		return nil, err
	}
	prevYear, prevMonth := now.Year(), now.Month()-1
	if prevMonth < time.January {
		prevYear, prevMonth = prevYear-1, time.December
	}
	previous, err := s.monthRealization(ctx, prevYear, prevMonth)
	if err != nil {
		return nil, err
	}

	return &model.PlanningStats{
		Overdue:                  int64(len(overdue)),
		DueSoon:                  int64(len(dueSoon)),
		ContractsWithoutUpcoming: int64(len(withoutUpcoming)),
		OneOffNearEnd:            int64(len(oneOffNearEnd)),
		AnnualNearExpiry:         int64(len(nearExpiry)),
		CurrentMonth:             current,
		PreviousMonth:            previous,
	}, nil
}

func (s *PlanningService) monthRealization(ctx context.Context, year int, month time.Month) (model.MonthRealization, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	total, completed, err := s.interventions.CountForPeriod(ctx, start, end)
	if err != nil {
		return model.MonthRealization{}, err
	}

	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return model.MonthRealization{
		Year:      year,
		Month:     month,
		Total:     total,
		Completed: completed,
		RatePct:   rate,
	}, nil
}
