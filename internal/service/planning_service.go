package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/adlet/fieldops-planning/internal/config"
	"github.com/adlet/fieldops-planning/internal/model"
	"github.com/adlet/fieldops-planning/internal/repository"
)

// PlanningService owns the recurring-intervention schedule: generation on
// contract activation, advancement on completion, postponement and the
// alert queries. All state lives in the store; every call re-reads what
// it needs.
type PlanningService struct {
	contracts     repository.ContractRepository
	interventions repository.InterventionRepository
	audit         repository.AuditRepository
	clock         Clock
	cfg           *config.Config
	log           zerolog.Logger
}

func NewPlanningService(repo *repository.Repository, clock Clock, cfg *config.Config, log zerolog.Logger) *PlanningService {
	return &PlanningService{
		contracts:     repo.Contracts,
		interventions: repo.Interventions,
		audit:         repo.Audit,
		clock:         clock,
		cfg:           cfg,
		log:           log,
	}
}

type GenerateScheduleResult struct {
	Count         int
	Interventions []model.Intervention
}

// scheduleAxis is one resolved frequency series: a (site, type) pair with
// its prestations, recurrence and one-off bound.
type scheduleAxis struct {
	siteID      *uuid.UUID
	kind        model.InterventionType
	prestations []string
	frequency   model.Frequency
	customDays  int
	firstDate   time.Time
	count       int // ONE_OFF occurrence bound; ignored for ANNUAL
}

// GenerateSchedule replaces the contract's future schedule from scratch.
// Non-terminal interventions are deleted and the new set inserted in one
// transaction; COMPLETED and CANCELLED rows are never touched.
func (s *PlanningService) GenerateSchedule(ctx context.Context, contractID, actorID uuid.UUID) (*GenerateScheduleResult, error) {
	contract, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: contract %s", ErrNotFound, contractID)
		}
		return nil, err
	}

	if contract.Status != model.ContractStatusActive {
		return nil, fmt.Errorf("%w: contract %s is %s, schedule requires ACTIVE", ErrInvalidState, contractID, contract.Status)
	}

	axes := s.scheduleAxes(contract)
	if len(axes) == 0 {
		return nil, fmt.Errorf("%w: contract %s has no resolvable frequency with a first date", ErrInvalidState, contractID)
	}

	today := dateOnly(s.clock.Now())
	var items []model.Intervention
	for _, axis := range axes {
		items = append(items, s.expandAxis(contract, axis, today)...)
	}

	if contract.Type == model.ContractTypeOneOff && len(items) == 0 {
		return nil, fmt.Errorf("%w: one-off contract %s needs an operation count above zero", ErrInvalidState, contractID)
	}

	if err := s.interventions.ReplaceSchedule(ctx, contract.ID, items); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actorID, "schedule.generated", "contract", contract.ID,
		fmt.Sprintf("generated %d interventions", len(items)))

	s.log.Info().
		Str("contract_id", contract.ID.String()).
		Int("count", len(items)).
		Msg("schedule generated")

	return &GenerateScheduleResult{Count: len(items), Interventions: items}, nil
}

// scheduleAxes resolves the frequency configuration per site. Site rows
// override contract-level fields; a contract without site rows runs in
// legacy mode on its own fields. An axis missing either its frequency or
// its first date generates nothing.
func (s *PlanningService) scheduleAxes(contract *model.Contract) []scheduleAxis {
	if len(contract.Sites) == 0 {
		return s.legacyAxes(contract)
	}

	var axes []scheduleAxis
	for i := range contract.Sites {
		site := &contract.Sites[i]
		siteID := site.SiteID

		prestations := site.Prestations
		if len(prestations) == 0 {
			prestations = []string{contract.Prestation}
		}

		operationCount := site.OperationCount
		if operationCount <= 0 {
			operationCount = contract.OperationCount
		}

		if site.OperationFrequency != nil && site.FirstOperationDate != nil {
			axes = append(axes, scheduleAxis{
				siteID:      &siteID,
				kind:        model.InterventionTypeOperation,
				prestations: prestations,
				frequency:   *site.OperationFrequency,
				customDays:  intOrZero(site.OperationFrequencyDays),
				firstDate:   dateOnly(*site.FirstOperationDate),
				count:       operationCount,
			})
		}

		if site.ControlFrequency != nil && site.FirstControlDate != nil {
			// Sites without an explicit control count reuse the
			// operation count. Legacy behavior, kept as is.
			controlCount := site.ControlVisitCount
			if controlCount <= 0 {
				controlCount = operationCount
			}
			axes = append(axes, scheduleAxis{
				siteID:      &siteID,
				kind:        model.InterventionTypeControl,
				prestations: prestations,
				frequency:   *site.ControlFrequency,
				customDays:  intOrZero(site.ControlFrequencyDays),
				firstDate:   dateOnly(*site.FirstControlDate),
				count:       controlCount,
			})
		}
	}
	return axes
}

func (s *PlanningService) legacyAxes(contract *model.Contract) []scheduleAxis {
	prestations := []string{contract.Prestation}

	var axes []scheduleAxis
	if contract.OperationFrequency != nil && contract.FirstOperationDate != nil {
		axes = append(axes, scheduleAxis{
			kind:        model.InterventionTypeOperation,
			prestations: prestations,
			frequency:   *contract.OperationFrequency,
			customDays:  intOrZero(contract.OperationFrequencyDays),
			firstDate:   dateOnly(*contract.FirstOperationDate),
			count:       contract.OperationCount,
		})
	}
	if contract.ControlFrequency != nil && contract.FirstControlDate != nil {
		axes = append(axes, scheduleAxis{
			kind:        model.InterventionTypeControl,
			prestations: prestations,
			frequency:   *contract.ControlFrequency,
			customDays:  intOrZero(contract.ControlFrequencyDays),
			firstDate:   dateOnly(*contract.FirstControlDate),
			// No separate control count at contract level; the
			// operation count bounds both series.
			count: contract.OperationCount,
		})
	}
	return axes
}

// expandAxis rolls one axis into concrete interventions. ONE_OFF series
// emit exactly count occurrences per prestation; ANNUAL series run from
// the first date to the contract end (or today + horizon when absent).
func (s *PlanningService) expandAxis(contract *model.Contract, axis scheduleAxis, today time.Time) []model.Intervention {
	var dates []time.Time

	switch contract.Type {
	case model.ContractTypeOneOff:
		date := axis.firstDate
		for i := 0; i < axis.count; i++ {
			dates = append(dates, date)
			date = NextDate(date, axis.frequency, axis.customDays)
		}
	default:
		bound := today.AddDate(0, 0, s.cfg.Planning.HorizonDays)
		if contract.EndDate != nil {
			bound = dateOnly(*contract.EndDate)
		}
		for date := axis.firstDate; !date.After(bound); date = NextDate(date, axis.frequency, axis.customDays) {
			dates = append(dates, date)
		}
	}

	items := make([]model.Intervention, 0, len(dates)*len(axis.prestations))
	for _, date := range dates {
		for _, prestation := range axis.prestations {
			contractID := contract.ID
			items = append(items, model.Intervention{
				ClientID:    contract.ClientID,
				ContractID:  &contractID,
				SiteID:      axis.siteID,
				Type:        axis.kind,
				Status:      model.InterventionStatusToSchedule,
				PlannedDate: date,
				DurationMin: s.cfg.Planning.DefaultDurationMin,
				Prestation:  prestation,
			})
		}
	}
	return items
}

// resolveFrequency finds the frequency governing an intervention: the
// matching site override when present, else the contract-level fields for
// the intervention's type.
func resolveFrequency(contract *model.Contract, siteID *uuid.UUID, kind model.InterventionType) (model.Frequency, int, bool) {
	if siteID != nil {
		for i := range contract.Sites {
			site := &contract.Sites[i]
			if site.SiteID != *siteID {
				continue
			}
			switch kind {
			case model.InterventionTypeControl:
				if site.ControlFrequency != nil {
					return *site.ControlFrequency, intOrZero(site.ControlFrequencyDays), true
				}
			default:
				if site.OperationFrequency != nil {
					return *site.OperationFrequency, intOrZero(site.OperationFrequencyDays), true
				}
			}
			break
		}
	}

	switch kind {
	case model.InterventionTypeControl:
		if contract.ControlFrequency != nil {
			return *contract.ControlFrequency, intOrZero(contract.ControlFrequencyDays), true
		}
	default:
		if contract.OperationFrequency != nil {
			return *contract.OperationFrequency, intOrZero(contract.OperationFrequencyDays), true
		}
	}
	return "", 0, false
}

// recordAudit is fire-and-forget: a failed audit write is logged and
// swallowed, never surfaced to the caller.
func (s *PlanningService) recordAudit(ctx context.Context, actorID uuid.UUID, action, entityType string, entityID uuid.UUID, details string) {
	entry := model.AuditEntry{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.log.Warn().Err(err).
			Str("action", action).
			Str("entity_id", entityID.String()).
			Msg("audit write failed")
	}
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
