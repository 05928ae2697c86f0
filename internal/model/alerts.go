package model

import (
	"time"

	"github.com/google/uuid"
)

// OneOffNearEnd flags a ONE_OFF contract down to its last planned operation.
type OneOffNearEnd struct {
	ContractID          uuid.UUID
	ClientID            uuid.UUID
	ContractName        string
	RemainingOperations int
}

// AnnualNearExpiry flags an ANNUAL contract whose end date falls inside the
// requested window.
type AnnualNearExpiry struct {
	ContractID    uuid.UUID
	ClientID      uuid.UUID
	ContractName  string
	EndDate       time.Time
	DaysRemaining int
	AutoContinue  bool
}

// MonthRealization is the completed/total ratio for interventions planned
// in one calendar month.
type MonthRealization struct {
	Year      int
	Month     time.Month
	Total     int64
	Completed int64
	RatePct   int
}

// PlanningStats aggregates the operational-risk counters for the dashboard.
type PlanningStats struct {
	Overdue                  int64
	DueSoon                  int64
	ContractsWithoutUpcoming int64
	OneOffNearEnd            int64
	AnnualNearExpiry         int64
	CurrentMonth             MonthRealization
	PreviousMonth            MonthRealization
}
