package model

import (
	"time"

	"github.com/google/uuid"
)

type InterventionType string

const (
	InterventionTypeOperation InterventionType = "OPERATION"
	InterventionTypeControl   InterventionType = "CONTROL"
)

type InterventionStatus string

const (
	InterventionStatusToSchedule InterventionStatus = "TO_SCHEDULE"
	InterventionStatusScheduled  InterventionStatus = "SCHEDULED"
	InterventionStatusCompleted  InterventionStatus = "COMPLETED"
	InterventionStatusPostponed  InterventionStatus = "POSTPONED"
	InterventionStatusCancelled  InterventionStatus = "CANCELLED"
)

// Terminal reports whether the status admits no further transitions.
func (s InterventionStatus) Terminal() bool {
	return s == InterventionStatusCompleted || s == InterventionStatusCancelled
}

// Intervention is one scheduled or completed field visit. CompletedDate,
// not PlannedDate, drives the computation of the next occurrence.
type Intervention struct {
	ID         uuid.UUID
	ClientID   uuid.UUID
	ContractID *uuid.UUID
	SiteID     *uuid.UUID

	Type   InterventionType
	Status InterventionStatus

	PlannedDate   time.Time
	PlannedTime   *string // time of day, "15:04"
	DurationMin   int
	CompletedDate *time.Time

	Prestation string
	Notes      string

	CreatedAt time.Time
	UpdatedAt time.Time
}
