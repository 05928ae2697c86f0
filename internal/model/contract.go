package model

import (
	"time"

	"github.com/google/uuid"
)

type ContractType string

const (
	ContractTypeAnnual ContractType = "ANNUAL"
	ContractTypeOneOff ContractType = "ONE_OFF"
)

type ContractStatus string

const (
	ContractStatusActive     ContractStatus = "ACTIVE"
	ContractStatusSuspended  ContractStatus = "SUSPENDED"
	ContractStatusTerminated ContractStatus = "TERMINATED"
)

// Contract is a client service agreement. Frequency fields at this level
// apply only to sites without a ContractSite override.
type Contract struct {
	ID       uuid.UUID
	ClientID uuid.UUID
	Name     string
	Type     ContractType
	Status   ContractStatus

	StartDate time.Time
	EndDate   *time.Time

	OperationFrequency     *Frequency
	OperationFrequencyDays *int // read only when frequency is CUSTOM
	FirstOperationDate     *time.Time
	ControlFrequency       *Frequency
	ControlFrequencyDays   *int
	FirstControlDate       *time.Time

	// OperationCount bounds generation for ONE_OFF contracts.
	OperationCount int
	AutoContinue   bool
	Prestation     string

	Sites []ContractSite `gorm:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContractSite overrides prestations and frequencies for one site of a
// contract. Replacing a contract's site list drops all prior rows.
type ContractSite struct {
	ID         uuid.UUID
	ContractID uuid.UUID
	SiteID     uuid.UUID

	Prestations []string `gorm:"-"`

	OperationFrequency     *Frequency
	OperationFrequencyDays *int
	FirstOperationDate     *time.Time
	ControlFrequency       *Frequency
	ControlFrequencyDays   *int
	FirstControlDate       *time.Time

	OperationCount    int
	ControlVisitCount int
}
