package http

import (
	"time"

	"github.com/adlet/fieldops-planning/internal/model"
)

type interventionResponse struct {
	ID            string  `json:"id"`
	ClientID      string  `json:"client_id"`
	ContractID    *string `json:"contract_id,omitempty"`
	SiteID        *string `json:"site_id,omitempty"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	PlannedDate   string  `json:"planned_date"`
	PlannedTime   *string `json:"planned_time,omitempty"`
	DurationMin   int     `json:"duration_min"`
	CompletedDate *string `json:"completed_date,omitempty"`
	Prestation    string  `json:"prestation"`
	Notes         string  `json:"notes"`
}

func toInterventionResponse(i model.Intervention) interventionResponse {
	resp := interventionResponse{
		ID:          i.ID.String(),
		ClientID:    i.ClientID.String(),
		Type:        string(i.Type),
		Status:      string(i.Status),
		PlannedDate: i.PlannedDate.Format("2006-01-02"),
		PlannedTime: i.PlannedTime,
		DurationMin: i.DurationMin,
		Prestation:  i.Prestation,
		Notes:       i.Notes,
	}
	if i.ContractID != nil {
		s := i.ContractID.String()
		resp.ContractID = &s
	}
	if i.SiteID != nil {
		s := i.SiteID.String()
		resp.SiteID = &s
	}
	if i.CompletedDate != nil {
		s := i.CompletedDate.Format("2006-01-02")
		resp.CompletedDate = &s
	}
	return resp
}

func toInterventionResponses(items []model.Intervention) []interventionResponse {
	result := make([]interventionResponse, 0, len(items))
	for _, item := range items {
		result = append(result, toInterventionResponse(item))
	}
	return result
}

type contractResponse struct {
	ID       string  `json:"id"`
	ClientID string  `json:"client_id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Status   string  `json:"status"`
	EndDate  *string `json:"end_date,omitempty"`
}

func toContractResponse(c model.Contract) contractResponse {
	resp := contractResponse{
		ID:       c.ID.String(),
		ClientID: c.ClientID.String(),
		Name:     c.Name,
		Type:     string(c.Type),
		Status:   string(c.Status),
	}
	if c.EndDate != nil {
		s := c.EndDate.Format("2006-01-02")
		resp.EndDate = &s
	}
	return resp
}

type completeResponse struct {
	Intervention        interventionResponse  `json:"intervention"`
	NextCreated         bool                  `json:"next_created"`
	NextIntervention    *interventionResponse `json:"next_intervention,omitempty"`
	SuggestedDate       *string               `json:"suggested_date,omitempty"`
	RemainingOperations *int64                `json:"remaining_operations,omitempty"`
}

type oneOffNearEndResponse struct {
	ContractID          string `json:"contract_id"`
	ClientID            string `json:"client_id"`
	ContractName        string `json:"contract_name"`
	RemainingOperations int    `json:"remaining_operations"`
}

type annualNearExpiryResponse struct {
	ContractID    string `json:"contract_id"`
	ClientID      string `json:"client_id"`
	ContractName  string `json:"contract_name"`
	EndDate       string `json:"end_date"`
	DaysRemaining int    `json:"days_remaining"`
	AutoContinue  bool   `json:"auto_continue"`
}

type monthRealizationResponse struct {
	Year      int   `json:"year"`
	Month     int   `json:"month"`
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	RatePct   int   `json:"rate_pct"`
}

type statsResponse struct {
	Overdue                  int64                    `json:"overdue"`
	DueSoon                  int64                    `json:"due_soon"`
	ContractsWithoutUpcoming int64                    `json:"contracts_without_upcoming"`
	OneOffNearEnd            int64                    `json:"one_off_near_end"`
	AnnualNearExpiry         int64                    `json:"annual_near_expiry"`
	CurrentMonth             monthRealizationResponse `json:"current_month"`
	PreviousMonth            monthRealizationResponse `json:"previous_month"`
}

func toMonthRealizationResponse(m model.MonthRealization) monthRealizationResponse {
	return monthRealizationResponse{
		Year:      m.Year,
		Month:     int(m.Month),
		Total:     m.Total,
		Completed: m.Completed,
		RatePct:   m.RatePct,
	}
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
