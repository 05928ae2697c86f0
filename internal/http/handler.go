package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adlet/fieldops-planning/internal/http/middleware"
	"github.com/adlet/fieldops-planning/internal/service"
)

type Handler struct {
	planning *service.PlanningService
	log      zerolog.Logger
}

func NewHandler(planning *service.PlanningService, log zerolog.Logger) *Handler {
	return &Handler{planning: planning, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.POST("/contracts/:id/schedule", h.generateSchedule)
	protected.POST("/interventions/:id/complete", h.completeIntervention)
	protected.POST("/interventions/:id/postpone", h.postponeIntervention)

	protected.GET("/alerts/overdue", h.overdue)
	protected.GET("/alerts/due-soon", h.dueSoon)
	protected.GET("/alerts/contracts-without-upcoming", h.contractsWithoutUpcoming)
	protected.GET("/alerts/one-off-near-end", h.oneOffNearEnd)
	protected.GET("/alerts/annual-near-expiry", h.annualNearExpiry)
	protected.GET("/stats", h.stats)
}

func (h *Handler) generateSchedule(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}

	result, err := h.planning.GenerateSchedule(c.Request.Context(), contractID, principal.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":         result.Count,
		"interventions": toInterventionResponses(result.Interventions),
	})
}

type completeRequest struct {
	Notes         string `json:"notes"`
	CreateNext    bool   `json:"create_next"`
	CompletedDate string `json:"completed_date"`
}

func (h *Handler) completeIntervention(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	interventionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid intervention id"})
		return
	}

	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := service.CompleteOptions{
		Notes:      req.Notes,
		CreateNext: req.CreateNext,
	}
	if req.CompletedDate != "" {
		completedDate, err := parseDate(req.CompletedDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid completed_date"})
			return
		}
		opts.CompletedDate = &completedDate
	}

	result, err := h.planning.Complete(c.Request.Context(), interventionID, principal.UserID, opts)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := completeResponse{
		Intervention:        toInterventionResponse(*result.Intervention),
		NextCreated:         result.NextCreated,
		SuggestedDate:       formatDatePtr(result.SuggestedDate),
		RemainingOperations: result.RemainingOperations,
	}
	if result.NextIntervention != nil {
		next := toInterventionResponse(*result.NextIntervention)
		resp.NextIntervention = &next
	}

	c.JSON(http.StatusOK, resp)
}

type postponeRequest struct {
	NewDate string `json:"new_date" binding:"required"`
	Reason  string `json:"reason"`
}

func (h *Handler) postponeIntervention(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	interventionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid intervention id"})
		return
	}

	var req postponeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newDate, err := parseDate(req.NewDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid new_date"})
		return
	}

	intervention, err := h.planning.Postpone(c.Request.Context(), interventionID, principal.UserID, newDate, req.Reason)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toInterventionResponse(*intervention))
}

func (h *Handler) overdue(c *gin.Context) {
	items, err := h.planning.Overdue(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"interventions": toInterventionResponses(items)})
}

func (h *Handler) dueSoon(c *gin.Context) {
	days, err := parseDays(c.DefaultQuery("days", "7"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
		return
	}

	items, err := h.planning.DueWithin(c.Request.Context(), days)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"interventions": toInterventionResponses(items)})
}

func (h *Handler) contractsWithoutUpcoming(c *gin.Context) {
	contracts, err := h.planning.ContractsWithoutUpcoming(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	result := make([]contractResponse, 0, len(contracts))
	for _, contract := range contracts {
		result = append(result, toContractResponse(contract))
	}
	c.JSON(http.StatusOK, gin.H{"contracts": result})
}

func (h *Handler) oneOffNearEnd(c *gin.Context) {
	alerts, err := h.planning.OneOffNearEnd(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	result := make([]oneOffNearEndResponse, 0, len(alerts))
	for _, alert := range alerts {
		result = append(result, oneOffNearEndResponse{
			ContractID:          alert.ContractID.String(),
			ClientID:            alert.ClientID.String(),
			ContractName:        alert.ContractName,
			RemainingOperations: alert.RemainingOperations,
		})
	}
	c.JSON(http.StatusOK, gin.H{"contracts": result})
}

func (h *Handler) annualNearExpiry(c *gin.Context) {
	days, err := parseDays(c.DefaultQuery("days", "30"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
		return
	}

	alerts, err := h.planning.AnnualNearExpiry(c.Request.Context(), days)
	if err != nil {
		h.handleError(c, err)
		return
	}

	result := make([]annualNearExpiryResponse, 0, len(alerts))
	for _, alert := range alerts {
		result = append(result, annualNearExpiryResponse{
			ContractID:    alert.ContractID.String(),
			ClientID:      alert.ClientID.String(),
			ContractName:  alert.ContractName,
			EndDate:       alert.EndDate.Format("2006-01-02"),
			DaysRemaining: alert.DaysRemaining,
			AutoContinue:  alert.AutoContinue,
		})
	}
	c.JSON(http.StatusOK, gin.H{"contracts": result})
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.planning.Stats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, statsResponse{
		Overdue:                  stats.Overdue,
		DueSoon:                  stats.DueSoon,
		ContractsWithoutUpcoming: stats.ContractsWithoutUpcoming,
		OneOffNearEnd:            stats.OneOffNearEnd,
		AnnualNearExpiry:         stats.AnnualNearExpiry,
		CurrentMonth:             toMonthRealizationResponse(stats.CurrentMonth),
		PreviousMonth:            toMonthRealizationResponse(stats.PreviousMonth),
	})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("planning operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

func parseDays(raw string) (int, error) {
	days, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || days <= 0 {
		return 0, service.ErrInvalidInput
	}
	return days, nil
}
