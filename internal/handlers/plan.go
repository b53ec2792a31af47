package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clearbridge/clearbridge-backend/internal/platform/logger"
	"github.com/clearbridge/clearbridge-backend/internal/services"
	"github.com/clearbridge/clearbridge-backend/internal/types"
)

type PlanHandler struct {
	log         *logger.Logger
	recommender services.PlanRecommenderService
	activation  services.ActivationService
	planService services.PlanService
}

func NewPlanHandler(
	log *logger.Logger,
	recommender services.PlanRecommenderService,
	activation services.ActivationService,
	planService services.PlanService,
) *PlanHandler {
	return &PlanHandler{
		log:         log.With("handler", "PlanHandler"),
		recommender: recommender,
		activation:  activation,
		planService: planService,
	}
}

// POST /clients/:id/plans/recommend
func (h *PlanHandler) GenerateRecommendation(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_client_id", err)
		return
	}
	plan, err := h.recommender.GenerateRecommendation(c.Request.Context(), clientID)
	if err != nil {
		h.log.Warn("GenerateRecommendation failed", "client_id", clientID.String(), "error", err)
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"plan": plan})
}

// POST /plans/:id/activate
func (h *PlanHandler) ActivatePlan(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_plan_id", err)
		return
	}
	result, err := h.activation.Activate(c.Request.Context(), planID)
	if err != nil {
		h.log.Warn("ActivatePlan failed", "plan_id", planID.String(), "error", err)
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, result)
}

// GET /plans/:id
func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_plan_id", err)
		return
	}
	plan, err := h.planService.GetPlan(c.Request.Context(), planID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"plan": plan})
}

// GET /clients/:id/plans?status=
func (h *PlanHandler) ListClientPlans(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_client_id", err)
		return
	}
	status := c.Query("status")
	switch status {
	case "", types.PlanStatusDraft, types.PlanStatusSuggested, types.PlanStatusActive, types.PlanStatusArchived:
	default:
		RespondError(c, http.StatusBadRequest, "invalid_status_filter", nil)
		return
	}
	plans, err := h.planService.ListPlansForClient(c.Request.Context(), clientID, status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"plans": plans})
}

// GET /plans/:id/diffs
func (h *PlanHandler) ListPlanDiffs(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_plan_id", err)
		return
	}
	diffs, err := h.planService.ListDiffsForPlan(c.Request.Context(), planID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"diffs": diffs})
}
