package api

import (
	"errors"
	"net/http"

	"egym/plan-service/internal/llm"
	"egym/plan-service/internal/planner"
	"egym/plan-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler serves workout plan operations.
type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

type RenamePlanRequest struct {
	Name string `json:"name" binding:"required"`
}

// GeneratePlan runs the full generation pipeline and returns the new
// plan's ID.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identity")
		return
	}

	planID, err := h.planService.GeneratePlan(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrStillPending):
			// Timed out and nothing persisted yet; the client should poll
			// the active plan rather than retry generation immediately.
			c.JSON(http.StatusAccepted, gin.H{"status": "pending"})
		case errors.Is(err, llm.ErrGenerationTimedOut):
			abortWithError(c, http.StatusGatewayTimeout, "Plan generation timed out")
		case errors.Is(err, llm.ErrGenerationFailed):
			abortWithError(c, http.StatusBadGateway, "Plan generation failed")
		case errors.Is(err, planner.ErrInvalidPlanFormat), errors.Is(err, planner.ErrSchemaViolation):
			abortWithError(c, http.StatusInternalServerError, "Generated plan did not pass validation")
		case errors.Is(err, service.ErrPersistenceFailed):
			abortWithError(c, http.StatusInternalServerError, "Failed to save workout plan")
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during plan generation")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"workoutPlanId": planID.Hex()})
}

// GetPlans lists the caller's plans, newest first.
func (h *PlanHandler) GetPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identity")
		return
	}

	plans, err := h.planService.GetPlans(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load plans")
		return
	}

	c.JSON(http.StatusOK, plans)
}

// GetPlan returns a single plan the caller owns.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identity")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), userID, planID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load plan")
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// GetActivePlan returns the plan the caller's active pointer references.
func (h *PlanHandler) GetActivePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identity")
		return
	}

	plan, err := h.planService.GetActivePlan(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, "No active plan")
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to load active plan")
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// ActivatePlan points the caller's active-plan pointer at an existing plan.
func (h *PlanHandler) ActivatePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identity")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	if err := h.planService.SetActivePlan(c.Request.Context(), userID, planID); err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to activate plan")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"activePlanId": planID.Hex()})
}

// RenamePlan changes a plan's display name.
func (h *PlanHandler) RenamePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user identity")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	var req RenamePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Plan name is required")
		return
	}

	if err := h.planService.RenamePlan(c.Request.Context(), userID, planID, req.Name); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to rename plan")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": planID.Hex(), "name": req.Name})
}
