package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"billow/internal/services"
)

// PlannerHandler handles weekly planning requests.
type PlannerHandler struct {
	plannerService services.PlannerServicer
}

// NewPlannerHandler creates a new PlannerHandler.
func NewPlannerHandler(plannerService services.PlannerServicer) *PlannerHandler {
	return &PlannerHandler{plannerService: plannerService}
}

// GetWeeks handles computing the weekly projection for a date window.
// @Summary     Get week plan
// @Description Compute the week-bucketed projection of bills, income, and running balances for a date window
// @Tags        planner
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       from query string true "Window start (YYYY-MM-DD)"
// @Param       to   query string true "Window end (YYYY-MM-DD)"
// @Success     200 {object} services.WeekPlan "Weekly projection"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /planner/weeks [get]
func (h *PlannerHandler) GetWeeks(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	plan, err := h.plannerService.GetWeekPlan(userID, from, to, time.Now().UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// GetUnscheduled handles listing bills excluded from weekly planning.
// @Summary     Get unscheduled bills
// @Description List deferred and undated bills that weekly buckets exclude
// @Tags        planner
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]services.BillSchedule "Unscheduled bills"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /planner/unscheduled [get]
func (h *PlannerHandler) GetUnscheduled(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	unscheduled, err := h.plannerService.GetUnscheduledBills(userID, time.Now().UTC())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unscheduled": unscheduled})
}
